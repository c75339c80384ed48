package tui

import (
	"strings"
	"testing"

	"github.com/julianstephens/dayring/internal/metrics"
	"github.com/julianstephens/dayring/internal/month"
)

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("empty input = %q, want empty", got)
	}
	got := Sparkline([]float64{0, 50, 100})
	want := "▁▄█"
	if got != want {
		t.Fatalf("Sparkline = %q, want %q", got, want)
	}
	// A flat series renders at mid height rather than collapsing to zero.
	if got := Sparkline([]float64{42, 42, 42}); got != "▅▅▅" {
		t.Fatalf("flat Sparkline = %q, want mid-height runes", got)
	}
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		percent, width int
		want           string
	}{
		{0, 4, "░░░░"},
		{50, 4, "██░░"},
		{100, 4, "████"},
		{150, 4, "████"},
		{-10, 4, "░░░░"},
	}
	for _, tc := range cases {
		if got := ProgressBar(tc.percent, tc.width); got != tc.want {
			t.Errorf("ProgressBar(%d, %d) = %q, want %q", tc.percent, tc.width, got, tc.want)
		}
	}
}

func TestRing(t *testing.T) {
	got := Ring(75)
	if !strings.HasSuffix(got, " 75%") {
		t.Fatalf("Ring(75) = %q, want trailing percent", got)
	}
	if !strings.ContainsRune(got, '█') {
		t.Fatalf("Ring(75) = %q, want filled segment", got)
	}
}

func TestWeekBars(t *testing.T) {
	// Labels come from the segments themselves, not the line index.
	segs := []metrics.WeekSegment{
		{Label: "W3", Average: 100},
		{Label: "W4", Average: 0},
	}
	got := WeekBars(segs)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("WeekBars lines = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "W3") || !strings.HasSuffix(lines[0], "100%") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "W4") || !strings.HasSuffix(lines[1], "  0%") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestCellRune(t *testing.T) {
	cases := map[month.CellKind]string{
		month.CellInactive:      " ",
		month.CellBeforeSignup:  "·",
		month.CellFuture:        "·",
		month.CellTodayDone:     "◉",
		month.CellTodayMissed:   "◯",
		month.CellSavedDone:     "●",
		month.CellSavedMissed:   "○",
		month.CellAssumedMissed: "⊘",
	}
	for kind, want := range cases {
		if got := CellRune(kind); got != want {
			t.Errorf("CellRune(%v) = %q, want %q", kind, got, want)
		}
	}
}

func TestCheckpointRow(t *testing.T) {
	got := CheckpointRow([]month.CellKind{
		month.CellSavedDone, month.CellSavedMissed, month.CellFuture,
	})
	if got != "●○·" {
		t.Fatalf("CheckpointRow = %q", got)
	}
}
