package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayring/internal/metrics"
	"github.com/julianstephens/dayring/internal/month"
)

// sparkRunes maps a normalized value onto eight block heights.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single-line chart. Values are
// normalized against the slice's own min/max; a flat series renders at
// mid height.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		idx := len(sparkRunes) / 2
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// ProgressBar renders a fixed-width bar for a 0..100 percent.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Ring renders the completion gauge line used on the today screen.
func Ring(percent int) string {
	return fmt.Sprintf("%s %3d%%", ProgressBar(percent, 20), percent)
}

// WeekBars renders one line per week segment with a bar scaled to 100.
func WeekBars(segments []metrics.WeekSegment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteString("\n")
		}
		pct := int(seg.Average + 0.5)
		fmt.Fprintf(&b, "%s %s %3d%%", seg.Label, ProgressBar(pct, 14), pct)
	}
	return b.String()
}

// CellRune maps a checkpoint cell to its single-character glyph.
func CellRune(kind month.CellKind) string {
	switch kind {
	case month.CellBeforeSignup, month.CellFuture:
		return "·"
	case month.CellTodayDone:
		return "◉"
	case month.CellTodayMissed:
		return "◯"
	case month.CellSavedDone:
		return "●"
	case month.CellSavedMissed:
		return "○"
	case month.CellAssumedMissed:
		return "⊘"
	default:
		return " "
	}
}

// CheckpointRow renders one habit's month row of the grid.
func CheckpointRow(kinds []month.CellKind) string {
	var b strings.Builder
	for _, k := range kinds {
		b.WriteString(CellRune(k))
	}
	return b.String()
}
