package month

import (
	"fmt"
	"testing"

	"github.com/julianstephens/dayring/internal/models"
)

func stat(date string, pct float64) models.DailyStat {
	return models.DailyStat{Date: date, CompletionPercent: pct}
}

func TestPerDay_GapFilling(t *testing.T) {
	// June has 30 days; stats exist only for days 1 and 15.
	p := New(2024, 6, nil, []models.DailyStat{
		stat("2024-06-01", 80),
		stat("2024-06-15", 40),
	}, "")

	got := p.PerDay("", 0, false)
	if len(got) != 30 {
		t.Fatalf("sequence length = %d, want 30", len(got))
	}
	for i, v := range got {
		switch i {
		case 0:
			if v != 80 {
				t.Errorf("day 1 = %v, want 80", v)
			}
		case 14:
			if v != 40 {
				t.Errorf("day 15 = %v, want 40", v)
			}
		default:
			if v != 0 {
				t.Errorf("day %d = %v, want 0", i+1, v)
			}
		}
	}
}

func TestPerDay_SignupForcesZero(t *testing.T) {
	p := New(2024, 6, nil, []models.DailyStat{
		stat("2024-06-03", 90),
		stat("2024-06-10", 70),
	}, "2024-06-05")

	got := p.PerDay("", 0, false)
	if got[2] != 0 {
		t.Errorf("pre-signup day kept stat value %v", got[2])
	}
	if got[9] != 70 {
		t.Errorf("post-signup day = %v, want 70", got[9])
	}
}

func TestPerDay_TodayOverride(t *testing.T) {
	p := New(2024, 6, nil, []models.DailyStat{stat("2024-06-10", 25)}, "")

	got := p.PerDay("2024-06-10", 75, true)
	if got[9] != 75 {
		t.Errorf("today kept stale stat %v, want live 75", got[9])
	}

	// Without a live value the stale stat stands.
	got = p.PerDay("2024-06-10", 75, false)
	if got[9] != 25 {
		t.Errorf("day 10 = %v, want 25", got[9])
	}
}

func TestPatchToday(t *testing.T) {
	p := New(2024, 6, nil, nil, "")
	p.PatchToday(models.DayEntry{Date: "2024-06-10"}, 60)
	if got := p.PerDay("", 0, false)[9]; got != 60 {
		t.Errorf("patched slot = %v, want 60", got)
	}
	if _, ok := p.Entry("2024-06-10"); !ok {
		t.Error("patched entry not cached")
	}

	// A date outside the displayed month is ignored.
	p.PatchToday(models.DayEntry{Date: "2024-07-01"}, 99)
	if _, ok := p.Entry("2024-07-01"); ok {
		t.Error("out-of-month patch accepted")
	}
}

func entryWith(date string, habitID int64, completed bool) models.DayEntry {
	return models.DayEntry{Date: date, Habits: []models.HabitStatus{
		{HabitID: habitID, HabitTitle: "Meditate", Completed: completed},
	}}
}

func TestClassify_PriorityOrder(t *testing.T) {
	entries := []models.DayEntry{
		entryWith("2024-06-06", 1, true),
		entryWith("2024-06-07", 1, false),
		{Date: "2024-06-08"}, // saved entry without this habit
	}
	p := New(2024, 6, entries, nil, "2024-06-05")

	live := func(habitID int64) (bool, bool) {
		if habitID == 1 {
			return true, true
		}
		return false, false
	}
	today := "2024-06-10"

	tests := []struct {
		name string
		iso  string
		id   int64
		live LiveResolver
		want CellKind
	}{
		{"before signup", "2024-06-04", 1, live, CellBeforeSignup},
		{"future", "2024-06-11", 1, live, CellFuture},
		{"today done", "2024-06-10", 1, live, CellTodayDone},
		{"today missed", "2024-06-10", 1, func(int64) (bool, bool) { return false, true }, CellTodayMissed},
		{"today no status", "2024-06-10", 2, live, CellInactive},
		{"past saved done", "2024-06-06", 1, live, CellSavedDone},
		{"past saved missed", "2024-06-07", 1, live, CellSavedMissed},
		{"past no entry", "2024-06-09", 1, live, CellAssumedMissed},
		{"past entry without habit", "2024-06-08", 1, live, CellInactive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Classify(tc.id, tc.iso, today, tc.live); got != tc.want {
				t.Errorf("Classify(%d, %s) = %v, want %v", tc.id, tc.iso, got, tc.want)
			}
		})
	}
}

func TestClassify_OnlyTodayInteractive(t *testing.T) {
	if CellSavedDone.Interactive() || CellAssumedMissed.Interactive() || CellFuture.Interactive() {
		t.Error("non-today cells must not be interactive")
	}
	if !CellTodayDone.Interactive() || !CellTodayMissed.Interactive() {
		t.Error("today cells must be interactive")
	}
}

func TestHabitMetaList_MergeFilterSort(t *testing.T) {
	entries := []models.DayEntry{
		{Date: "2024-06-02", Habits: []models.HabitStatus{
			{HabitID: 3, HabitTitle: "Run", Category: models.CategoryHealth},
			{HabitID: 9, HabitTitle: "Old habit", Category: models.CategoryOther},
		}},
	}
	p := New(2024, 6, entries, nil, "")
	today := &models.DayEntry{Date: "2024-06-10", Habits: []models.HabitStatus{
		{HabitID: 1, HabitTitle: "Read", Category: models.CategoryLearning},
		{HabitID: 2, HabitTitle: "Floss", Category: models.CategoryHealth},
	}}

	active := map[int64]bool{1: true, 2: true, 3: true}
	got := p.HabitMetaList(today, active)

	if len(got) != 3 {
		t.Fatalf("meta list = %+v", got)
	}
	// HEALTH sorts before LEARNING; Floss before Run within HEALTH.
	if got[0].Title != "Floss" || got[1].Title != "Run" || got[2].Title != "Read" {
		t.Errorf("order = %s, %s, %s", got[0].Title, got[1].Title, got[2].Title)
	}
	for _, m := range got {
		if m.HabitID == 9 {
			t.Error("inactive habit leaked into meta list")
		}
	}
}

func TestCompletionByDay_TodayDraftResolved(t *testing.T) {
	entries := []models.DayEntry{entryWith("2024-06-06", 1, true)}
	p := New(2024, 6, entries, nil, "")
	today := &models.DayEntry{Date: "2024-06-10", Habits: []models.HabitStatus{
		{HabitID: 1, Completed: false},
	}}

	live := func(int64) (bool, bool) { return true, true }
	got := p.CompletionByDay("2024-06-10", today, live)

	if !got["2024-06-06"][1] {
		t.Error("saved day lost its completion")
	}
	if !got["2024-06-10"][1] {
		t.Error("today not draft-resolved")
	}
}

func TestCategoryBreakdown(t *testing.T) {
	// One HEALTH habit completed 15 of 30 days.
	var entries []models.DayEntry
	for day := 1; day <= 15; day++ {
		e := entryWith("2024-06-"+pad(day), 1, true)
		e.Habits[0].Category = models.CategoryHealth
		entries = append(entries, e)
	}
	p := New(2024, 6, entries, nil, "")

	got := p.CategoryBreakdown()
	if len(got) != 1 {
		t.Fatalf("breakdown = %+v", got)
	}
	if got[0].Category != models.CategoryHealth || got[0].Percent != 50 || got[0].Habits != 1 {
		t.Errorf("share = %+v", got[0])
	}
}

func pad(day int) string {
	return fmt.Sprintf("%02d", day)
}

func TestCompare(t *testing.T) {
	a := New(2024, 5, nil, []models.DailyStat{stat("2024-05-01", 31)}, "")
	b := New(2024, 6, nil, []models.DailyStat{stat("2024-06-01", 60)}, "")

	c := Compare(a, b)
	if len(c.A) != 31 || len(c.B) != 30 {
		t.Fatalf("lengths = %d, %d", len(c.A), len(c.B))
	}
	if c.AAvg != 1 || c.BAvg != 2 {
		t.Errorf("averages = %v, %v", c.AAvg, c.BAvg)
	}
	if c.Delta != 1 {
		t.Errorf("delta = %v", c.Delta)
	}
}
