// Package month turns sparse server data into the dense per-day
// sequences and checkpoint cells the calendar surfaces render. Caches
// are rebuilt wholesale on every month load; after a save only today's
// slot is patched.
package month

import (
	"sort"

	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/metrics"
	"github.com/julianstephens/dayring/internal/models"
)

// CellKind classifies one (habit, date) checkpoint cell. The order of
// the classification rules is strict; earlier rules win.
type CellKind int

const (
	// CellInactive marks a day the habit did not exist; never counted.
	CellInactive CellKind = iota
	CellBeforeSignup
	CellFuture
	CellTodayDone
	CellTodayMissed
	CellSavedDone
	CellSavedMissed
	// CellAssumedMissed is a past day with no saved entry at all,
	// distinct from a saved miss.
	CellAssumedMissed
)

// Interactive reports whether the cell accepts toggles. Only today's
// column ever does.
func (k CellKind) Interactive() bool {
	return k == CellTodayDone || k == CellTodayMissed
}

// LiveResolver reports the draft-resolved completed state of a habit on
// today's entry, and whether the habit has a status there.
type LiveResolver func(habitID int64) (completed, ok bool)

// Projection holds one displayed month's caches.
type Projection struct {
	Year  int
	Month int

	// Signup forces days before account creation to zero; empty means
	// no forcing.
	Signup string

	entries map[string]models.DayEntry
	stats   map[string]float64
}

// New builds a projection from the server's sparse month data.
func New(year, month int, entries []models.DayEntry, stats []models.DailyStat, signup string) *Projection {
	p := &Projection{
		Year:    year,
		Month:   month,
		Signup:  signup,
		entries: make(map[string]models.DayEntry, len(entries)),
		stats:   make(map[string]float64, len(stats)),
	}
	for _, e := range entries {
		p.entries[e.Date] = e
	}
	for _, s := range stats {
		p.stats[s.Date] = s.CompletionPercent
	}
	return p
}

// PatchToday replaces today's cached entry and stat after a save,
// without refetching the month.
func (p *Projection) PatchToday(entry models.DayEntry, percent float64) {
	if !dates.InYearMonth(entry.Date, p.Year, p.Month) {
		return
	}
	p.entries[entry.Date] = entry
	p.stats[entry.Date] = percent
}

// Entry returns the cached entry for a date, if any.
func (p *Projection) Entry(date string) (models.DayEntry, bool) {
	e, ok := p.entries[date]
	return e, ok
}

// PerDay expands the month into one value per calendar day. Missing
// days default to zero, days before signup are forced to zero, and
// today's value comes from the live draft-resolved percent instead of
// the stale server stat.
func (p *Projection) PerDay(todayISO string, livePercent float64, hasLive bool) []float64 {
	n := dates.DaysInMonth(p.Year, p.Month)
	out := make([]float64, n)
	for day := 1; day <= n; day++ {
		iso := dates.ISO(p.Year, p.Month, day)
		v := p.stats[iso]
		if p.Signup != "" && iso < p.Signup {
			v = 0
		}
		if hasLive && iso == todayISO {
			v = livePercent
		}
		out[day-1] = v
	}
	return out
}

// Average is the month's mean daily completion over the gap-filled
// sequence (the ring value).
func (p *Projection) Average(todayISO string, livePercent float64, hasLive bool) float64 {
	return metrics.Mean(p.PerDay(todayISO, livePercent, hasLive))
}

// WeeklyBars buckets the gap-filled sequence into the four fixed week
// segments for the bar chart.
func (p *Projection) WeeklyBars(todayISO string, livePercent float64, hasLive bool) []metrics.WeekSegment {
	return metrics.WeekSegments(p.PerDay(todayISO, livePercent, hasLive))
}

// Classify resolves the checkpoint cell for one habit on one date.
func (p *Projection) Classify(habitID int64, iso, todayISO string, live LiveResolver) CellKind {
	if p.Signup != "" && iso < p.Signup {
		return CellBeforeSignup
	}
	if iso > todayISO {
		return CellFuture
	}
	if iso == todayISO {
		if live != nil {
			if completed, ok := live(habitID); ok {
				if completed {
					return CellTodayDone
				}
				return CellTodayMissed
			}
		}
		return CellInactive
	}
	entry, ok := p.entries[iso]
	if !ok {
		return CellAssumedMissed
	}
	if h := entry.HabitByID(habitID); h != nil {
		if h.Completed {
			return CellSavedDone
		}
		return CellSavedMissed
	}
	return CellInactive
}

// HabitMeta is the row header of the checkpoint grid.
type HabitMeta struct {
	HabitID  int64
	Title    string
	Category models.HabitCategory
}

// HabitMetaList merges habit metadata from today's entry and every
// cached month entry, keeps only currently active habit ids, and sorts
// by category then title.
func (p *Projection) HabitMetaList(today *models.DayEntry, activeIDs map[int64]bool) []HabitMeta {
	seen := map[int64]HabitMeta{}
	collect := func(habits []models.HabitStatus) {
		for _, h := range habits {
			if !activeIDs[h.HabitID] {
				continue
			}
			if _, ok := seen[h.HabitID]; !ok {
				seen[h.HabitID] = HabitMeta{HabitID: h.HabitID, Title: h.HabitTitle, Category: h.Category}
			}
		}
	}
	if today != nil {
		collect(today.Habits)
	}
	for _, e := range p.entries {
		collect(e.Habits)
	}

	out := make([]HabitMeta, 0, len(seen))
	for _, m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// CompletionByDay returns, per ISO date with data, each habit's
// completed flag. Today's flags are draft-resolved.
func (p *Projection) CompletionByDay(todayISO string, today *models.DayEntry, live LiveResolver) map[string]map[int64]bool {
	out := make(map[string]map[int64]bool, len(p.entries)+1)
	for iso, e := range p.entries {
		if iso == todayISO {
			continue
		}
		m := make(map[int64]bool, len(e.Habits))
		for _, h := range e.Habits {
			m[h.HabitID] = h.Completed
		}
		out[iso] = m
	}
	if today != nil && dates.InYearMonth(todayISO, p.Year, p.Month) {
		m := make(map[int64]bool, len(today.Habits))
		for _, h := range today.Habits {
			completed := h.Completed
			if live != nil {
				if c, ok := live(h.HabitID); ok {
					completed = c
				}
			}
			m[h.HabitID] = completed
		}
		out[todayISO] = m
	}
	return out
}

// CategoryShare is one habit category's saved-completion ratio for the
// month.
type CategoryShare struct {
	Category models.HabitCategory
	Percent  float64
	Habits   int
}

// CategoryBreakdown computes, per category, completed checks divided by
// habit-count times days-in-month.
func (p *Projection) CategoryBreakdown() []CategoryShare {
	habitsByCat := map[models.HabitCategory]map[int64]bool{}
	completedByCat := map[models.HabitCategory]int{}
	for _, e := range p.entries {
		for _, h := range e.Habits {
			if habitsByCat[h.Category] == nil {
				habitsByCat[h.Category] = map[int64]bool{}
			}
			habitsByCat[h.Category][h.HabitID] = true
			if h.Completed {
				completedByCat[h.Category]++
			}
		}
	}
	n := float64(dates.DaysInMonth(p.Year, p.Month))
	out := make([]CategoryShare, 0, len(habitsByCat))
	for cat, ids := range habitsByCat {
		denom := float64(len(ids)) * n
		share := CategoryShare{Category: cat, Habits: len(ids)}
		if denom > 0 {
			share.Percent = metrics.ClampPercent(100 * float64(completedByCat[cat]) / denom)
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Comparison holds the per-day sequences and averages of two months
// side by side.
type Comparison struct {
	A, B         []float64
	AAvg, BAvg   float64
	Delta        float64
	ACats, BCats []CategoryShare
}

// Compare fills both months strictly per day and reports averages plus
// their delta. Neither side receives a live today override; comparison
// is over saved data only.
func Compare(a, b *Projection) Comparison {
	c := Comparison{
		A:     a.PerDay("", 0, false),
		B:     b.PerDay("", 0, false),
		ACats: a.CategoryBreakdown(),
		BCats: b.CategoryBreakdown(),
	}
	c.AAvg = metrics.Mean(c.A)
	c.BAvg = metrics.Mean(c.B)
	c.Delta = c.BAvg - c.AAvg
	return c
}
