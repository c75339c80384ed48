// Package metrics holds the pure aggregation functions behind every ring,
// chart and totals line: completion percentages, macro sums and weekly
// averages. Nothing here performs I/O or mutates shared state beyond the
// dashboard passed to RecalcMealTotals.
package metrics

import (
	"math"

	"github.com/julianstephens/dayring/internal/models"
)

// minBaseQuantity guards the consumption factor against zero or negative
// reference serving sizes.
const minBaseQuantity = 1e-6

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// ClampPercent bounds a value to [0,100], mapping non-finite input to 0.
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// Resolver reports the effective completed state for a habit. The editable
// day resolves through the draft; read-only days resolve the raw server
// value. Keeping this injectable is what lets today's ring respond to
// unsaved toggles while historical rings stay fixed to what was saved.
type Resolver func(h models.HabitStatus) bool

// ServerCompleted resolves the raw persisted value.
func ServerCompleted(h models.HabitStatus) bool { return h.Completed }

// CompletionPercent returns round(100 * completed / total), or 0 for an
// empty habit list.
func CompletionPercent(habits []models.HabitStatus, resolve Resolver) int {
	if len(habits) == 0 {
		return 0
	}
	if resolve == nil {
		resolve = ServerCompleted
	}
	completed := 0
	for _, h := range habits {
		if resolve(h) {
			completed++
		}
	}
	return int(math.Round(float64(completed) * 100 / float64(len(habits))))
}

// CompletedCount returns how many habits resolve as completed.
func CompletedCount(habits []models.HabitStatus, resolve Resolver) int {
	if resolve == nil {
		resolve = ServerCompleted
	}
	n := 0
	for _, h := range habits {
		if resolve(h) {
			n++
		}
	}
	return n
}

// ComputeConsumed scales an item's per-reference-serving macros to the given
// quantity. The base quantity is floored at a tiny positive value so a zero
// or negative reference serving cannot produce Inf/NaN.
func ComputeConsumed(item models.DayMealItem, quantity float64) models.Totals {
	base := item.BaseQuantity
	if base < minBaseQuantity {
		base = minBaseQuantity
	}
	factor := quantity / base
	return models.Totals{
		ProteinG:     Round2(item.ProteinG * factor),
		CarbsG:       Round2(item.CarbsG * factor),
		FatsG:        Round2(item.FatsG * factor),
		CaloriesKcal: Round2(item.CaloriesKcal * factor),
	}
}

// AddTotals returns the elementwise sum, rounded per component.
func AddTotals(a, b models.Totals) models.Totals {
	return models.Totals{
		ProteinG:     Round2(a.ProteinG + b.ProteinG),
		CarbsG:       Round2(a.CarbsG + b.CarbsG),
		FatsG:        Round2(a.FatsG + b.FatsG),
		CaloriesKcal: Round2(a.CaloriesKcal + b.CaloriesKcal),
	}
}

// ComputePlannedTotals sums one reference serving of every item: the meal's
// nominal value if each item were eaten at exactly its base quantity.
func ComputePlannedTotals(items []models.DayMealItem) models.Totals {
	var planned models.Totals
	for _, it := range items {
		planned = AddTotals(planned, ComputeConsumed(it, it.BaseQuantity))
	}
	return planned
}

// RecalcMealTotals recomputes every derived total on the dashboard from item
// quantities: each item's consumed macros, each meal's total and the
// dashboard-wide total. This is the single recomputation entrypoint; it must
// run after every quantity mutation, meal add or removal, and running it
// twice in a row yields identical results.
func RecalcMealTotals(dash *models.GymDashboard) {
	if dash == nil {
		return
	}
	var total models.Totals
	for mi := range dash.DayMeals {
		meal := &dash.DayMeals[mi]
		var mealTotal models.Totals
		for ii := range meal.Items {
			item := &meal.Items[ii]
			item.Consumed = ComputeConsumed(*item, item.Quantity)
			mealTotal = AddTotals(mealTotal, item.Consumed)
		}
		meal.ConsumedTotals = mealTotal
		total = AddTotals(total, mealTotal)
	}
	dash.ConsumedTotals = total
}

// ProgressPercent reports consumed against a target as a capped percentage;
// a missing or non-positive target reads as 0.
func ProgressPercent(consumed, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Min(100, math.Round(consumed*100/target)))
}

// WeekSegment is one fixed week bucket of a month.
type WeekSegment struct {
	Label   string
	Average float64
}

// WeekSegments averages gap-filled daily values into the fixed buckets
// 1-7, 8-14, 15-21 and 22-end; the last bucket's width varies with month
// length.
func WeekSegments(perDay []float64) []WeekSegment {
	bounds := []struct {
		label      string
		start, end int
	}{
		{"W1", 1, 7},
		{"W2", 8, 14},
		{"W3", 15, 21},
		{"W4", 22, len(perDay)},
	}

	segments := make([]WeekSegment, 0, len(bounds))
	for _, b := range bounds {
		start := b.start - 1
		end := b.end
		if start > len(perDay) {
			start = len(perDay)
		}
		if end > len(perDay) {
			end = len(perDay)
		}
		slice := perDay[start:end]
		avg := 0.0
		if len(slice) > 0 {
			sum := 0.0
			for _, v := range slice {
				sum += v
			}
			avg = sum / float64(len(slice))
		}
		segments = append(segments, WeekSegment{Label: b.label, Average: avg})
	}
	return segments
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
