package gym

import (
	"context"
	"strings"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/models"
)

// PlanDay is one column of the week plan strip.
type PlanDay struct {
	Date        string
	Weekday     int // 0=Sunday
	Label       string
	WorkoutID   *int64
	WorkoutName string
	IsToday     bool
}

// WeekPlan expands the current plan into the Sunday-anchored week
// containing the selected date. Weekdays without an assignment are rest
// days. names maps workout ids to display names.
func WeekPlan(plan *models.WeeklyPlan, selected, today string, names map[int64]string) ([]PlanDay, error) {
	anchor, err := dates.Parse(selected)
	if err != nil {
		return nil, err
	}
	start := dates.StartOfWeekSunday(anchor)

	out := make([]PlanDay, 7)
	for i := 0; i < 7; i++ {
		date := dates.Format(start.AddDate(0, 0, i))
		d := PlanDay{
			Date:    date,
			Weekday: i,
			Label:   dates.WeekdayLabel(i),
			IsToday: date == today,
		}
		if plan != nil {
			if id := plan.WorkoutIDForWeekday(i); id != nil {
				d.WorkoutID = id
				d.WorkoutName = names[*id]
			}
		}
		out[i] = d
	}
	return out, nil
}

// WorkoutNames flattens the expanded workout list into an id-to-name
// map for plan rendering.
func WorkoutNames(workouts []models.WorkoutExercises) map[int64]string {
	names := make(map[int64]string, len(workouts))
	for _, w := range workouts {
		names[w.WorkoutID] = w.Name
	}
	return names
}

// ExerciseCreator is the gateway slice needed by the bulk importer.
type ExerciseCreator interface {
	CreateExercise(ctx context.Context, req api.ExerciseRequest) (*models.Exercise, error)
}

// BulkResult reports the outcome of a bulk exercise import.
type BulkResult struct {
	Created []models.Exercise
	Failed  []string
}

// BulkCreateExercises creates one exercise per non-empty pasted line,
// best effort: a failed line is recorded and skipped, never aborting
// the rest. A line is "name" or "name | type".
func BulkCreateExercises(ctx context.Context, gw ExerciseCreator, text string) BulkResult {
	var result BulkResult
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		req := api.ExerciseRequest{Name: line}
		if name, typ, ok := strings.Cut(line, "|"); ok {
			req.Name = strings.TrimSpace(name)
			req.Type = strings.TrimSpace(typ)
		}
		if req.Name == "" {
			result.Failed = append(result.Failed, line)
			continue
		}
		ex, err := gw.CreateExercise(ctx, req)
		if err != nil {
			result.Failed = append(result.Failed, line)
			continue
		}
		result.Created = append(result.Created, *ex)
	}
	return result
}
