package gym

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/models"
)

func i64(v int64) *int64 { return &v }

func TestWeekPlan_SundayAnchored(t *testing.T) {
	plan := &models.WeeklyPlan{
		Assignments: []models.PlanAssignment{
			{Weekday: 1, WorkoutID: i64(5)}, // Monday
			{Weekday: 4, WorkoutID: i64(6)}, // Thursday
		},
	}
	names := map[int64]string{5: "Push A", 6: "Pull A"}

	// 2024-06-12 is a Wednesday; its week starts Sunday 2024-06-09.
	week, err := WeekPlan(plan, "2024-06-12", "2024-06-12", names)
	if err != nil {
		t.Fatalf("WeekPlan: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("week length = %d", len(week))
	}
	if week[0].Date != "2024-06-09" || week[6].Date != "2024-06-15" {
		t.Errorf("week bounds = %s .. %s", week[0].Date, week[6].Date)
	}
	if week[1].WorkoutName != "Push A" || week[4].WorkoutName != "Pull A" {
		t.Errorf("assignments = %+v", week)
	}
	if week[0].WorkoutID != nil {
		t.Error("Sunday should be a rest day")
	}
	if !week[3].IsToday {
		t.Error("Wednesday not marked as today")
	}
}

func TestWeekPlan_NilPlanIsAllRest(t *testing.T) {
	week, err := WeekPlan(nil, "2024-06-12", "2024-06-12", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range week {
		if d.WorkoutID != nil {
			t.Errorf("day %s has workout without a plan", d.Date)
		}
	}
}

type fakeCreator struct {
	failOn map[string]bool
	nextID int64
}

func (f *fakeCreator) CreateExercise(ctx context.Context, req api.ExerciseRequest) (*models.Exercise, error) {
	if f.failOn[req.Name] {
		return nil, errors.New("duplicate name")
	}
	f.nextID++
	return &models.Exercise{ID: f.nextID, Name: req.Name, Type: req.Type, Active: true}, nil
}

func TestBulkCreateExercises_BestEffort(t *testing.T) {
	gw := &fakeCreator{failOn: map[string]bool{"Bench": true}}

	text := "Bench\n\n  Squat | legs \nDeadlift\n   \n"
	result := BulkCreateExercises(context.Background(), gw, text)

	if len(result.Created) != 2 {
		t.Fatalf("created = %+v", result.Created)
	}
	if result.Created[0].Name != "Squat" || result.Created[0].Type != "legs" {
		t.Errorf("typed line parsed as %+v", result.Created[0])
	}
	if result.Created[1].Name != "Deadlift" {
		t.Errorf("second created = %+v", result.Created[1])
	}
	if len(result.Failed) != 1 || result.Failed[0] != "Bench" {
		t.Errorf("failed = %+v", result.Failed)
	}
}
