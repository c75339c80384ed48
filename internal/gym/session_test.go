package gym

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/storage"
)

const testToday = "2024-06-10"

func fixedClock() time.Time {
	return time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
}

func f64(v float64) *float64 { return &v }

type fakeGateway struct {
	mu         sync.Mutex
	dashboards map[string]models.GymDashboard
	dashErrs   map[string]error
	bodies     map[string]models.BodyProfile
	bodyCalls  int
	dashCalls  []string

	lastWorkoutSave *api.SaveWorkoutRequest
	lastMealsSave   *api.SaveMealsRequest
	saveErr         error
}

func (f *fakeGateway) GymDashboard(ctx context.Context, date string) (*models.GymDashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashCalls = append(f.dashCalls, date)
	if err, ok := f.dashErrs[date]; ok {
		return nil, err
	}
	if d, ok := f.dashboards[date]; ok {
		out := d
		out.Exercises = append([]models.DashboardExercise(nil), d.Exercises...)
		out.DayMeals = append([]models.DayMeal(nil), d.DayMeals...)
		return &out, nil
	}
	return &models.GymDashboard{Date: date}, nil
}

func (f *fakeGateway) SaveGymWorkout(ctx context.Context, date string, req api.SaveWorkoutRequest) (*models.GymDashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.lastWorkoutSave = &req
	d := f.dashboards[date]
	out := d
	out.Date = date
	return &out, nil
}

func (f *fakeGateway) SaveGymMeals(ctx context.Context, date string, req api.SaveMealsRequest) (*models.GymDashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.lastMealsSave = &req
	d := f.dashboards[date]
	out := d
	out.Date = date
	return &out, nil
}

func (f *fakeGateway) GymBody(ctx context.Context, date string) (*models.BodyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodyCalls++
	if b, ok := f.bodies[date]; ok {
		out := b
		return &out, nil
	}
	return &models.BodyProfile{}, nil
}

func plannedDashboard() models.GymDashboard {
	return models.GymDashboard{
		Date:    testToday,
		Workout: &models.Workout{ID: 5, Name: "Push A"},
		Exercises: []models.DashboardExercise{
			{ExerciseID: 1, Name: "Bench", WeightKg: f64(70)},
			{ExerciseID: 2, Name: "OHP"},
		},
	}
}

func newTestSession(t *testing.T, gw *fakeGateway) (*Session, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "state.json"))
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	s := NewSession(gw, store, WithClock(fixedClock))
	if err := s.Load(context.Background(), testToday); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, store
}

func TestKindAndEditability(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: plannedDashboard()}}
	s, _ := newTestSession(t, gw)

	if k := s.KindFor("2024-06-09"); k != models.DayPast {
		t.Errorf("yesterday kind = %v", k)
	}
	if k := s.KindFor("2024-06-11"); k != models.DayFuture {
		t.Errorf("tomorrow kind = %v", k)
	}
	if !s.CanEdit() {
		t.Error("today must be editable")
	}
	if got := s.Dashboard().DayKind; got != models.DayToday {
		t.Errorf("dashboard kind = %v", got)
	}

	if err := s.Load(context.Background(), "2024-06-09"); err != nil {
		t.Fatal(err)
	}
	if s.CanEdit() {
		t.Error("past day must not be editable")
	}
	if err := s.SetExerciseWeight(1, "80"); !errors.Is(err, ErrNotEditable) {
		t.Errorf("edit on past day = %v", err)
	}
	if err := s.SaveWorkout(context.Background()); !errors.Is(err, ErrNotEditable) {
		t.Errorf("save on past day = %v", err)
	}
}

func TestSaveWorkout_Serialization(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: plannedDashboard()}}
	s, _ := newTestSession(t, gw)

	if err := s.SetExerciseWeight(1, "82.5"); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveExercise(2); err != nil {
		t.Fatal(err)
	}

	if err := s.SaveWorkout(context.Background()); err != nil {
		t.Fatalf("SaveWorkout: %v", err)
	}

	req := gw.lastWorkoutSave
	if req == nil || len(req.Logs) != 2 {
		t.Fatalf("payload = %+v", req)
	}
	if req.Logs[0].ExerciseID != 1 || req.Logs[0].WeightKg == nil || *req.Logs[0].WeightKg != 82.5 {
		t.Errorf("edited log = %+v", req.Logs[0])
	}
	if req.Logs[1].ExerciseID != 2 || req.Logs[1].WeightKg != nil {
		t.Errorf("removed log = %+v", req.Logs[1])
	}

	// Buffers are cleared; the next save reflects server state only.
	if got := s.WeightText(1); got != "70" {
		t.Errorf("post-save weight text = %q", got)
	}
}

func TestSaveWorkout_InvalidWeightBecomesNull(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: plannedDashboard()}}
	s, _ := newTestSession(t, gw)

	s.SetExerciseWeight(1, "not a number")
	if err := s.SaveWorkout(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gw.lastWorkoutSave.Logs[0].WeightKg != nil {
		t.Errorf("invalid weight serialized as %v", *gw.lastWorkoutSave.Logs[0].WeightKg)
	}
	// Untouched exercise keeps its stored weight.
	if gw.lastWorkoutSave.Logs[1].WeightKg != nil {
		t.Errorf("untouched empty weight = %v", gw.lastWorkoutSave.Logs[1])
	}
}

func TestSaveWorkout_FailureKeepsEdits(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: plannedDashboard()}}
	s, _ := newTestSession(t, gw)
	s.SetExerciseWeight(1, "90")

	gw.mu.Lock()
	gw.saveErr = errors.New("boom")
	gw.mu.Unlock()
	if err := s.SaveWorkout(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := s.WeightText(1); got != "90" {
		t.Errorf("edit lost after failed save: %q", got)
	}

	gw.mu.Lock()
	gw.saveErr = nil
	gw.mu.Unlock()
	if err := s.SaveWorkout(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if *gw.lastWorkoutSave.Logs[0].WeightKg != 90 {
		t.Error("retry payload differs")
	}
}

func TestAddExtraExercise(t *testing.T) {
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: plannedDashboard()}}
	s, _ := newTestSession(t, gw)

	if err := s.AddExtraExercise(models.Exercise{ID: 9, Name: "Curls"}); err != nil {
		t.Fatal(err)
	}
	visible := s.VisibleExercises()
	if len(visible) != 3 || !visible[2].Extra || visible[2].Name != "Curls" {
		t.Errorf("after add = %+v", visible)
	}

	// Adding an existing exercise is a no-op.
	s.AddExtraExercise(models.Exercise{ID: 1, Name: "Bench"})
	if len(s.VisibleExercises()) != 3 {
		t.Error("duplicate add changed the list")
	}

	// Adding a removed exercise un-removes it instead of duplicating.
	s.RemoveExercise(9)
	if len(s.VisibleExercises()) != 2 {
		t.Error("remove did not hide the exercise")
	}
	s.AddExtraExercise(models.Exercise{ID: 9, Name: "Curls"})
	if len(s.VisibleExercises()) != 3 {
		t.Error("re-add did not restore the removed exercise")
	}
}

func TestApplyLastWorkoutWeights(t *testing.T) {
	// 06-08 ran a different workout; 06-05 and 06-01 ran workout 5.
	// The scan must stop at 06-05, the nearest match.
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{
		testToday: plannedDashboard(),
		"2024-06-08": {
			Date:      "2024-06-08",
			Workout:   &models.Workout{ID: 6},
			Exercises: []models.DashboardExercise{{ExerciseID: 1, WeightKg: f64(100)}},
		},
		"2024-06-05": {
			Date:    "2024-06-05",
			Workout: &models.Workout{ID: 5},
			Exercises: []models.DashboardExercise{
				{ExerciseID: 1, WeightKg: f64(77.5)},
				{ExerciseID: 3, WeightKg: f64(40)}, // not on today's plan
			},
		},
		"2024-06-01": {
			Date:      "2024-06-01",
			Workout:   &models.Workout{ID: 5},
			Exercises: []models.DashboardExercise{{ExerciseID: 1, WeightKg: f64(60)}},
		},
	}}
	s, _ := newTestSession(t, gw)

	applied, err := s.ApplyLastWorkoutWeights(context.Background())
	if err != nil {
		t.Fatalf("ApplyLastWorkoutWeights: %v", err)
	}
	if !applied {
		t.Fatal("expected weights to apply")
	}
	if got := s.WeightText(1); got != "77.5" {
		t.Errorf("copied weight = %q, want 77.5 from the nearest match", got)
	}
	// Exercise 3 is not on today's plan; nothing to copy onto.
	if got := s.WeightText(2); got != "" {
		t.Errorf("unmatched exercise got weight %q", got)
	}
}

func TestApplyLastWorkoutWeights_SkipsFailedDays(t *testing.T) {
	// 06-08 errors out; the scan must keep going and find 06-05.
	gw := &fakeGateway{
		dashboards: map[string]models.GymDashboard{
			testToday: plannedDashboard(),
			"2024-06-05": {
				Date:      "2024-06-05",
				Workout:   &models.Workout{ID: 5},
				Exercises: []models.DashboardExercise{{ExerciseID: 1, WeightKg: f64(77.5)}},
			},
		},
		dashErrs: map[string]error{"2024-06-08": errors.New("boom")},
	}
	s, _ := newTestSession(t, gw)

	applied, err := s.ApplyLastWorkoutWeights(context.Background())
	if err != nil {
		t.Fatalf("ApplyLastWorkoutWeights: %v", err)
	}
	if !applied {
		t.Fatal("fetch failure on one day aborted the scan")
	}
	if got := s.WeightText(1); got != "77.5" {
		t.Errorf("copied weight = %q", got)
	}
}

func TestApplyLastWorkoutWeights_NoMatchWithinLookback(t *testing.T) {
	// The only matching day is 22 days back, outside the window.
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{
		testToday: plannedDashboard(),
		"2024-05-19": {
			Date:      "2024-05-19",
			Workout:   &models.Workout{ID: 5},
			Exercises: []models.DashboardExercise{{ExerciseID: 1, WeightKg: f64(55)}},
		},
	}}
	s, _ := newTestSession(t, gw)

	applied, err := s.ApplyLastWorkoutWeights(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Error("weights applied from outside the lookback window")
	}
}

func TestApplyLastWorkoutWeights_NoPlannedWorkout(t *testing.T) {
	dash := plannedDashboard()
	dash.Workout = nil
	gw := &fakeGateway{dashboards: map[string]models.GymDashboard{testToday: dash}}
	s, _ := newTestSession(t, gw)

	applied, err := s.ApplyLastWorkoutWeights(context.Background())
	if err != nil || applied {
		t.Errorf("rest day apply = %v, %v", applied, err)
	}
}
