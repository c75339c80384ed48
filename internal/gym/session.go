// Package gym owns the per-day gym dashboard state: the planned workout
// with logged weights, instantiated meals with quantities, body weight,
// and the edit buffers that sit between user input and the two save
// paths.
package gym

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/debounce"
	"github.com/julianstephens/dayring/internal/metrics"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/storage"
	"github.com/julianstephens/dayring/internal/validation"
)

// ErrNotEditable is returned when a mutation targets a non-today date.
var ErrNotEditable = errors.New("only today's dashboard can be edited")

// ErrSaveInFlight is returned when a save path is re-entered while a
// previous save has not finished.
var ErrSaveInFlight = errors.New("a save is already in progress")

// Gateway is the slice of the API client the gym session needs.
type Gateway interface {
	GymDashboard(ctx context.Context, date string) (*models.GymDashboard, error)
	SaveGymWorkout(ctx context.Context, date string, req api.SaveWorkoutRequest) (*models.GymDashboard, error)
	SaveGymMeals(ctx context.Context, date string, req api.SaveMealsRequest) (*models.GymDashboard, error)
	GymBody(ctx context.Context, date string) (*models.BodyProfile, error)
}

type Session struct {
	gateway Gateway
	store   storage.Provider
	logger  *log.Logger
	now     func() time.Time

	notesSave *debounce.Debouncer

	mu       sync.Mutex
	dash     *models.GymDashboard
	selected string

	// weightEdits holds raw text per exercise so the input survives
	// intermediate unparsable states while typing.
	weightEdits map[int64]string
	removed     map[int64]bool

	// mealEdits is templateID -> templateItemID -> raw quantity text.
	mealEdits map[int64]map[int64]string

	savingWorkout bool
	savingMeals   bool

	notes          string
	trend          []WeightPoint
	trendLoadedFor string
}

// WeightPoint is one day in the body-weight trend window. A nil weight
// means no measurement was logged that day.
type WeightPoint struct {
	Date     string
	WeightKg *float64
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func NewSession(gateway Gateway, store storage.Provider, opts ...Option) *Session {
	s := &Session{
		gateway:   gateway,
		store:     store,
		logger:    log.Default(),
		now:       time.Now,
		notesSave: debounce.New(constants.NotesDebounce),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) today() string { return dates.Format(s.now()) }

// KindFor classifies a date against the current clock.
func (s *Session) KindFor(date string) models.DayKind {
	today := s.today()
	switch {
	case date == today:
		return models.DayToday
	case date < today:
		return models.DayPast
	default:
		return models.DayFuture
	}
}

// Load fetches the dashboard for a date and resets every edit buffer.
// DayKind and CanEdit are recomputed from the local clock rather than
// trusted from the server. Locally stored notes for the date are
// restored.
func (s *Session) Load(ctx context.Context, date string) error {
	dash, err := s.gateway.GymDashboard(ctx, date)
	if err != nil {
		return err
	}
	dash.DayKind = s.KindFor(date)
	dash.CanEdit = dash.DayKind == models.DayToday
	metrics.RecalcMealTotals(dash)

	notes := ""
	if raw, err := s.store.Get(constants.GymNotesKey(date)); err == nil {
		notes = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dash = dash
	s.selected = date
	s.weightEdits = map[int64]string{}
	s.removed = map[int64]bool{}
	s.mealEdits = map[int64]map[int64]string{}
	s.notes = notes
	return nil
}

// Dashboard returns the current dashboard. The caller must treat it as
// read-only.
func (s *Session) Dashboard() *models.GymDashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dash
}

func (s *Session) CanEdit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canEditLocked()
}

func (s *Session) canEditLocked() bool {
	return s.dash != nil && s.selected == s.today()
}

// VisibleExercises returns the day's exercise rows minus removed ones.
func (s *Session) VisibleExercises() []models.DashboardExercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dash == nil {
		return nil
	}
	out := make([]models.DashboardExercise, 0, len(s.dash.Exercises))
	for _, ex := range s.dash.Exercises {
		if !s.removed[ex.ExerciseID] {
			out = append(out, ex)
		}
	}
	return out
}

// WeightText returns the effective text for an exercise's weight field:
// the edit buffer if touched, else the stored weight.
func (s *Session) WeightText(exerciseID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text, ok := s.weightEdits[exerciseID]; ok {
		return text
	}
	if s.dash != nil {
		if ex := s.dash.ExerciseByID(exerciseID); ex != nil && ex.WeightKg != nil {
			return formatWeight(*ex.WeightKg)
		}
	}
	return ""
}

// SetExerciseWeight records a weight field edit.
func (s *Session) SetExerciseWeight(exerciseID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canEditLocked() {
		return ErrNotEditable
	}
	s.weightEdits[exerciseID] = text
	return nil
}

// RemoveExercise marks an exercise for removal. Planned exercises emit
// an explicit null weight on save; extra ones simply disappear from the
// buffer.
func (s *Session) RemoveExercise(exerciseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canEditLocked() {
		return ErrNotEditable
	}
	s.removed[exerciseID] = true
	delete(s.weightEdits, exerciseID)
	return nil
}

// AddExtraExercise appends a catalog exercise as an ad-hoc addition.
// Adding an exercise already on the day is a no-op, except that it
// un-removes a previously removed one.
func (s *Session) AddExtraExercise(ex models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canEditLocked() {
		return ErrNotEditable
	}
	if s.removed[ex.ID] {
		delete(s.removed, ex.ID)
		return nil
	}
	if s.dash.ExerciseByID(ex.ID) != nil {
		return nil
	}
	s.dash.Exercises = append(s.dash.Exercises, models.DashboardExercise{
		ExerciseID: ex.ID,
		Name:       ex.Name,
		Type:       ex.Type,
		Extra:      true,
	})
	return nil
}

// ApplyLastWorkoutWeights scans up to 21 days strictly before the
// selected date for the most recent day with the same planned workout,
// copies its logged weights for intersecting exercises into the edit
// buffer, and reports whether anything was applied.
func (s *Session) ApplyLastWorkoutWeights(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if !s.canEditLocked() {
		s.mu.Unlock()
		return false, ErrNotEditable
	}
	if s.dash.Workout == nil {
		s.mu.Unlock()
		return false, nil
	}
	workoutID := s.dash.Workout.ID
	selected := s.selected
	s.mu.Unlock()

	for back := 1; back <= constants.WeightLookbackDays; back++ {
		date, err := dates.AddDays(selected, -back)
		if err != nil {
			return false, err
		}
		prior, err := s.gateway.GymDashboard(ctx, date)
		if err != nil {
			// One bad day must not end the scan; older days may still
			// hold the weights.
			s.logger.Warn("lookback fetch failed, skipping day", "date", date, "err", err)
			continue
		}
		if prior.Workout == nil || prior.Workout.ID != workoutID {
			continue
		}

		s.mu.Lock()
		applied := false
		for _, prev := range prior.Exercises {
			if prev.WeightKg == nil {
				continue
			}
			if s.dash.ExerciseByID(prev.ExerciseID) == nil || s.removed[prev.ExerciseID] {
				continue
			}
			s.weightEdits[prev.ExerciseID] = formatWeight(*prev.WeightKg)
			applied = true
		}
		s.mu.Unlock()
		return applied, nil
	}
	return false, nil
}

// SaveWorkout serializes the visible exercises' weights plus explicit
// nulls for removed planned exercises, replaces the dashboard from the
// server response, and clears the workout edit buffers.
func (s *Session) SaveWorkout(ctx context.Context) error {
	s.mu.Lock()
	if !s.canEditLocked() {
		s.mu.Unlock()
		return ErrNotEditable
	}
	if s.savingWorkout {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.savingWorkout = true

	req := api.SaveWorkoutRequest{}
	for _, ex := range s.dash.Exercises {
		if s.removed[ex.ExerciseID] {
			req.Logs = append(req.Logs, api.WorkoutLog{ExerciseID: ex.ExerciseID, WeightKg: nil})
			continue
		}
		weight := ex.WeightKg
		if text, ok := s.weightEdits[ex.ExerciseID]; ok {
			weight = validation.ParseWeightInput(text)
		}
		req.Logs = append(req.Logs, api.WorkoutLog{ExerciseID: ex.ExerciseID, WeightKg: weight})
	}
	date := s.selected
	s.mu.Unlock()

	dash, err := s.gateway.SaveGymWorkout(ctx, date, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.savingWorkout = false
	if err != nil {
		return err
	}
	dash.DayKind = s.KindFor(date)
	dash.CanEdit = dash.DayKind == models.DayToday
	metrics.RecalcMealTotals(dash)
	s.dash = dash
	s.weightEdits = map[int64]string{}
	s.removed = map[int64]bool{}
	return nil
}

// AddMeal instantiates a template onto the day with zero quantities.
// Adding a template already on the day is a no-op.
func (s *Session) AddMeal(templateID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canEditLocked() {
		return ErrNotEditable
	}
	if s.dash.MealByTemplateID(templateID) != nil {
		return nil
	}
	var tpl *models.MealTemplate
	for i := range s.dash.MealTemplates {
		if s.dash.MealTemplates[i].ID == templateID {
			tpl = &s.dash.MealTemplates[i]
			break
		}
	}
	if tpl == nil {
		return errors.New("unknown meal template")
	}
	meal := models.DayMeal{MealTemplateID: tpl.ID, Name: tpl.Name}
	for _, item := range tpl.Items {
		meal.Items = append(meal.Items, models.DayMealItem{
			TemplateItemID: item.ID,
			Name:           item.Name,
			UnitLabel:      item.UnitLabel,
			BaseQuantity:   item.BaseQuantity,
			ProteinG:       item.ProteinG,
			CarbsG:         item.CarbsG,
			FatsG:          item.FatsG,
			CaloriesKcal:   item.CaloriesKcal,
		})
	}
	s.dash.DayMeals = append(s.dash.DayMeals, meal)
	metrics.RecalcMealTotals(s.dash)
	return nil
}

// RemoveMeal drops a meal from the day and discards its edits.
func (s *Session) RemoveMeal(templateID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canEditLocked() {
		return ErrNotEditable
	}
	for i := range s.dash.DayMeals {
		if s.dash.DayMeals[i].MealTemplateID == templateID {
			s.dash.DayMeals = append(s.dash.DayMeals[:i], s.dash.DayMeals[i+1:]...)
			break
		}
	}
	delete(s.mealEdits, templateID)
	metrics.RecalcMealTotals(s.dash)
	return nil
}

// SetMealQuantity records a quantity field edit and recomputes all
// totals through the single recomputation entrypoint.
func (s *Session) SetMealQuantity(templateID, itemID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canEditLocked() {
		return ErrNotEditable
	}
	meal := s.dash.MealByTemplateID(templateID)
	if meal == nil {
		return errors.New("meal not on this day")
	}
	if s.mealEdits[templateID] == nil {
		s.mealEdits[templateID] = map[int64]string{}
	}
	s.mealEdits[templateID][itemID] = text

	for i := range meal.Items {
		if meal.Items[i].TemplateItemID == itemID {
			meal.Items[i].Quantity = validation.ParseQuantityInput(text)
			break
		}
	}
	metrics.RecalcMealTotals(s.dash)
	return nil
}

// FillMealToBase sets every item's quantity to its base quantity (one
// serving) and recomputes totals.
func (s *Session) FillMealToBase(templateID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canEditLocked() {
		return ErrNotEditable
	}
	meal := s.dash.MealByTemplateID(templateID)
	if meal == nil {
		return errors.New("meal not on this day")
	}
	if s.mealEdits[templateID] == nil {
		s.mealEdits[templateID] = map[int64]string{}
	}
	for i := range meal.Items {
		meal.Items[i].Quantity = meal.Items[i].BaseQuantity
		s.mealEdits[templateID][meal.Items[i].TemplateItemID] = formatWeight(meal.Items[i].BaseQuantity)
	}
	metrics.RecalcMealTotals(s.dash)
	return nil
}

// SaveMeals serializes every day meal's item quantities, replaces the
// dashboard from the server response, and clears the meal edit buffers.
// Invalid or negative quantity text is coerced to zero.
func (s *Session) SaveMeals(ctx context.Context) error {
	s.mu.Lock()
	if !s.canEditLocked() {
		s.mu.Unlock()
		return ErrNotEditable
	}
	if s.savingMeals {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.savingMeals = true

	req := api.SaveMealsRequest{}
	for _, meal := range s.dash.DayMeals {
		save := api.MealSave{MealTemplateID: meal.MealTemplateID}
		for _, item := range meal.Items {
			qty := item.Quantity
			if text, ok := s.mealEdits[meal.MealTemplateID][item.TemplateItemID]; ok {
				qty = validation.ParseQuantityInput(text)
			}
			save.Items = append(save.Items, api.MealItemQuantity{
				TemplateItemID: item.TemplateItemID,
				Quantity:       qty,
			})
		}
		req.Meals = append(req.Meals, save)
	}
	date := s.selected
	s.mu.Unlock()

	dash, err := s.gateway.SaveGymMeals(ctx, date, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.savingMeals = false
	if err != nil {
		return err
	}
	dash.DayKind = s.KindFor(date)
	dash.CanEdit = dash.DayKind == models.DayToday
	metrics.RecalcMealTotals(dash)
	s.dash = dash
	s.mealEdits = map[int64]map[int64]string{}
	return nil
}

// MacroProgress returns the consumed-vs-target percent per macro, zero
// when no targets are known.
func (s *Session) MacroProgress() (protein, carbs, fats, calories int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dash == nil || s.dash.BodyProfile == nil || s.dash.BodyProfile.Targets == nil {
		return 0, 0, 0, 0
	}
	t := s.dash.BodyProfile.Targets
	c := s.dash.ConsumedTotals
	return metrics.ProgressPercent(c.ProteinG, t.ProteinG),
		metrics.ProgressPercent(c.CarbsG, t.CarbsG),
		metrics.ProgressPercent(c.FatsG, t.FatsG),
		metrics.ProgressPercent(c.CaloriesKcal, t.CaloriesKcal)
}

// formatWeight renders without trailing zeros so the field shows "80",
// not "80.000000".
func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
