package models

// DayKind classifies the selected gym date against the local clock.
type DayKind string

const (
	DayToday  DayKind = "TODAY"
	DayPast   DayKind = "PAST"
	DayFuture DayKind = "FUTURE"
)

// Totals is an elementwise macro/calorie sum.
type Totals struct {
	ProteinG     float64 `json:"proteinG"`
	CarbsG       float64 `json:"carbsG"`
	FatsG        float64 `json:"fatsG"`
	CaloriesKcal float64 `json:"caloriesKcal"`
}

// Exercise is a catalog entry in the gym setup.
type Exercise struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Active bool   `json:"active"`
}

// Workout is a named group of exercises.
type Workout struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DashboardExercise is one exercise row on a day's dashboard. Extra marks an
// ad-hoc addition that is not part of the planned workout.
type DashboardExercise struct {
	ExerciseID int64    `json:"exerciseId"`
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`
	WeightKg   *float64 `json:"weightKg,omitempty"`
	Extra      bool     `json:"extra,omitempty"`
}

// MacroTargets holds the per-day nutrition targets derived from the body
// profile.
type MacroTargets struct {
	ProteinG     float64 `json:"proteinG"`
	CarbsG       float64 `json:"carbsG"`
	FatsG        float64 `json:"fatsG"`
	CaloriesKcal float64 `json:"caloriesKcal"`
}

// BodyProfile is the body-weight record effective for a date.
type BodyProfile struct {
	WeightKg      *float64      `json:"weightKg,omitempty"`
	EffectiveFrom string        `json:"effectiveFrom,omitempty"`
	Targets       *MacroTargets `json:"targets,omitempty"`
}

// MealTemplateItem defines one item of a reusable meal. All macro fields are
// per BaseQuantity units of the item.
type MealTemplateItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	UnitLabel    string  `json:"unitLabel,omitempty"`
	BaseQuantity float64 `json:"baseQuantity"`
	ProteinG     float64 `json:"proteinG"`
	CarbsG       float64 `json:"carbsG"`
	FatsG        float64 `json:"fatsG"`
	CaloriesKcal float64 `json:"caloriesKcal"`
}

// MealTemplate is a reusable meal definition.
type MealTemplate struct {
	ID     int64              `json:"id"`
	Name   string             `json:"name"`
	Active bool               `json:"active"`
	Items  []MealTemplateItem `json:"items"`
}

// DayMealItem is an instantiated template item with a user-chosen quantity.
// Consumed is derived from Quantity and must be recomputed, never trusted
// stale, whenever any quantity changes client-side.
type DayMealItem struct {
	TemplateItemID int64   `json:"templateItemId"`
	Name           string  `json:"name"`
	UnitLabel      string  `json:"unitLabel,omitempty"`
	BaseQuantity   float64 `json:"baseQuantity"`
	ProteinG       float64 `json:"proteinG"`
	CarbsG         float64 `json:"carbsG"`
	FatsG          float64 `json:"fatsG"`
	CaloriesKcal   float64 `json:"caloriesKcal"`
	Quantity       float64 `json:"quantity"`
	Consumed       Totals  `json:"consumed"`
}

// DayMeal is one meal instantiated for a day.
type DayMeal struct {
	MealTemplateID int64         `json:"mealTemplateId"`
	Name           string        `json:"name"`
	Items          []DayMealItem `json:"items"`
	ConsumedTotals Totals        `json:"consumedTotals"`
}

// GymDashboard is the per-day gym view: planned workout, logged weights, meal
// intake, body profile and derived totals.
type GymDashboard struct {
	Date           string              `json:"date"`
	DayKind        DayKind             `json:"dayKind"`
	CanEdit        bool                `json:"canEdit"`
	Workout        *Workout            `json:"workout,omitempty"`
	Exercises      []DashboardExercise `json:"exercises"`
	BodyProfile    *BodyProfile        `json:"bodyProfile,omitempty"`
	MealTemplates  []MealTemplate      `json:"mealTemplates,omitempty"`
	DayMeals       []DayMeal           `json:"dayMeals"`
	ConsumedTotals Totals              `json:"consumedTotals"`
}

// MealByTemplateID returns the day meal for the given template id, or nil.
func (d *GymDashboard) MealByTemplateID(templateID int64) *DayMeal {
	if d == nil {
		return nil
	}
	for i := range d.DayMeals {
		if d.DayMeals[i].MealTemplateID == templateID {
			return &d.DayMeals[i]
		}
	}
	return nil
}

// ExerciseByID returns the dashboard exercise row for the given id, or nil.
func (d *GymDashboard) ExerciseByID(exerciseID int64) *DashboardExercise {
	if d == nil {
		return nil
	}
	for i := range d.Exercises {
		if d.Exercises[i].ExerciseID == exerciseID {
			return &d.Exercises[i]
		}
	}
	return nil
}

// PlanAssignment maps a weekday (0=Sunday..6=Saturday) to a workout; a nil
// workout id is a rest day.
type PlanAssignment struct {
	Weekday   int    `json:"weekday"`
	WorkoutID *int64 `json:"workoutId"`
}

// WorkoutExercises orders exercises within a workout for a plan.
type WorkoutExercises struct {
	WorkoutID   int64   `json:"workoutId"`
	Name        string  `json:"name,omitempty"`
	ExerciseIDs []int64 `json:"exerciseIds"`
}

// WeeklyPlan assigns at most one workout per weekday, effective from a date.
type WeeklyPlan struct {
	Assignments      []PlanAssignment   `json:"assignments"`
	WorkoutExercises []WorkoutExercises `json:"workoutExercises,omitempty"`
	EffectiveFrom    string             `json:"effectiveFrom,omitempty"`
}

// WorkoutIDForWeekday returns the assigned workout id for the weekday, or nil
// for a rest day or missing assignment.
func (p *WeeklyPlan) WorkoutIDForWeekday(weekday int) *int64 {
	if p == nil {
		return nil
	}
	for _, a := range p.Assignments {
		if a.Weekday == weekday {
			return a.WorkoutID
		}
	}
	return nil
}
