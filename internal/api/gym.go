package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julianstephens/dayring/internal/models"
)

// WorkoutLog is one exercise's logged weight. A nil WeightKg is
// serialized as an explicit null, which the server reads as "remove this
// exercise from the day".
type WorkoutLog struct {
	ExerciseID int64    `json:"exerciseId"`
	WeightKg   *float64 `json:"weightKg"`
}

type SaveWorkoutRequest struct {
	Logs []WorkoutLog `json:"logs"`
}

type MealItemQuantity struct {
	TemplateItemID int64   `json:"templateItemId"`
	Quantity       float64 `json:"quantity"`
}

type SaveMealsRequest struct {
	Meals []MealSave `json:"meals"`
}

type MealSave struct {
	MealTemplateID int64              `json:"mealTemplateId"`
	Items          []MealItemQuantity `json:"items"`
}

// ExerciseRequest carries the editable fields of an exercise definition.
type ExerciseRequest struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type WorkoutRequest struct {
	Name        string  `json:"name"`
	ExerciseIDs []int64 `json:"exerciseIds"`
}

type MealTemplateRequest struct {
	Name  string                    `json:"name"`
	Items []models.MealTemplateItem `json:"items"`
}

type SavePlanRequest struct {
	Assignments []models.PlanAssignment `json:"assignments"`
}

func (c *Client) GymDashboard(ctx context.Context, date string) (*models.GymDashboard, error) {
	var out models.GymDashboard
	if err := c.get(ctx, "/gym/dashboard"+query(map[string]string{"date": date}), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveGymWorkout(ctx context.Context, date string, req SaveWorkoutRequest) (*models.GymDashboard, error) {
	var out models.GymDashboard
	if err := c.send(ctx, http.MethodPut, "/gym/day/"+date+"/workout", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveGymMeals(ctx context.Context, date string, req SaveMealsRequest) (*models.GymDashboard, error) {
	var out models.GymDashboard
	if err := c.send(ctx, http.MethodPut, "/gym/day/"+date+"/meals", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GymBody(ctx context.Context, date string) (*models.BodyProfile, error) {
	var out models.BodyProfile
	if err := c.get(ctx, "/gym/body"+query(map[string]string{"date": date}), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveGymBody(ctx context.Context, date string, weightKg float64) (*models.BodyProfile, error) {
	var out models.BodyProfile
	body := map[string]float64{"weightKg": weightKg}
	if err := c.send(ctx, http.MethodPut, "/gym/body"+query(map[string]string{"date": date}), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeightHistory returns logged body weights in [startDate, endDate].
func (c *Client) WeightHistory(ctx context.Context, startDate, endDate string) ([]models.WeightEntry, error) {
	var out []models.WeightEntry
	path := "/gym/body/history" + query(map[string]string{
		"startDate": startDate,
		"endDate":   endDate,
	})
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Exercises(ctx context.Context) ([]models.Exercise, error) {
	var out []models.Exercise
	if err := c.get(ctx, "/gym/exercises", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateExercise(ctx context.Context, req ExerciseRequest) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.send(ctx, http.MethodPost, "/gym/exercises", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateExercise(ctx context.Context, id int64, req ExerciseRequest) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/gym/exercises/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteExercise(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/gym/exercises/%d", id), nil, nil)
}

// GymWorkoutsAll returns every workout with its exercise list expanded,
// for the last-weights lookback and the plan editor.
func (c *Client) GymWorkoutsAll(ctx context.Context) ([]models.WorkoutExercises, error) {
	var out []models.WorkoutExercises
	if err := c.get(ctx, "/gym/workouts/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateWorkout(ctx context.Context, req WorkoutRequest) (*models.Workout, error) {
	var out models.Workout
	if err := c.send(ctx, http.MethodPost, "/gym/workouts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, id int64, req WorkoutRequest) (*models.Workout, error) {
	var out models.Workout
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/gym/workouts/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/gym/workouts/%d", id), nil, nil)
}

func (c *Client) MealTemplates(ctx context.Context) ([]models.MealTemplate, error) {
	var out []models.MealTemplate
	if err := c.get(ctx, "/gym/meal-templates", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMealTemplate(ctx context.Context, req MealTemplateRequest) (*models.MealTemplate, error) {
	var out models.MealTemplate
	if err := c.send(ctx, http.MethodPost, "/gym/meal-templates", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMealTemplate(ctx context.Context, id int64, req MealTemplateRequest) (*models.MealTemplate, error) {
	var out models.MealTemplate
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/gym/meal-templates/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMealTemplate(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/gym/meal-templates/%d", id), nil, nil)
}

func (c *Client) GymPlanCurrent(ctx context.Context) (*models.WeeklyPlan, error) {
	var out models.WeeklyPlan
	if err := c.get(ctx, "/gym/plan/current", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveGymPlan(ctx context.Context, req SavePlanRequest) (*models.WeeklyPlan, error) {
	var out models.WeeklyPlan
	if err := c.send(ctx, http.MethodPost, "/gym/plan", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
