package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julianstephens/dayring/internal/models"
)

// HabitRequest carries the editable fields of a habit definition.
type HabitRequest struct {
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Category       models.HabitCategory `json:"category,omitempty"`
	Type           string               `json:"type,omitempty"`
	TargetValue    *float64             `json:"targetValue,omitempty"`
	Unit           string               `json:"unit,omitempty"`
	FrequencyType  string               `json:"frequencyType,omitempty"`
	FrequencyValue *int                 `json:"frequencyValue,omitempty"`
	DaysOfWeek     string               `json:"daysOfWeek,omitempty"`
}

func (c *Client) Habits(ctx context.Context) ([]models.Habit, error) {
	var out []models.Habit
	if err := c.get(ctx, "/habits", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateHabit(ctx context.Context, req HabitRequest) (*models.Habit, error) {
	var out models.Habit
	if err := c.send(ctx, http.MethodPost, "/habits", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHabit(ctx context.Context, id int64, req HabitRequest) (*models.Habit, error) {
	var out models.Habit
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/habits/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateHabit retires a habit without deleting its history.
func (c *Client) DeactivateHabit(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/habits/%d/deactivate", id), nil, nil)
}
