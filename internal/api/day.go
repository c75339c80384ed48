package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julianstephens/dayring/internal/models"
)

// SaveDayRow is one habit's resolved state in a day save. ActualValue is
// omitted entirely when unset; the server treats absence as null.
type SaveDayRow struct {
	HabitID     int64    `json:"habitId"`
	Completed   bool     `json:"completed"`
	ActualValue *float64 `json:"actualValue,omitempty"`
}

// SaveDayRequest is the full payload of a day save. Mood, energy, tags,
// journal and pulse tasks pass through unchanged from the loaded entry.
type SaveDayRequest struct {
	Habits      []SaveDayRow       `json:"habits"`
	MoodScore   *int               `json:"moodScore,omitempty"`
	EnergyScore *int               `json:"energyScore,omitempty"`
	MoodTags    []string           `json:"moodTags,omitempty"`
	JournalText string             `json:"journalText,omitempty"`
	PulseTasks  []models.PulseTask `json:"pulseTasks,omitempty"`
}

// Today fetches today's entry, creating it server-side if absent.
func (c *Client) Today(ctx context.Context) (*models.DayEntry, error) {
	var out models.DayEntry
	if err := c.get(ctx, "/day/today", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveToday(ctx context.Context, req SaveDayRequest) (*models.DayEntry, error) {
	var out models.DayEntry
	if err := c.send(ctx, http.MethodPost, "/day/today/save", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DayByDate(ctx context.Context, date string) (*models.DayEntry, error) {
	var out models.DayEntry
	if err := c.get(ctx, "/day/by-date/"+date, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthEntries returns the sparse list of saved entries for a month. Days
// with no entry are simply absent; gap filling is the caller's concern.
func (c *Client) MonthEntries(ctx context.Context, year, month int) ([]models.DayEntry, error) {
	var out []models.DayEntry
	if err := c.get(ctx, fmt.Sprintf("/day/month/%d/%d", year, month), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DailyStats(ctx context.Context, startDate, endDate string) ([]models.DailyStat, error) {
	var out []models.DailyStat
	path := "/stats/daily" + query(map[string]string{
		"startDate": startDate,
		"endDate":   endDate,
	})
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MonthlyStats(ctx context.Context, year, month int) (*models.MonthlyStats, error) {
	var out models.MonthlyStats
	if err := c.get(ctx, fmt.Sprintf("/stats/monthly/%d/%d", year, month), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CategoryStats(ctx context.Context, year, month int) ([]models.CategoryStat, error) {
	var out []models.CategoryStat
	if err := c.get(ctx, fmt.Sprintf("/stats/categories/%d/%d", year, month), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StreakStats(ctx context.Context) (*models.StreakStats, error) {
	var out models.StreakStats
	if err := c.get(ctx, "/stats/streaks", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportMonth returns the server-rendered export document for a month.
func (c *Client) ExportMonth(ctx context.Context, year, month int) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	if err := c.get(ctx, fmt.Sprintf("/export/month/%d/%d", year, month), &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// MonthlyPrompt returns the AI reflection prompt assembled from a month's
// entries.
func (c *Client) MonthlyPrompt(ctx context.Context, year, month int) (string, error) {
	var out struct {
		Prompt string `json:"prompt"`
	}
	if err := c.get(ctx, fmt.Sprintf("/ai/monthly-prompt/%d/%d", year, month), &out); err != nil {
		return "", err
	}
	return out.Prompt, nil
}
