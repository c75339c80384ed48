package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/validation"
)

// HabitFormModel holds the raw form inputs for a new habit.
type HabitFormModel struct {
	Title          string
	Category       models.HabitCategory
	Type           string
	Target         string
	Unit           string
	FrequencyType  string
	FrequencyValue string
	DaysOfWeek     string
}

// TaskFormModel holds the raw form inputs for a new pulse task.
type TaskFormModel struct {
	Title       string
	Kind        models.PulseTaskKind
	ProjectName string
}

// NewHabitForm builds the add-habit form.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title),
			huh.NewSelect[models.HabitCategory]().
				Title("Category").
				Options(
					huh.NewOption("Health", models.CategoryHealth),
					huh.NewOption("Fitness", models.CategoryFitness),
					huh.NewOption("Mindfulness", models.CategoryMindfulness),
					huh.NewOption("Productivity", models.CategoryProductivity),
					huh.NewOption("Learning", models.CategoryLearning),
					huh.NewOption("Other", models.CategoryOther),
				).
				Value(&fm.Category),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Checklist", "CHECKLIST"),
					huh.NewOption("Target", "TARGET"),
				).
				Value(&fm.Type),
			huh.NewInput().
				Title("Target value").
				Description("Required for target habits").
				Value(&fm.Target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return err
					}
					if v <= 0 {
						return fmt.Errorf("target must be positive")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Value(&fm.Unit),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", "DAILY"),
					huh.NewOption("Times per week", "TIMES_PER_WEEK"),
					huh.NewOption("Days of week", "DAYS_OF_WEEK"),
				).
				Value(&fm.FrequencyType),
			huh.NewInput().
				Title("Times per week (1-7)").
				Value(&fm.FrequencyValue).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i < 1 || i > 7 {
						return fmt.Errorf("must be 1-7")
					}
					return nil
				}),
			huh.NewInput().
				Title("Days of week").
				Description("Digits 0-6, 0=Sunday, e.g. 135").
				Value(&fm.DaysOfWeek),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewTaskForm builds the add-pulse-task form.
func NewTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[models.PulseTaskKind]().
				Title("Kind").
				Options(
					huh.NewOption("Quick (24h)", models.PulseQuick),
					huh.NewOption("Project", models.PulseProject),
				).
				Value(&fm.Kind),
			huh.NewInput().
				Title("Project").
				Description("Only for project tasks").
				Value(&fm.ProjectName),
		),
	).WithTheme(huh.ThemeDracula())
}

// habitRequest validates the form against existing habits and converts it to
// the API payload. A non-nil error carries the first conflict's message.
func (fm *HabitFormModel) habitRequest(existing []models.Habit) (api.HabitRequest, error) {
	var target *float64
	if s := strings.TrimSpace(fm.Target); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			target = &v
		}
	}
	var freqValue *int
	if s := strings.TrimSpace(fm.FrequencyValue); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			freqValue = &i
		}
	}

	result := validation.New().ValidateHabit(
		fm.Title, fm.Type, target, fm.FrequencyType, freqValue, fm.DaysOfWeek, 0, existing)
	if result.HasConflicts() {
		return api.HabitRequest{}, fmt.Errorf("%s", result.Conflicts[0].Description)
	}

	return api.HabitRequest{
		Title:          strings.TrimSpace(fm.Title),
		Category:       fm.Category,
		Type:           fm.Type,
		TargetValue:    target,
		Unit:           strings.TrimSpace(fm.Unit),
		FrequencyType:  fm.FrequencyType,
		FrequencyValue: freqValue,
		DaysOfWeek:     fm.DaysOfWeek,
	}, nil
}
