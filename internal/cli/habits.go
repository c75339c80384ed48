package cli

import (
	"fmt"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/validation"
)

type HabitCmd struct {
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	Edit       HabitEditCmd       `cmd:"" help:"Edit an existing habit."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Deactivate a habit."`
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	habits, err := ctx.Client.Habits(reqCtx)
	if err != nil {
		return err
	}
	for _, h := range habits {
		if !h.Active && !c.All {
			continue
		}
		state := ""
		if !h.Active {
			state = "  (inactive)"
		}
		line := fmt.Sprintf("%3d  %-24s %s", h.ID, h.Title, h.Category)
		if h.TargetValue != nil {
			line += fmt.Sprintf("  target %s %s", FormatValue(h.TargetValue), h.Unit)
		}
		fmt.Println(line + state)
	}
	return nil
}

type HabitAddCmd struct {
	Title      string  `arg:"" help:"Habit title."`
	Category   string  `help:"Category: HEALTH, FITNESS, MINDFULNESS, PRODUCTIVITY, LEARNING, OTHER." default:"OTHER"`
	Type       string  `help:"CHECKLIST or TARGET." default:"CHECKLIST"`
	Target     float64 `help:"Target value for target habits."`
	Unit       string  `help:"Unit for the target value."`
	Frequency  string  `help:"DAILY, TIMES_PER_WEEK or DAYS_OF_WEEK." default:"DAILY"`
	Times      int     `help:"Times per week (1-7) for TIMES_PER_WEEK."`
	DaysOfWeek string  `help:"Digits 0-6 (0=Sunday) for DAYS_OF_WEEK, e.g. 135."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	existing, err := ctx.Client.Habits(reqCtx)
	if err != nil {
		return err
	}

	var target *float64
	if c.Target > 0 {
		target = &c.Target
	}
	var times *int
	if c.Times > 0 {
		times = &c.Times
	}

	result := validation.New().ValidateHabit(
		c.Title, c.Type, target, c.Frequency, times, c.DaysOfWeek, 0, existing)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	habit, err := ctx.Client.CreateHabit(reqCtx, api.HabitRequest{
		Title:          c.Title,
		Category:       models.HabitCategory(c.Category),
		Type:           c.Type,
		TargetValue:    target,
		Unit:           c.Unit,
		FrequencyType:  c.Frequency,
		FrequencyValue: times,
		DaysOfWeek:     c.DaysOfWeek,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added habit %d: %s\n", habit.ID, habit.Title)
	return nil
}

type HabitEditCmd struct {
	ID         int64   `arg:"" help:"Habit id."`
	Title      string  `help:"New title."`
	Category   string  `help:"New category."`
	Target     float64 `help:"New target value."`
	Unit       string  `help:"New unit."`
	Frequency  string  `help:"New frequency type."`
	Times      int     `help:"New times per week."`
	DaysOfWeek string  `help:"New days of week."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	existing, err := ctx.Client.Habits(reqCtx)
	if err != nil {
		return err
	}
	var current *models.Habit
	for i := range existing {
		if existing[i].ID == c.ID {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("habit %d not found", c.ID)
	}

	// Unset flags keep the current value.
	req := api.HabitRequest{
		Title:          current.Title,
		Category:       current.Category,
		Type:           current.Type,
		TargetValue:    current.TargetValue,
		Unit:           current.Unit,
		FrequencyType:  current.FrequencyType,
		FrequencyValue: current.FrequencyValue,
		DaysOfWeek:     current.DaysOfWeek,
	}
	if c.Title != "" {
		req.Title = c.Title
	}
	if c.Category != "" {
		req.Category = models.HabitCategory(c.Category)
	}
	if c.Target > 0 {
		req.TargetValue = &c.Target
	}
	if c.Unit != "" {
		req.Unit = c.Unit
	}
	if c.Frequency != "" {
		req.FrequencyType = c.Frequency
	}
	if c.Times > 0 {
		req.FrequencyValue = &c.Times
	}
	if c.DaysOfWeek != "" {
		req.DaysOfWeek = c.DaysOfWeek
	}

	result := validation.New().ValidateHabit(
		req.Title, req.Type, req.TargetValue, req.FrequencyType, req.FrequencyValue,
		req.DaysOfWeek, c.ID, existing)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	habit, err := ctx.Client.UpdateHabit(reqCtx, c.ID, req)
	if err != nil {
		return err
	}
	fmt.Printf("Updated habit %d: %s\n", habit.ID, habit.Title)
	return nil
}

type HabitDeactivateCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *HabitDeactivateCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	if err := ctx.Client.DeactivateHabit(reqCtx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deactivated habit %d.\n", c.ID)
	return nil
}
