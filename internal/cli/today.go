package cli

import (
	"fmt"

	"github.com/julianstephens/dayring/internal/validation"
)

type TodayCmd struct {
	Date string `help:"Show a past date (YYYY-MM-DD) read-only instead of today."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.DaySession()
	if err := sess.Load(reqCtx); err != nil {
		return err
	}
	if c.Date != "" {
		if err := sess.SelectDate(reqCtx, c.Date); err != nil {
			return err
		}
	}

	entry := sess.EffectiveEntry()
	fmt.Println(entry.Date)
	for _, h := range entry.Habits {
		row, _ := sess.ResolveRow(h.HabitID)
		line := fmt.Sprintf("  %s %3d  %s", Checkbox(row.Completed), h.HabitID, h.HabitTitle)
		if h.TargetValue != nil {
			line += fmt.Sprintf("  %s/%s %s", FormatValue(row.ActualValue), FormatValue(h.TargetValue), h.Unit)
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d%% complete\n", sess.CompletionPercent())
	if !sess.IsEditable() {
		fmt.Println("(read-only)")
	}
	return nil
}

type CheckCmd struct {
	HabitID int64 `arg:"" help:"Habit id to toggle."`
	Off     bool  `help:"Mark not completed instead of completed."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.DaySession()
	if err := sess.Load(reqCtx); err != nil {
		return err
	}
	if err := sess.SetCompleted(c.HabitID, !c.Off); err != nil {
		return err
	}
	fmt.Printf("%d%% complete\n", sess.CompletionPercent())
	return nil
}

type SetValueCmd struct {
	HabitID int64  `arg:"" help:"Habit id."`
	Value   string `arg:"" help:"Actual value, or '-' to clear."`
}

func (c *SetValueCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.DaySession()
	if err := sess.Load(reqCtx); err != nil {
		return err
	}

	var value *float64
	if c.Value != "-" {
		value = validation.ParseWeightInput(c.Value)
		if value == nil {
			return fmt.Errorf("invalid value %q", c.Value)
		}
	}
	if err := sess.SetActualValue(c.HabitID, value); err != nil {
		return err
	}
	fmt.Println("Saved to draft.")
	return nil
}

type SaveCmd struct{}

func (c *SaveCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.DaySession()
	if err := sess.Load(reqCtx); err != nil {
		return err
	}
	entry, err := sess.Commit(reqCtx)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s: %d%% complete\n", entry.Date, sess.CompletionPercent())
	return nil
}

type AutosaveCmd struct {
	State string `arg:"" enum:"on,off" help:"Turn draft autosave on or off."`
}

func (c *AutosaveCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.DaySession()
	if err := sess.Load(reqCtx); err != nil {
		return err
	}
	if err := sess.SetAutoSaveEnabled(c.State == "on"); err != nil {
		return err
	}
	fmt.Printf("Autosave %s.\n", c.State)
	return nil
}
