package cli

import (
	"fmt"

	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/day"
	"github.com/julianstephens/dayring/internal/models"
)

type PulseCmd struct {
	List    PulseListCmd    `cmd:"" help:"List today's pulse tasks." default:"1"`
	Add     PulseAddCmd     `cmd:"" help:"Add a pulse task."`
	Done    PulseDoneCmd    `cmd:"" help:"Toggle a task's completion."`
	Backlog PulseBacklogCmd `cmd:"" help:"List the future-task backlog."`
	Promote PulsePromoteCmd `cmd:"" help:"Move a backlog task onto today."`
}

type PulseListCmd struct{}

func (c *PulseListCmd) Run(ctx *Context) error {
	tasks, err := day.LoadPulseTasks(ctx.Store, dates.Today())
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks for today.")
		return nil
	}
	printTasks(tasks)
	return nil
}

type PulseAddCmd struct {
	Title   string `arg:"" help:"Task title."`
	Project string `help:"Project name. Makes this a project task."`
	Later   bool   `help:"Add to the backlog instead of today."`
}

func (c *PulseAddCmd) Run(ctx *Context) error {
	kind := models.PulseQuick
	if c.Project != "" {
		kind = models.PulseProject
	}
	task := day.NewPulseTask(c.Title, kind, c.Project)

	if c.Later {
		tasks, err := day.LoadFutureTasks(ctx.Store)
		if err != nil {
			return err
		}
		if err := day.SaveFutureTasks(ctx.Store, append(tasks, task)); err != nil {
			return err
		}
		fmt.Printf("Added to backlog: %s\n", task.Title)
		return nil
	}

	today := dates.Today()
	tasks, err := day.LoadPulseTasks(ctx.Store, today)
	if err != nil {
		return err
	}
	if err := day.SavePulseTasks(ctx.Store, today, append(tasks, task)); err != nil {
		return err
	}
	fmt.Printf("Added: %s\n", task.Title)
	return nil
}

type PulseDoneCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *PulseDoneCmd) Run(ctx *Context) error {
	today := dates.Today()
	tasks, err := day.LoadPulseTasks(ctx.Store, today)
	if err != nil {
		return err
	}
	if !day.TogglePulseTask(tasks, c.ID) {
		return fmt.Errorf("task %s not found", c.ID)
	}
	if err := day.SavePulseTasks(ctx.Store, today, tasks); err != nil {
		return err
	}
	printTasks(tasks)
	return nil
}

type PulseBacklogCmd struct{}

func (c *PulseBacklogCmd) Run(ctx *Context) error {
	tasks, err := day.LoadFutureTasks(ctx.Store)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("Backlog is empty.")
		return nil
	}
	printTasks(tasks)
	return nil
}

type PulsePromoteCmd struct {
	ID string `arg:"" help:"Backlog task id."`
}

func (c *PulsePromoteCmd) Run(ctx *Context) error {
	if err := day.PromoteFutureTask(ctx.Store, c.ID, dates.Today()); err != nil {
		return err
	}
	fmt.Println("Promoted onto today.")
	return nil
}

func printTasks(tasks []models.PulseTask) {
	for _, t := range tasks {
		label := t.Title
		if t.ProjectName != "" {
			label += "  (" + t.ProjectName + ")"
		}
		fmt.Printf("  %s %s  %s\n", Checkbox(t.Completed), t.ID, label)
	}
}
