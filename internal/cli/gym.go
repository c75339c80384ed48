package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/gym"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/tui"
)

type GymCmd struct {
	Show      GymShowCmd      `cmd:"" help:"Show the gym dashboard for a date." default:"1"`
	Weight    GymWeightCmd    `cmd:"" help:"Set an exercise weight for today."`
	Remove    GymRemoveCmd    `cmd:"" help:"Remove an exercise from today's workout."`
	CopyLast  GymCopyLastCmd  `cmd:"" help:"Copy weights from the last matching workout."`
	SaveDay   GymSaveCmd      `cmd:"" help:"Save today's workout and meals."`
	Meal      GymMealCmd      `cmd:"" help:"Manage today's meals."`
	Notes     GymNotesCmd     `cmd:"" help:"Show or set the day's training notes."`
	Body      GymBodyCmd      `cmd:"" help:"Record or show body weight."`
	Trend     GymTrendCmd     `cmd:"" help:"Show the body-weight trend."`
	Plan      GymPlanCmd      `cmd:"" help:"Show or edit the weekly workout plan."`
	Exercises GymExercisesCmd `cmd:"" help:"Manage the exercise catalog."`
	Workouts  GymWorkoutsCmd  `cmd:"" help:"Manage workouts."`
	Templates GymTemplatesCmd `cmd:"" help:"Manage meal templates."`
}

type GymShowCmd struct {
	Date string `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *GymShowCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	date := c.Date
	if date == "" {
		date = dates.Today()
	}
	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, date); err != nil {
		return err
	}

	dash := sess.Dashboard()
	if dash.Workout != nil {
		fmt.Printf("%s  %s\n\n", dash.Date, dash.Workout.Name)
	} else {
		fmt.Printf("%s  rest day\n\n", dash.Date)
	}

	for _, ex := range sess.VisibleExercises() {
		weight := sess.WeightText(ex.ExerciseID)
		if weight == "" {
			weight = "–"
		} else {
			weight += " kg"
		}
		extra := ""
		if ex.Extra {
			extra = "  (extra)"
		}
		fmt.Printf("  %3d  %-24s %s%s\n", ex.ExerciseID, ex.Name, weight, extra)
	}

	if len(dash.DayMeals) > 0 {
		fmt.Println()
		for _, meal := range dash.DayMeals {
			fmt.Printf("  %s: %.0f kcal, %.0fg protein\n",
				meal.Name, meal.ConsumedTotals.CaloriesKcal, meal.ConsumedTotals.ProteinG)
		}
		t := dash.ConsumedTotals
		fmt.Printf("  total: %.0f kcal  P %.0fg  C %.0fg  F %.0fg\n",
			t.CaloriesKcal, t.ProteinG, t.CarbsG, t.FatsG)
	}

	if !sess.CanEdit() {
		fmt.Println("\n(read-only)")
	}
	return nil
}

type GymWeightCmd struct {
	ExerciseID int64  `arg:"" help:"Exercise id."`
	Weight     string `arg:"" help:"Weight in kg, or '-' to clear."`
}

func (c *GymWeightCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, dates.Today()); err != nil {
		return err
	}
	text := c.Weight
	if text == "-" {
		text = ""
	}
	if err := sess.SetExerciseWeight(c.ExerciseID, text); err != nil {
		return err
	}
	if err := sess.SaveWorkout(reqCtx); err != nil {
		return err
	}
	fmt.Println("Workout saved.")
	return nil
}

type GymRemoveCmd struct {
	ExerciseID int64 `arg:"" help:"Exercise id."`
}

func (c *GymRemoveCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, dates.Today()); err != nil {
		return err
	}
	if err := sess.RemoveExercise(c.ExerciseID); err != nil {
		return err
	}
	if err := sess.SaveWorkout(reqCtx); err != nil {
		return err
	}
	fmt.Println("Workout saved.")
	return nil
}

type GymCopyLastCmd struct{}

func (c *GymCopyLastCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, dates.Today()); err != nil {
		return err
	}
	applied, err := sess.ApplyLastWorkoutWeights(reqCtx)
	if err != nil {
		return err
	}
	if !applied {
		fmt.Println("No earlier workout of this type found.")
		return nil
	}
	if err := sess.SaveWorkout(reqCtx); err != nil {
		return err
	}
	fmt.Println("Weights copied and saved.")
	return nil
}

type GymSaveCmd struct{}

func (c *GymSaveCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, dates.Today()); err != nil {
		return err
	}
	if err := sess.SaveWorkout(reqCtx); err != nil {
		return err
	}
	if err := sess.SaveMeals(reqCtx); err != nil {
		return err
	}
	fmt.Println("Saved.")
	return nil
}

type GymMealCmd struct {
	Add    GymMealAddCmd    `cmd:"" help:"Add a meal from a template."`
	Remove GymMealRemoveCmd `cmd:"" help:"Remove a meal."`
	Fill   GymMealFillCmd   `cmd:"" help:"Fill a meal to its reference quantities."`
	Qty    GymMealQtyCmd    `cmd:"" help:"Set an item quantity."`
}

type GymMealAddCmd struct {
	TemplateID int64 `arg:"" help:"Meal template id."`
}

func (c *GymMealAddCmd) Run(ctx *Context) error {
	return withMeals(ctx, func(sess *gym.Session) error {
		return sess.AddMeal(c.TemplateID)
	})
}

type GymMealRemoveCmd struct {
	TemplateID int64 `arg:"" help:"Meal template id."`
}

func (c *GymMealRemoveCmd) Run(ctx *Context) error {
	return withMeals(ctx, func(sess *gym.Session) error {
		return sess.RemoveMeal(c.TemplateID)
	})
}

type GymMealFillCmd struct {
	TemplateID int64 `arg:"" help:"Meal template id."`
}

func (c *GymMealFillCmd) Run(ctx *Context) error {
	return withMeals(ctx, func(sess *gym.Session) error {
		return sess.FillMealToBase(c.TemplateID)
	})
}

type GymMealQtyCmd struct {
	TemplateID int64  `arg:"" help:"Meal template id."`
	ItemID     int64  `arg:"" help:"Item id."`
	Quantity   string `arg:"" help:"Quantity in the item's unit."`
}

func (c *GymMealQtyCmd) Run(ctx *Context) error {
	return withMeals(ctx, func(sess *gym.Session) error {
		return sess.SetMealQuantity(c.TemplateID, c.ItemID, c.Quantity)
	})
}

// withMeals runs a meal mutation against today's dashboard and saves.
func withMeals(ctx *Context, mutate func(*gym.Session) error) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, dates.Today()); err != nil {
		return err
	}
	if err := mutate(sess); err != nil {
		return err
	}
	if err := sess.SaveMeals(reqCtx); err != nil {
		return err
	}
	t := sess.Dashboard().ConsumedTotals
	fmt.Printf("Saved. Total: %.0f kcal  P %.0fg  C %.0fg  F %.0fg\n",
		t.CaloriesKcal, t.ProteinG, t.CarbsG, t.FatsG)
	return nil
}

type GymNotesCmd struct {
	Text []string `arg:"" optional:"" help:"Note text. Omit to show the current notes."`
	Date string   `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *GymNotesCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	date := c.Date
	if date == "" {
		date = dates.Today()
	}
	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, date); err != nil {
		return err
	}

	if len(c.Text) == 0 {
		notes := sess.Notes()
		if notes == "" {
			fmt.Println("No notes.")
			return nil
		}
		fmt.Println(notes)
		return nil
	}

	sess.SetNotes(strings.Join(c.Text, " "))
	if err := sess.FlushNotes(); err != nil {
		return err
	}
	fmt.Printf("Notes saved for %s.\n", date)
	return nil
}

type GymBodyCmd struct {
	Weight  float64 `help:"Body weight in kg to record for today."`
	Date    string  `help:"Date (YYYY-MM-DD), defaults to today."`
	History int     `help:"List the measurements of the last N days instead."`
}

func (c *GymBodyCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	date := c.Date
	if date == "" {
		date = dates.Today()
	}

	if c.History > 0 {
		start, err := dates.AddDays(date, -c.History)
		if err != nil {
			return err
		}
		entries, err := ctx.Client.WeightHistory(reqCtx, start, date)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No measurements.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("  %s  %.1f kg\n", e.Date, e.WeightKg)
		}
		return nil
	}

	if c.Weight > 0 {
		profile, err := ctx.Client.SaveGymBody(reqCtx, date, c.Weight)
		if err != nil {
			return err
		}
		fmt.Printf("Recorded %s kg for %s\n", FormatValue(profile.WeightKg), date)
		return nil
	}

	profile, err := ctx.Client.GymBody(reqCtx, date)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s kg\n", date, FormatValue(profile.WeightKg))
	if profile.Targets != nil {
		t := profile.Targets
		fmt.Printf("targets: %.0f kcal  P %.0fg  C %.0fg  F %.0fg\n",
			t.CaloriesKcal, t.ProteinG, t.CarbsG, t.FatsG)
	}
	return nil
}

type GymTrendCmd struct{}

func (c *GymTrendCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	sess := ctx.GymSession()
	if err := sess.Load(reqCtx, dates.Today()); err != nil {
		return err
	}
	window, err := sess.LoadTrend(reqCtx)
	if err != nil {
		return err
	}

	points := gym.TrendPoints(window)
	if points == nil {
		fmt.Println("No measurements in the last two weeks.")
		return nil
	}
	fmt.Printf("trend: %s\n", tui.Sparkline(points))
	for _, p := range gym.LastMeasured(window, 3) {
		fmt.Printf("  %s  %s kg\n", p.Date, FormatValue(p.WeightKg))
	}
	return nil
}

type GymPlanCmd struct {
	Show GymPlanShowCmd `cmd:"" help:"Show this week's workout plan." default:"1"`
	Set  GymPlanSetCmd  `cmd:"" help:"Assign a workout to a weekday."`
}

type GymPlanShowCmd struct{}

func (c *GymPlanShowCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	plan, err := ctx.Client.GymPlanCurrent(reqCtx)
	if err != nil {
		return err
	}
	names := gym.WorkoutNames(plan.WorkoutExercises)
	today := dates.Today()
	week, err := gym.WeekPlan(plan, today, today, names)
	if err != nil {
		return err
	}
	for _, d := range week {
		marker := "  "
		if d.IsToday {
			marker = "> "
		}
		label := d.WorkoutName
		if d.WorkoutID == nil {
			label = "rest"
		}
		fmt.Printf("%s%s %s  %s\n", marker, d.Label, d.Date, label)
	}
	return nil
}

type GymPlanSetCmd struct {
	Weekday   int    `arg:"" help:"Weekday 0-6, 0=Sunday."`
	WorkoutID string `arg:"" help:"Workout id, or '-' for a rest day."`
}

func (c *GymPlanSetCmd) Run(ctx *Context) error {
	if c.Weekday < 0 || c.Weekday > 6 {
		return fmt.Errorf("weekday must be 0-6")
	}
	var workoutID *int64
	if c.WorkoutID != "-" {
		id, err := strconv.ParseInt(c.WorkoutID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id %q", c.WorkoutID)
		}
		workoutID = &id
	}

	reqCtx, cancel := RequestContext()
	defer cancel()

	plan, err := ctx.Client.GymPlanCurrent(reqCtx)
	if err != nil {
		return err
	}

	assignments := make([]models.PlanAssignment, 0, 7)
	found := false
	for _, a := range plan.Assignments {
		if a.Weekday == c.Weekday {
			a.WorkoutID = workoutID
			found = true
		}
		assignments = append(assignments, a)
	}
	if !found {
		assignments = append(assignments, models.PlanAssignment{Weekday: c.Weekday, WorkoutID: workoutID})
	}

	if _, err := ctx.Client.SaveGymPlan(reqCtx, api.SavePlanRequest{Assignments: assignments}); err != nil {
		return err
	}
	label := "rest"
	if workoutID != nil {
		label = c.WorkoutID
	}
	fmt.Printf("%s: %s\n", dates.WeekdayLabel(c.Weekday), label)
	return nil
}

type GymExercisesCmd struct {
	List    GymExercisesListCmd    `cmd:"" help:"List exercises." default:"1"`
	BulkAdd GymExercisesBulkAddCmd `cmd:"" help:"Create exercises from a name-per-line file."`
	Rename  GymExercisesRenameCmd  `cmd:"" help:"Rename an exercise."`
	Delete  GymExercisesDeleteCmd  `cmd:"" help:"Delete an exercise."`
}

type GymExercisesListCmd struct{}

func (c *GymExercisesListCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	exercises, err := ctx.Client.Exercises(reqCtx)
	if err != nil {
		return err
	}
	for _, ex := range exercises {
		state := ""
		if !ex.Active {
			state = "  (inactive)"
		}
		fmt.Printf("%3d  %-24s %s%s\n", ex.ID, ex.Name, ex.Type, state)
	}
	return nil
}

type GymExercisesBulkAddCmd struct {
	File string `arg:"" help:"File with one exercise per line, 'name | type'." type:"existingfile"`
}

func (c *GymExercisesBulkAddCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	result := gym.BulkCreateExercises(reqCtx, ctx.Client, string(data))
	fmt.Printf("Created %d exercises.\n", len(result.Created))
	for _, f := range result.Failed {
		fmt.Printf("  failed: %s\n", strings.TrimSpace(f))
	}
	return nil
}

type GymExercisesRenameCmd struct {
	ID   int64  `arg:"" help:"Exercise id."`
	Name string `arg:"" help:"New name."`
	Type string `help:"New type, kept when omitted."`
}

func (c *GymExercisesRenameCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	ex, err := ctx.Client.UpdateExercise(reqCtx, c.ID, api.ExerciseRequest{Name: c.Name, Type: c.Type})
	if err != nil {
		return err
	}
	fmt.Printf("Updated exercise %d: %s\n", ex.ID, ex.Name)
	return nil
}

type GymExercisesDeleteCmd struct {
	ID int64 `arg:"" help:"Exercise id."`
}

func (c *GymExercisesDeleteCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	if err := ctx.Client.DeleteExercise(reqCtx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted exercise %d.\n", c.ID)
	return nil
}

type GymWorkoutsCmd struct {
	List   GymWorkoutsListCmd   `cmd:"" help:"List workouts with their exercises." default:"1"`
	Add    GymWorkoutsAddCmd    `cmd:"" help:"Create a workout."`
	Edit   GymWorkoutsEditCmd   `cmd:"" help:"Rename a workout or replace its exercises."`
	Delete GymWorkoutsDeleteCmd `cmd:"" help:"Delete a workout."`
}

type GymWorkoutsListCmd struct{}

func (c *GymWorkoutsListCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	workouts, err := ctx.Client.GymWorkoutsAll(reqCtx)
	if err != nil {
		return err
	}
	for _, w := range workouts {
		ids := make([]string, len(w.ExerciseIDs))
		for i, id := range w.ExerciseIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		fmt.Printf("%3d  %-24s [%s]\n", w.WorkoutID, w.Name, strings.Join(ids, " "))
	}
	return nil
}

type GymWorkoutsAddCmd struct {
	Name      string  `arg:"" help:"Workout name."`
	Exercises []int64 `help:"Exercise ids, in order." sep:","`
}

func (c *GymWorkoutsAddCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	w, err := ctx.Client.CreateWorkout(reqCtx, api.WorkoutRequest{Name: c.Name, ExerciseIDs: c.Exercises})
	if err != nil {
		return err
	}
	fmt.Printf("Added workout %d: %s\n", w.ID, w.Name)
	return nil
}

type GymWorkoutsEditCmd struct {
	ID        int64   `arg:"" help:"Workout id."`
	Name      string  `help:"New name, kept when omitted."`
	Exercises []int64 `help:"Replacement exercise ids, kept when omitted." sep:","`
}

func (c *GymWorkoutsEditCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	workouts, err := ctx.Client.GymWorkoutsAll(reqCtx)
	if err != nil {
		return err
	}
	req := api.WorkoutRequest{}
	for _, w := range workouts {
		if w.WorkoutID == c.ID {
			req.Name = w.Name
			req.ExerciseIDs = w.ExerciseIDs
			break
		}
	}
	if req.Name == "" && len(req.ExerciseIDs) == 0 {
		return fmt.Errorf("workout %d not found", c.ID)
	}
	if c.Name != "" {
		req.Name = c.Name
	}
	if len(c.Exercises) > 0 {
		req.ExerciseIDs = c.Exercises
	}

	w, err := ctx.Client.UpdateWorkout(reqCtx, c.ID, req)
	if err != nil {
		return err
	}
	fmt.Printf("Updated workout %d: %s\n", w.ID, w.Name)
	return nil
}

type GymWorkoutsDeleteCmd struct {
	ID int64 `arg:"" help:"Workout id."`
}

func (c *GymWorkoutsDeleteCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	if err := ctx.Client.DeleteWorkout(reqCtx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted workout %d.\n", c.ID)
	return nil
}

type GymTemplatesCmd struct {
	List   GymTemplatesListCmd   `cmd:"" help:"List meal templates." default:"1"`
	Add    GymTemplatesAddCmd    `cmd:"" help:"Create an empty meal template."`
	Rename GymTemplatesRenameCmd `cmd:"" help:"Rename a meal template."`
	Delete GymTemplatesDeleteCmd `cmd:"" help:"Delete a meal template."`
}

type GymTemplatesAddCmd struct {
	Name string `arg:"" help:"Template name. Items are added through the web app."`
}

func (c *GymTemplatesAddCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	t, err := ctx.Client.CreateMealTemplate(reqCtx, api.MealTemplateRequest{Name: c.Name})
	if err != nil {
		return err
	}
	fmt.Printf("Added meal template %d: %s\n", t.ID, t.Name)
	return nil
}

type GymTemplatesListCmd struct {
	Items bool `help:"Show each template's items."`
}

func (c *GymTemplatesListCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	templates, err := ctx.Client.MealTemplates(reqCtx)
	if err != nil {
		return err
	}
	for _, t := range templates {
		state := ""
		if !t.Active {
			state = "  (inactive)"
		}
		fmt.Printf("%3d  %-24s %d items%s\n", t.ID, t.Name, len(t.Items), state)
		if c.Items {
			for _, item := range t.Items {
				fmt.Printf("       %-20s %.0f %s  %.0f kcal  P %.0fg\n",
					item.Name, item.BaseQuantity, item.UnitLabel, item.CaloriesKcal, item.ProteinG)
			}
		}
	}
	return nil
}

type GymTemplatesRenameCmd struct {
	ID   int64  `arg:"" help:"Meal template id."`
	Name string `arg:"" help:"New name."`
}

func (c *GymTemplatesRenameCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	templates, err := ctx.Client.MealTemplates(reqCtx)
	if err != nil {
		return err
	}
	var items []models.MealTemplateItem
	found := false
	for _, t := range templates {
		if t.ID == c.ID {
			items = t.Items
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("meal template %d not found", c.ID)
	}

	t, err := ctx.Client.UpdateMealTemplate(reqCtx, c.ID, api.MealTemplateRequest{Name: c.Name, Items: items})
	if err != nil {
		return err
	}
	fmt.Printf("Updated meal template %d: %s\n", t.ID, t.Name)
	return nil
}

type GymTemplatesDeleteCmd struct {
	ID int64 `arg:"" help:"Meal template id."`
}

func (c *GymTemplatesDeleteCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	if err := ctx.Client.DeleteMealTemplate(reqCtx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted meal template %d.\n", c.ID)
	return nil
}
