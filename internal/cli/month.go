package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/dayring/internal/dates"
	"github.com/julianstephens/dayring/internal/month"
	"github.com/julianstephens/dayring/internal/tui"
)

// loadProjection fetches a month's entries and stats and builds its
// projection.
func loadProjection(ctx context.Context, appCtx *Context, year, mon int) (*month.Projection, error) {
	entries, err := appCtx.Client.MonthEntries(ctx, year, mon)
	if err != nil {
		return nil, err
	}
	start := dates.ISO(year, mon, 1)
	end := dates.ISO(year, mon, dates.DaysInMonth(year, mon))
	stats, err := appCtx.Client.DailyStats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	signup := ""
	if profile, err := appCtx.Client.Me(ctx); err == nil {
		signup = profile.SignupDate
	}
	return month.New(year, mon, entries, stats, signup), nil
}

// defaultYearMonth fills zero year/month from the local clock.
func defaultYearMonth(year, mon int) (int, int) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if mon == 0 {
		mon = int(now.Month())
	}
	return year, mon
}

type MonthCmd struct {
	Year  int `help:"Year, defaults to current."`
	Month int `help:"Month 1-12, defaults to current."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	year, mon := defaultYearMonth(c.Year, c.Month)
	proj, err := loadProjection(reqCtx, ctx, year, mon)
	if err != nil {
		return err
	}

	sess := ctx.DaySession()
	todayISO := dates.Today()
	hasLive := dates.InYearMonth(todayISO, year, mon)
	livePercent := 0.0
	live := month.LiveResolver(nil)
	var activeIDs map[int64]bool

	if habits, err := ctx.Client.Habits(reqCtx); err == nil {
		activeIDs = make(map[int64]bool, len(habits))
		for _, h := range habits {
			if h.Active {
				activeIDs[h.ID] = true
			}
		}
	}
	if hasLive {
		if err := sess.Load(reqCtx); err == nil {
			livePercent = float64(sess.CompletionPercent())
			live = func(habitID int64) (bool, bool) {
				row, ok := sess.ResolveRow(habitID)
				return row.Completed, ok
			}
		} else {
			hasLive = false
		}
	}

	fmt.Printf("%04d-%02d\n\n", year, mon)

	entry := sess.EffectiveEntry()
	metas := proj.HabitMetaList(&entry, activeIDs)
	days := dates.DaysInMonth(year, mon)
	for _, meta := range metas {
		fmt.Printf("%-24s ", meta.Title)
		for d := 1; d <= days; d++ {
			iso := dates.ISO(year, mon, d)
			fmt.Print(tui.CellRune(proj.Classify(meta.HabitID, iso, todayISO, live)))
		}
		fmt.Println()
	}

	perDay := proj.PerDay(todayISO, livePercent, hasLive)
	fmt.Printf("\n%-24s %s\n", "daily %", tui.Sparkline(perDay))
	fmt.Printf("average: %.0f%%\n\n", proj.Average(todayISO, livePercent, hasLive))
	fmt.Println(tui.WeekBars(proj.WeeklyBars(todayISO, livePercent, hasLive)))

	if shares := proj.CategoryBreakdown(); len(shares) > 0 {
		fmt.Println()
		for _, s := range shares {
			fmt.Printf("%-14s %5.1f%%  (%d habits)\n", s.Category, s.Percent, s.Habits)
		}
	}
	return nil
}

type MonthCompareCmd struct {
	Year  int    `arg:"" help:"First year."`
	Month int    `arg:"" help:"First month 1-12."`
	With  string `help:"Second month as YYYY-MM, defaults to the month after the first." placeholder:"YYYY-MM"`
}

func (c *MonthCompareCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	yearB, monB := dates.StepMonth(c.Year, c.Month, 1)
	if c.With != "" {
		if _, err := fmt.Sscanf(c.With, "%d-%d", &yearB, &monB); err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", c.With)
		}
	}

	a, err := loadProjection(reqCtx, ctx, c.Year, c.Month)
	if err != nil {
		return err
	}
	b, err := loadProjection(reqCtx, ctx, yearB, monB)
	if err != nil {
		return err
	}

	cmp := month.Compare(a, b)
	fmt.Printf("%04d-%02d  average %.1f%%  %s\n", c.Year, c.Month, cmp.AAvg, tui.Sparkline(cmp.A))
	fmt.Printf("%04d-%02d  average %.1f%%  %s\n", yearB, monB, cmp.BAvg, tui.Sparkline(cmp.B))
	fmt.Printf("delta: %+.1f%%\n", cmp.Delta)
	return nil
}

type MonthNotesCmd struct {
	Year  int `help:"Year, defaults to current."`
	Month int `help:"Month 1-12, defaults to current."`
}

func (c *MonthNotesCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	year, mon := defaultYearMonth(c.Year, c.Month)
	entries, err := ctx.Client.MonthEntries(reqCtx, year, mon)
	if err != nil {
		return err
	}

	summary := month.SummarizeNotes(entries, 5, 10)
	fmt.Printf("%d notes in %04d-%02d\n", summary.Total, year, mon)
	if len(summary.TopFeels) > 0 {
		fmt.Println("\nTop feels:")
		for _, f := range summary.TopFeels {
			fmt.Printf("  %-16s %d\n", f.Feel, f.Count)
		}
	}
	if len(summary.Highlights) > 0 {
		fmt.Println("\nHighlights:")
		for _, h := range summary.Highlights {
			fmt.Printf("  - %s\n", h)
		}
	}
	return nil
}

type ExportCmd struct {
	Year  int `help:"Year, defaults to current."`
	Month int `help:"Month 1-12, defaults to current."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	year, mon := defaultYearMonth(c.Year, c.Month)
	content, err := ctx.Client.ExportMonth(reqCtx, year, mon)
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

type PromptCmd struct {
	Year  int `help:"Year, defaults to current."`
	Month int `help:"Month 1-12, defaults to current."`
}

func (c *PromptCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	year, mon := defaultYearMonth(c.Year, c.Month)
	prompt, err := ctx.Client.MonthlyPrompt(reqCtx, year, mon)
	if err != nil {
		return err
	}
	fmt.Println(prompt)
	return nil
}

type StatsCmd struct {
	Year  int `help:"Year, defaults to current."`
	Month int `help:"Month 1-12, defaults to current."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	year, mon := defaultYearMonth(c.Year, c.Month)

	if streaks, err := ctx.Client.StreakStats(reqCtx); err == nil {
		fmt.Printf("Current streak: %d days (longest %d, threshold %.0f%%)\n",
			streaks.CurrentStreakDays, streaks.LongestStreakDays, streaks.ThresholdPercent)
	}

	monthly, err := ctx.Client.MonthlyStats(reqCtx, year, mon)
	if err != nil {
		return err
	}
	fmt.Printf("%04d-%02d: %.1f%% average over %d tracked days\n",
		monthly.Year, monthly.Month, monthly.AveragePercent, monthly.DaysTracked)

	cats, err := ctx.Client.CategoryStats(reqCtx, year, mon)
	if err != nil {
		return err
	}
	for _, cs := range cats {
		fmt.Printf("  %-14s %5.1f%%  (%d habits)\n", cs.Category, cs.CompletionPercent, cs.HabitCount)
	}
	return nil
}
