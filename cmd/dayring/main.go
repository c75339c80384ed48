package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/cli"
	"github.com/julianstephens/dayring/internal/config"
	"github.com/julianstephens/dayring/internal/constants"
	errs "github.com/julianstephens/dayring/internal/errors"
	"github.com/julianstephens/dayring/internal/keyring"
	"github.com/julianstephens/dayring/internal/logger"
	"github.com/julianstephens/dayring/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize the local store."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Login    cli.LoginCmd    `cmd:"" help:"Log in and store the API token."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Discard the stored API token."`
	Register cli.RegisterCmd `cmd:"" help:"Create an account."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the logged-in profile."`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's habits."`
	Check    cli.CheckCmd    `cmd:"" help:"Toggle a habit for today."`
	Set      cli.SetValueCmd `cmd:"" help:"Set a habit's actual value for today."`
	Save     cli.SaveCmd     `cmd:"" help:"Commit today's draft to the server."`
	Autosave cli.AutosaveCmd `cmd:"" help:"Turn draft autosave on or off."`
	Month    struct {
		Show    cli.MonthCmd        `cmd:"" help:"Show the month checkpoint grid." default:"1"`
		Compare cli.MonthCompareCmd `cmd:"" help:"Compare two months."`
		Notes   cli.MonthNotesCmd   `cmd:"" help:"Summarize a month's habit notes."`
	} `cmd:"" help:"Month history views."`
	Export cli.ExportCmd   `cmd:"" help:"Export a month as text."`
	Prompt cli.PromptCmd   `cmd:"" help:"Show the monthly reflection prompt."`
	Stats  cli.StatsCmd    `cmd:"" help:"Show streak and completion statistics."`
	Habit  cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Gym    cli.GymCmd      `cmd:"" help:"Gym dashboard, meals and plan."`
	Pulse  cli.PulseCmd    `cmd:"" help:"Manage pulse tasks."`
	Config cli.SettingsCmd `cmd:"" aliases:"settings" help:"Manage account settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit and gym tracking companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		errs.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		errs.Fatal(err)
	}

	var store storage.Provider
	if cfg.Storage == "json" {
		store = storage.NewJSONStore(cfg.StorePath())
	} else {
		store = storage.NewSQLiteStore(cfg.StorePath())
	}

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Client: api.New(cfg.APIBase,
			api.WithTokenSource(keyring.TokenSource{}),
			api.WithLogger(logger.Logger)),
	}

	// Init handles its own loading; everything else needs the store up.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errs.Fatal(err)
		}
	}

	errs.Fatal(ctx.Run(appCtx))
}
