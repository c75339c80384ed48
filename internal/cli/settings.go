package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayring/internal/constants"
)

type SettingsCmd struct {
	Name         SettingsNameCmd         `cmd:"" help:"Change the display name."`
	Timezone     SettingsTimezoneCmd     `cmd:"" help:"Change the account time zone."`
	AutosaveTime SettingsAutosaveTimeCmd `cmd:"" name:"autosave-time" help:"Change the server-side autosave time."`
}

type SettingsNameCmd struct {
	Name string `arg:"" help:"New full name."`
}

func (c *SettingsNameCmd) Run(ctx *Context) error {
	reqCtx, cancel := RequestContext()
	defer cancel()

	profile, err := ctx.Client.UpdateName(reqCtx, c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Name updated: %s\n", profile.FullName)
	return nil
}

type SettingsTimezoneCmd struct {
	Zone string `arg:"" help:"IANA time zone id, e.g. Europe/Berlin."`
}

func (c *SettingsTimezoneCmd) Run(ctx *Context) error {
	if _, err := time.LoadLocation(c.Zone); err != nil {
		return fmt.Errorf("unknown time zone %q", c.Zone)
	}

	reqCtx, cancel := RequestContext()
	defer cancel()

	profile, err := ctx.Client.UpdateTimeZone(reqCtx, c.Zone)
	if err != nil {
		return err
	}
	fmt.Printf("Time zone updated: %s\n", profile.TimeZoneID)
	return nil
}

type SettingsAutosaveTimeCmd struct {
	Time string `arg:"" help:"Time of day as HH:MM."`
}

func (c *SettingsAutosaveTimeCmd) Run(ctx *Context) error {
	if _, err := time.Parse(constants.TimeFormat, c.Time); err != nil {
		return fmt.Errorf("invalid time %q, want HH:MM", c.Time)
	}

	reqCtx, cancel := RequestContext()
	defer cancel()

	profile, err := ctx.Client.UpdateAutoSaveTime(reqCtx, c.Time)
	if err != nil {
		return err
	}
	fmt.Printf("Autosave time updated: %s\n", profile.AutoSaveTime)
	return nil
}
