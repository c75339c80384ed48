package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/dayring/internal/api"
	"github.com/julianstephens/dayring/internal/config"
	"github.com/julianstephens/dayring/internal/day"
	"github.com/julianstephens/dayring/internal/gym"
	"github.com/julianstephens/dayring/internal/logger"
	"github.com/julianstephens/dayring/internal/storage"
)

type Context struct {
	Config *config.Config
	Store  storage.Provider
	Client *api.Client
}

// RequestContext bounds a single command's network work.
func RequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// DaySession builds a day session over the app's client and store.
func (c *Context) DaySession() *day.Session {
	return day.NewSession(c.Client, c.Store, day.WithLogger(logger.Logger))
}

// GymSession builds a gym session over the app's client and store.
func (c *Context) GymSession() *gym.Session {
	return gym.NewSession(c.Client, c.Store, gym.WithLogger(logger.Logger))
}

// FormatValue renders an optional float for display.
func FormatValue(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%g", *v)
}

// Checkbox renders a completed flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
