package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/keyring"
	"github.com/julianstephens/dayring/internal/tui"
)

type InitCmd struct {
	Force bool `help:"Reset the local store before initialization."`
}

func (c *InitCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()
	if c.Force {
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized store at: %s\n", path)
	return nil
}

// listProcessesFunc is swapped out by tests.
var listProcessesFunc = ps.Processes

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: local store reachable
	storeOK := false
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Local store: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Local store: OK (%s)\n", ctx.Store.GetConfigPath())
		storeOK = true
	}

	// Check 2: store round trip (only if reachable)
	if storeOK {
		if err := checkStoreRoundTrip(ctx); err != nil {
			fmt.Printf("❌ Store read/write: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Store read/write: OK\n")
		}
	} else {
		fmt.Printf("⊘ Store read/write: SKIPPED (store not reachable)\n")
	}

	// Check 3: keyring available
	if !keyring.IsAvailable() {
		fmt.Printf("❌ OS keyring: FAIL\n")
		fmt.Printf("   Error: no usable keyring backend\n")
		hasError = true
	} else {
		fmt.Printf("✓ OS keyring: OK\n")
	}

	// Check 4: stored credentials
	if _, err := keyring.GetToken(); err != nil {
		fmt.Printf("⚠ API token: WARNING\n")
		fmt.Printf("   Not logged in. Run 'dayring login'.\n")
	} else {
		fmt.Printf("✓ API token: OK\n")
	}

	// Check 5: API reachable
	reqCtx, cancel := RequestContext()
	defer cancel()
	if _, err := ctx.Client.Me(reqCtx); err != nil {
		fmt.Printf("❌ API reachable: FAIL (%s)\n", ctx.Config.APIBase)
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ API reachable: OK (%s)\n", ctx.Config.APIBase)
	}

	// Check 6: single instance
	if err := checkSingleInstance(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkStoreRoundTrip(ctx *Context) error {
	const probe = "doctor.probe"
	if err := ctx.Store.Set(probe, "ok"); err != nil {
		return err
	}
	v, err := ctx.Store.Get(probe)
	if err != nil {
		return err
	}
	if v != "ok" {
		return fmt.Errorf("read back %q, want %q", v, "ok")
	}
	return ctx.Store.Delete(probe)
}

// checkSingleInstance warns when another running process shares our
// executable name. Concurrent processes race on the draft keys.
func checkSingleInstance() error {
	procs, err := listProcessesFunc()
	if err != nil {
		return fmt.Errorf("could not list processes: %v", err)
	}
	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() != self && p.Executable() == constants.AppName {
			return fmt.Errorf("another %s process is running (pid %d)", constants.AppName, p.Pid())
		}
	}
	return nil
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	model := tui.NewModel(ctx.Client, ctx.Store, ctx.DaySession(), ctx.GymSession())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
