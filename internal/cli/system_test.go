package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/dayring/internal/storage"
)

type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return p.name }

func TestCheckSingleInstance(t *testing.T) {
	orig := listProcessesFunc
	defer func() { listProcessesFunc = orig }()

	self := os.Getpid()

	listProcessesFunc = func() ([]ps.Process, error) {
		return []ps.Process{
			fakeProcess{pid: self, name: "dayring"},
			fakeProcess{pid: 1, name: "systemd"},
		}, nil
	}
	if err := checkSingleInstance(); err != nil {
		t.Fatalf("own process should not trigger the warning: %v", err)
	}

	listProcessesFunc = func() ([]ps.Process, error) {
		return []ps.Process{
			fakeProcess{pid: self, name: "dayring"},
			fakeProcess{pid: 4242, name: "dayring"},
		}, nil
	}
	err := checkSingleInstance()
	if err == nil {
		t.Fatal("second dayring process should trigger the warning")
	}
	if !strings.Contains(err.Error(), "4242") {
		t.Errorf("warning should name the pid, got %q", err)
	}
}

func TestCheckStoreRoundTrip(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "dayring.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ctx := &Context{Store: store}
	if err := checkStoreRoundTrip(ctx); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	// The probe key must not linger.
	if _, err := store.Get("doctor.probe"); err == nil {
		t.Fatal("probe key should be deleted after the check")
	}
}
