package day

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/storage"
)

func pulseStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "state.json"))
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestPulseTasks_RoundTripPerDay(t *testing.T) {
	store := pulseStore(t)

	tasks := []models.PulseTask{
		NewPulseTask("call dentist", models.PulseQuick, ""),
		NewPulseTask("draft outline", models.PulseProject, "thesis"),
	}
	if err := SavePulseTasks(store, "2024-06-10", tasks); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadPulseTasks(store, "2024-06-10")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Title != "call dentist" || got[1].ProjectName != "thesis" {
		t.Errorf("round trip = %+v", got)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Errorf("task ids not unique: %q %q", got[0].ID, got[1].ID)
	}

	// Another date is untouched.
	other, err := LoadPulseTasks(store, "2024-06-11")
	if err != nil || other != nil {
		t.Errorf("unexpected tasks on other date: %v, %v", other, err)
	}
}

func TestTogglePulseTask(t *testing.T) {
	tasks := []models.PulseTask{NewPulseTask("stretch", models.PulseQuick, "")}

	if !TogglePulseTask(tasks, tasks[0].ID) {
		t.Fatal("toggle reported not found")
	}
	if !tasks[0].Completed {
		t.Error("task not marked completed")
	}
	if TogglePulseTask(tasks, "missing") {
		t.Error("toggle of unknown id reported found")
	}
}

func TestPromoteFutureTask(t *testing.T) {
	store := pulseStore(t)

	backlog := []models.PulseTask{
		NewPulseTask("someday A", models.PulseProject, "house"),
		NewPulseTask("someday B", models.PulseQuick, ""),
	}
	if err := SaveFutureTasks(store, backlog); err != nil {
		t.Fatal(err)
	}

	if err := PromoteFutureTask(store, backlog[0].ID, "2024-06-10"); err != nil {
		t.Fatalf("promote: %v", err)
	}

	daily, _ := LoadPulseTasks(store, "2024-06-10")
	if len(daily) != 1 || daily[0].Title != "someday A" {
		t.Errorf("daily after promote = %+v", daily)
	}
	remaining, _ := LoadFutureTasks(store)
	if len(remaining) != 1 || remaining[0].Title != "someday B" {
		t.Errorf("backlog after promote = %+v", remaining)
	}

	if err := PromoteFutureTask(store, "missing", "2024-06-10"); err == nil {
		t.Error("promoting unknown id should fail")
	}
}

func TestSavePulseTasks_EmptyClearsKey(t *testing.T) {
	store := pulseStore(t)
	if err := SavePulseTasks(store, "2024-06-10", []models.PulseTask{NewPulseTask("x", models.PulseQuick, "")}); err != nil {
		t.Fatal(err)
	}
	if err := SavePulseTasks(store, "2024-06-10", nil); err != nil {
		t.Fatalf("clearing save: %v", err)
	}
	got, err := LoadPulseTasks(store, "2024-06-10")
	if err != nil || got != nil {
		t.Errorf("expected empty after clearing save, got %v, %v", got, err)
	}
}
