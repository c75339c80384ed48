package day

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/storage"
)

// Pulse tasks live locally until a day save carries them to the server
// as part of the entry payload. Quick tasks belong to a specific date;
// the future backlog is date-free until a task is promoted onto a day.

func LoadPulseTasks(store storage.Provider, date string) ([]models.PulseTask, error) {
	return loadTasks(store, constants.PulseDailyKey(date))
}

func SavePulseTasks(store storage.Provider, date string, tasks []models.PulseTask) error {
	return saveTasks(store, constants.PulseDailyKey(date), tasks)
}

func LoadFutureTasks(store storage.Provider) ([]models.PulseTask, error) {
	return loadTasks(store, constants.PulseFutureKey)
}

func SaveFutureTasks(store storage.Provider, tasks []models.PulseTask) error {
	return saveTasks(store, constants.PulseFutureKey, tasks)
}

// NewPulseTask builds a task with a fresh id.
func NewPulseTask(title string, kind models.PulseTaskKind, projectName string) models.PulseTask {
	return models.PulseTask{
		ID:          uuid.NewString(),
		Title:       title,
		Kind:        kind,
		ProjectName: projectName,
	}
}

// TogglePulseTask flips the completed flag of the task with the given id
// and reports whether it was found.
func TogglePulseTask(tasks []models.PulseTask, id string) bool {
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			return true
		}
	}
	return false
}

// PromoteFutureTask moves a backlog task onto the given date. The
// backlog is rewritten without it and the day list gains it.
func PromoteFutureTask(store storage.Provider, id, date string) error {
	backlog, err := LoadFutureTasks(store)
	if err != nil {
		return err
	}
	idx := -1
	for i := range backlog {
		if backlog[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no backlog task with id %s", id)
	}
	task := backlog[idx]

	daily, err := LoadPulseTasks(store, date)
	if err != nil {
		return err
	}
	daily = append(daily, task)
	if err := SavePulseTasks(store, date, daily); err != nil {
		return err
	}
	backlog = append(backlog[:idx], backlog[idx+1:]...)
	return SaveFutureTasks(store, backlog)
}

func loadTasks(store storage.Provider, key string) ([]models.PulseTask, error) {
	raw, err := store.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tasks []models.PulseTask
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks under %q: %w", key, err)
	}
	return tasks, nil
}

func saveTasks(store storage.Provider, key string, tasks []models.PulseTask) error {
	if len(tasks) == 0 {
		return store.Delete(key)
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return store.Set(key, string(b))
}
