package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func providers(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"sqlite": NewSQLiteStore(filepath.Join(dir, "dayring.db")),
		"json":   NewJSONStore(filepath.Join(dir, "dayring.json")),
	}
}

func TestProvider_SetGetDelete(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Load(); err != nil {
				t.Fatalf("Load: %v", err)
			}
			defer store.Close()

			if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound for missing key, got %v", err)
			}

			if err := store.Set("draft.today.v3", `{"byHabitId":{}}`); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := store.Get("draft.today.v3")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != `{"byHabitId":{}}` {
				t.Errorf("Get = %q", got)
			}

			// Overwrite
			if err := store.Set("draft.today.v3", "updated"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, _ = store.Get("draft.today.v3")
			if got != "updated" {
				t.Errorf("after overwrite Get = %q", got)
			}

			if err := store.Delete("draft.today.v3"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get("draft.today.v3"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}

			// Deleting a missing key is not an error.
			if err := store.Delete("missing"); err != nil {
				t.Errorf("Delete missing: %v", err)
			}
		})
	}
}

func TestProvider_KeysPrefix(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Load(); err != nil {
				t.Fatalf("Load: %v", err)
			}
			defer store.Close()

			seed := map[string]string{
				"gym.notes.v1.2024-06-01": "a",
				"gym.notes.v1.2024-06-02": "b",
				"autosave.enabled.v1":     "1",
			}
			for k, v := range seed {
				if err := store.Set(k, v); err != nil {
					t.Fatalf("Set %s: %v", k, err)
				}
			}

			keys, err := store.Keys("gym.notes.v1.")
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if len(keys) != 2 {
				t.Fatalf("expected 2 note keys, got %d: %v", len(keys), keys)
			}
			if keys[0] != "gym.notes.v1.2024-06-01" || keys[1] != "gym.notes.v1.2024-06-02" {
				t.Errorf("unexpected key order: %v", keys)
			}
		})
	}
}

func TestSQLiteStore_LoadCreatesOnFirstUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	store := NewSQLiteStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	defer store.Close()

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set after implicit init: %v", err)
	}
}

func TestJSONStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first := NewJSONStore(path)
	if err := first.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := first.Set("autosave.enabled.v1", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second := NewJSONStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := second.Get("autosave.enabled.v1")
	if err != nil || got != "1" {
		t.Errorf("reloaded value = %q, %v", got, err)
	}
}
