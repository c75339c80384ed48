// Package draft persists unsaved day edits locally so that a crash or
// restart never loses in-progress work. Rows are keyed by habit ID and
// stored as a single JSON document in the key-value store.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/dayring/internal/constants"
	"github.com/julianstephens/dayring/internal/models"
	"github.com/julianstephens/dayring/internal/storage"
)

// readKeys is the lookup order on load: the current format first, then
// each legacy format. Writes always go to the first key.
var readKeys = []string{
	constants.DraftKeyV3,
	constants.DraftKeyV2,
	constants.DraftKeyV1,
}

// Load reads the draft from the store, falling back through legacy key
// versions. A missing draft is not an error; an empty draft is returned.
// Rows that cannot be interpreted are dropped rather than failing the
// whole load.
func Load(store storage.Provider) (*models.Draft, error) {
	for _, key := range readKeys {
		raw, err := store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return models.NewDraft(), fmt.Errorf("failed to read draft %q: %w", key, err)
		}
		d, err := decode(raw)
		if err != nil {
			// A corrupt document under one key should not mask a
			// readable one under an older key.
			continue
		}
		return d, nil
	}
	return models.NewDraft(), nil
}

// Save writes the draft under the current format key. Unchanged drafts
// are detected by content hash and skipped, so debounced callers can
// invoke Save freely.
func Save(store storage.Provider, d *models.Draft) error {
	raw, err := encode(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	if prev, err := store.Get(constants.DraftKeyV3); err == nil {
		if fingerprint(prev) == fingerprint(raw) {
			return nil
		}
	}

	if err := store.Set(constants.DraftKeyV3, raw); err != nil {
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	return nil
}

// Clear removes the draft under every known key version. Called after a
// successful save to the server so stale local edits cannot resurface.
func Clear(store storage.Provider) error {
	for _, key := range readKeys {
		if err := store.Delete(key); err != nil {
			return fmt.Errorf("failed to clear draft %q: %w", key, err)
		}
	}
	return nil
}

type draftDoc struct {
	Date      string                     `json:"date,omitempty"`
	ByHabitID map[string]json.RawMessage `json:"byHabitId"`
}

type rowDoc struct {
	HabitID     int64    `json:"habitId"`
	Completed   bool     `json:"completed"`
	ActualValue *float64 `json:"actualValue,omitempty"`
}

func encode(d *models.Draft) (string, error) {
	doc := draftDoc{Date: d.Date, ByHabitID: make(map[string]json.RawMessage, len(d.ByHabitID))}
	for id, row := range d.ByHabitID {
		b, err := json.Marshal(rowDoc{
			HabitID:     row.HabitID,
			Completed:   row.Completed,
			ActualValue: row.ActualValue,
		})
		if err != nil {
			return "", err
		}
		doc.ByHabitID[strconv.FormatInt(id, 10)] = b
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decode accepts both the current shape and the legacy shapes, which
// differ only in which row fields exist. Rows that are not JSON objects
// (nulls, strings left behind by older builds) are skipped.
func decode(raw string) (*models.Draft, error) {
	var doc draftDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	d := models.NewDraft()
	d.Date = doc.Date
	for idStr, rawRow := range doc.ByHabitID {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rawRow, &fields); err != nil || fields == nil {
			continue
		}
		var row rowDoc
		if err := json.Unmarshal(rawRow, &row); err != nil {
			continue
		}
		row.HabitID = id
		d.ByHabitID[id] = models.DraftRow{
			HabitID:     row.HabitID,
			Completed:   row.Completed,
			ActualValue: row.ActualValue,
		}
	}
	return d, nil
}

func fingerprint(raw string) uint64 {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return 0
	}
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}
