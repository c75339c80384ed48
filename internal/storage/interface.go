package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Provider is the local persistence contract backing drafts, preferences and
// per-date notes. Keys are logical names (see internal/constants); values are
// opaque strings, JSON for structured payloads. Everything is scoped to this
// machine's profile and never synced.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)

	// Utils
	GetConfigPath() string
}
