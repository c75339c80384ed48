package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type fileStore struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore is the plain-file alternative backend, selected by a .json
// config path. Useful for tests and for keeping the state human-readable.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.store = &fileStore{
		Version: 1,
		Values:  make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.Init()
	}
	if err != nil {
		return fmt.Errorf("failed to read storage file: %w", err)
	}

	var store fileStore
	if err := json.Unmarshal(data, &store); err != nil {
		return fmt.Errorf("failed to parse storage file: %w", err)
	}
	if store.Values == nil {
		store.Values = make(map[string]string)
	}
	s.store = &store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(key string) (string, error) {
	v, ok := s.store.Values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.store.Values[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	delete(s.store.Values, key)
	return s.save()
}

func (s *JSONStore) Keys(prefix string) ([]string, error) {
	var keys []string
	for k := range s.store.Values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	return nil
}
