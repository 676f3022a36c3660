// Package prefs persists the small slice of view state that survives a
// restart: the active filter and the search query. Everything else in
// the client state is rebuilt from the data source on startup.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/hack-pad/hackpadfs"
)

// Prefs is the persisted view state.
type Prefs struct {
	Filter      string `json:"filter"`
	SearchQuery string `json:"searchQuery"`
}

// Default returns the preferences used when no file exists yet.
func Default() Prefs {
	return Prefs{Filter: "all"}
}

// Store reads and writes preferences on an fs.
type Store struct {
	fsys hackpadfs.FS
	path string
}

// NewStore creates a preference store at the given path.
func NewStore(fsys hackpadfs.FS, p string) *Store {
	return &Store{fsys: fsys, path: p}
}

// Load returns the saved preferences. A missing file yields the
// defaults without error, a corrupt file is an error.
func (s *Store) Load() (Prefs, error) {
	data, err := hackpadfs.ReadFile(s.fsys, s.path)
	if err != nil {
		if errors.Is(err, hackpadfs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read preferences: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("failed to parse preferences: %w", err)
	}
	if p.Filter == "" {
		p.Filter = "all"
	}
	return p, nil
}

// Save writes the preferences, creating parent directories as needed.
func (s *Store) Save(p Prefs) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if dir := path.Dir(s.path); dir != "." && dir != "/" {
		if err := hackpadfs.MkdirAll(s.fsys, dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences dir: %w", err)
		}
	}

	if err := hackpadfs.WriteFullFile(s.fsys, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
