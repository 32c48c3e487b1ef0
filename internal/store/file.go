// This file implements the default persistence backend: the state blob as a
// single JSON file on disk, replaced wholesale on every save.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilePersister persists the state blob as one JSON file. Writes go through
// a temporary file and a rename so a crash mid-write never leaves a corrupt
// blob behind.
type FilePersister struct {
	path string
}

// NewFilePersister creates a file persister storing the blob under dir.
// The directory is created if it does not exist.
func NewFilePersister(dir string) (*FilePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FilePersister{
		path: filepath.Join(dir, StorageKey+".json"),
	}, nil
}

// Load reads and decodes the persisted blob. Returns ErrNoState when the
// file does not exist yet.
func (p *FilePersister) Load() (*State, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	return decodeState(data)
}

// Save replaces the persisted blob with the given state.
func (p *FilePersister) Save(state *State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
