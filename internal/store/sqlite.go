// This file implements the sqlite persistence backend: the state blob stored
// as a single row in a key/value table. The blob semantics are identical to
// the file backend; sqlite just adds transactional replacement.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLitePersister persists the state blob in a sqlite database under the
// fixed storage key.
type SQLitePersister struct {
	db *sql.DB
}

// NewSQLitePersister opens (or creates) the sqlite database at path and
// ensures the state table exists.
func NewSQLitePersister(path string) (*SQLitePersister, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &SQLitePersister{db: db}
	if err := p.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return p, nil
}

func (p *SQLitePersister) migrate() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	return err
}

// Load reads and decodes the persisted blob. Returns ErrNoState when no row
// has been written yet.
func (p *SQLitePersister) Load() (*State, error) {
	var data []byte
	err := p.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, StorageKey).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("failed to read state row: %w", err)
	}

	return decodeState(data)
}

// Save replaces the persisted blob with the given state.
func (p *SQLitePersister) Save(state *State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		StorageKey, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write state row: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (p *SQLitePersister) Close() error {
	return p.db.Close()
}
