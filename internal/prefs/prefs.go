// Package prefs persists the single UI preference blob. It is the only
// state the quoting core stores across sessions.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const blobKey = "preferences"

// Preferences is the opaque preference blob exchanged with the UI.
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

// Store reads and writes the preference blob in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the stored preferences, or defaults when nothing has been
// saved yet.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, blobKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("query preferences: %w", err)
	}

	var p Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences blob: %w", err)
	}
	return p, nil
}

// Save upserts the preference blob.
func (s *Store) Save(ctx context.Context, p Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences blob: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, blobKey, string(raw))
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}

	return nil
}
