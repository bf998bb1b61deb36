package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"keypub/internal/models"
)

// KeyExists checks whether a record exists by id.
func (s *Store) KeyExists(id string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM pub_keys WHERE id = ? LIMIT 1", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, unavailable(err)
	}
	return true, nil
}

// CreateKey inserts a new key record. Records are never updated afterwards.
func (s *Store) CreateKey(ctx context.Context, record *models.KeyRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	if record.ID == "" {
		return fmt.Errorf("record id is required")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO pub_keys (id, public_key, note) VALUES (?, ?, ?)",
		record.ID,
		record.PublicKey,
		nullIfEmpty(record.Note),
	)
	if err != nil {
		if isUniqueConstraint(err) {
			return fmt.Errorf("create key %s: %w", record.ID, ErrConflict)
		}
		return unavailable(err)
	}
	return nil
}

// GetKey returns a record by id, or nil when no row matches.
func (s *Store) GetKey(ctx context.Context, id string) (*models.KeyRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, public_key, note FROM pub_keys WHERE id = ?", id)

	var record models.KeyRecord
	var note sql.NullString
	if err := row.Scan(&record.ID, &record.PublicKey, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	record.Note = note.String
	return &record, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
