package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict is returned when a record id already exists.
	ErrConflict = errors.New("record already exists")
	// ErrUnavailable wraps I/O and connection failures of the database.
	ErrUnavailable = errors.New("store unavailable")
)

func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func isUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: pub_keys.id")
}
