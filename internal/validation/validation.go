// Package validation checks submitted key records against the format rules.
// The checks are pure: no I/O and no cryptographic operations beyond
// decoding length.
package validation

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"keypub/internal/models"
)

// Rule sentinels. Use errors.Is to classify a validation failure.
var (
	ErrEmpty          = errors.New("empty")
	ErrInvalidChars   = errors.New("invalid characters")
	ErrTooLong        = errors.New("too long")
	ErrNotBase64      = errors.New("not base64")
	ErrWrongKeyLength = errors.New("wrong key length")
	ErrInvalidID      = errors.New("invalid id")
)

// Error is a client-caused validation failure. Message is safe to show to users.
type Error struct {
	Field   string
	Rule    error
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Rule
}

func fail(field string, rule error, format string, args ...any) error {
	return &Error{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// PublicKey validates a submitted public key and returns the trimmed text.
// The key is stored as submitted, never re-encoded.
func PublicKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", fail("public_key", ErrEmpty, "public_key must not be empty")
	}
	for _, r := range key {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", fail("public_key", ErrInvalidChars, "public_key cannot contain whitespace or control characters")
		}
	}
	if len(key) > models.PublicKeyMaxBytes {
		return "", fail("public_key", ErrTooLong, "public_key must be at most %d bytes", models.PublicKeyMaxBytes)
	}
	// Strict rejects non-zero trailing bits, so each key has exactly one accepted text.
	decoded, err := base64.StdEncoding.Strict().DecodeString(key)
	if err != nil {
		return "", fail("public_key", ErrNotBase64, "public_key must be valid base64")
	}
	if len(decoded) != models.PublicKeyRawBytes {
		return "", fail("public_key", ErrWrongKeyLength, "public_key must be base64 of a %d-byte key (ED25519)", models.PublicKeyRawBytes)
	}
	return key, nil
}

// Note validates an optional note. A missing or blank note yields "".
func Note(raw *string) (string, error) {
	if raw == nil {
		return "", nil
	}
	note := strings.TrimSpace(*raw)
	if len(note) > models.NoteMaxBytes {
		return "", fail("note", ErrTooLong, "note must be at most %d bytes", models.NoteMaxBytes)
	}
	return note, nil
}

// RecordID parses a record id taken from a request path.
func RecordID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fail("id", ErrInvalidID, "invalid record id (must be a UUID)")
	}
	return id, nil
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
