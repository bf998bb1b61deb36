package server

import (
	"context"
	"errors"
	"fmt"

	"keypub/internal/api"
	"keypub/internal/config"
	"keypub/internal/keyfmt"
	"keypub/internal/models"
	"keypub/internal/store"
	"keypub/internal/validation"
)

var errKeyNotFound = errors.New("Key not found")

// KeyService validates submissions and reads and writes records through the store.
type KeyService struct {
	store    store.KeyStore
	siteHost string
}

// NewKeyService constructs a KeyService.
func NewKeyService(keyStore store.KeyStore, siteHost string) *KeyService {
	return &KeyService{store: keyStore, siteHost: config.NormalizeSiteHost(siteHost)}
}

// Publish validates the key first, then the note, and stores a new record
// under a fresh random id.
func (s *KeyService) Publish(ctx context.Context, rawKey string, rawNote *string) (models.KeyRecord, error) {
	var record models.KeyRecord

	publicKey, err := validation.PublicKey(rawKey)
	if err != nil {
		return record, validationFailure(err)
	}
	note, err := validation.Note(rawNote)
	if err != nil {
		return record, validationFailure(err)
	}

	id, err := store.GenerateKeyID(s.store.KeyExists)
	if err != nil {
		return record, storeFailure(fmt.Errorf("generate id: %w", err))
	}

	record = models.KeyRecord{ID: id, PublicKey: publicKey, Note: note}
	if err := s.store.CreateKey(ctx, &record); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return models.KeyRecord{}, internal(err, ErrCodeKeyIDExists)
		}
		return models.KeyRecord{}, storeFailure(err)
	}
	return record, nil
}

// Lookup returns the record for a path id.
func (s *KeyService) Lookup(ctx context.Context, rawID string) (models.KeyRecord, error) {
	id, err := validation.RecordID(rawID)
	if err != nil {
		return models.KeyRecord{}, validationFailure(err)
	}

	record, err := s.store.GetKey(ctx, id.String())
	if err != nil {
		return models.KeyRecord{}, storeFailure(err)
	}
	if record == nil {
		return models.KeyRecord{}, notFound(errKeyNotFound, ErrCodeKeyNotFound)
	}
	return *record, nil
}

// ShareURL returns the absolute link for a record id.
func (s *KeyService) ShareURL(id string) string {
	return config.ShareURL(s.siteHost, id)
}

// Response converts a record into its API representation.
func (s *KeyService) Response(record models.KeyRecord) api.KeyResponse {
	return api.KeyResponse{
		ID:        record.ID,
		PublicKey: record.PublicKey,
		Note:      record.Note,
		ShareURL:  s.ShareURL(record.ID),
		OpenSSH:   openSSHLine(record),
	}
}

// openSSHLine returns "" for records that predate validation and cannot be re-encoded.
func openSSHLine(record models.KeyRecord) string {
	line, err := keyfmt.AuthorizedKey(record.PublicKey, record.Note)
	if err != nil {
		return ""
	}
	return line
}
