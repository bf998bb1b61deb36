package store

import (
	"context"

	"keypub/internal/models"
)

// KeyStore abstracts key record storage backends.
type KeyStore interface {
	KeyExists(id string) (bool, error)
	CreateKey(ctx context.Context, record *models.KeyRecord) error
	GetKey(ctx context.Context, id string) (*models.KeyRecord, error)
	StoreInfo(ctx context.Context) (StoreInfo, error)
}

var _ KeyStore = (*Store)(nil)
