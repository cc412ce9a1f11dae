// Package storage is the object-storage collaborator: opaque key-based blob
// storage returning time-limited signed download URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/intellious/hrms/internal/config"
)

// Storage defines the file storage operations the document service needs.
type Storage interface {
	// Save stores a blob under the given key.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// GetSignedURL returns a temporary signed download URL for the key.
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete removes the blob stored under the key.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a blob is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)
}

// New creates a storage backend based on configuration.
func New(cfg config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalStorage(cfg.Storage)
	case "s3":
		return NewS3Storage(cfg.Storage)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
