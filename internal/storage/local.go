package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/intellious/hrms/internal/config"
)

// LocalStorage implements Storage on the local filesystem. Used in
// development and tests when no bucket is configured.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance.
func NewLocalStorage(cfg config.StorageConfig) (*LocalStorage, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

func (l *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(l.basePath, clean), nil
}

// Save writes a blob under the base path.
func (l *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// GetSignedURL returns a plain file path. Local storage has no notion
// of expiring links so the expiry is ignored.
func (l *LocalStorage) GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	path, err := l.path(key)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", key)
	}

	return path, nil
}

// Delete removes a blob.
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Exists checks if a blob exists.
func (l *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.path(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
