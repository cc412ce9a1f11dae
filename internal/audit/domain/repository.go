package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]AuditLog, error)

	// DeleteOlderThan trims the trail to the retention window. Returns
	// the number of rows removed.
	DeleteOlderThan(ctx context.Context, db *gorm.DB, before time.Time) (int64, error)
}
