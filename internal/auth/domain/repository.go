package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *OTPLog) error

	// FindLatestByEmail returns the most recently created record for the
	// email, or nil when none exists.
	FindLatestByEmail(ctx context.Context, db *gorm.DB, email string) (*OTPLog, error)

	IncrementAttempts(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	MarkUsed(ctx context.Context, db *gorm.DB, id snowflake.ID, verifiedAt time.Time) error

	// DeleteStale removes used or expired passcode rows created before
	// the cutoff. Returns the number of rows removed.
	DeleteStale(ctx context.Context, db *gorm.DB, before time.Time) (int64, error)
}
