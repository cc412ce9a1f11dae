package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/auth/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.OTPLog) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindLatestByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.OTPLog, error) {
	var record domain.OTPLog
	err := db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at desc, id desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) IncrementAttempts(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.OTPLog{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *repo) MarkUsed(ctx context.Context, db *gorm.DB, id snowflake.ID, verifiedAt time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.OTPLog{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_used":     true,
			"verified_at": verifiedAt,
		}).Error
}

func (r *repo) DeleteStale(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("created_at < ? AND (is_used = ? OR expires_at < ?)", before, true, before).
		Delete(&domain.OTPLog{})
	return result.RowsAffected, result.Error
}
