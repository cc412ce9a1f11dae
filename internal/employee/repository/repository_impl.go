package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/employee/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	return db.WithContext(ctx).Create(employee).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Employee, error) {
	var employee domain.Employee
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Employee, error) {
	var employee domain.Employee
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.ListItem, error) {
	var items []domain.ListItem
	err := db.WithContext(ctx).
		Model(&domain.Employee{}).
		Select("id", "email", "role", "is_active", "created_at").
		Order("created_at desc, id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
