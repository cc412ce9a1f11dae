package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/document/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Document, error) {
	var doc domain.Document
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repo) FindLatestByType(ctx context.Context, db *gorm.DB, employeeID snowflake.ID, docType domain.DocumentType) (*domain.Document, error) {
	var doc domain.Document
	err := db.WithContext(ctx).
		Where("employee_id = ? AND document_type = ?", employeeID, docType).
		Order("uploaded_at desc, id desc").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repo) ListByEmployee(ctx context.Context, db *gorm.DB, employeeID snowflake.ID) ([]domain.Document, error) {
	var docs []domain.Document
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("uploaded_at desc, id desc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("id = ?", id).
		Updates(fields).Error
}
