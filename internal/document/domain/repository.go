package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, doc *Document) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Document, error)
	FindLatestByType(ctx context.Context, db *gorm.DB, employeeID snowflake.ID, docType DocumentType) (*Document, error)
	ListByEmployee(ctx context.Context, db *gorm.DB, employeeID snowflake.ID) ([]Document, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
}
