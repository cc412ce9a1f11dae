package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, employee *Employee) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Employee, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Employee, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	List(ctx context.Context, db *gorm.DB) ([]ListItem, error)
}
