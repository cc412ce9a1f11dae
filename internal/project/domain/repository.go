package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, project *Project) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Project, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB) ([]Project, error)

	InsertAssignment(ctx context.Context, db *gorm.DB, assignment *Assignment) error
	FindOpenAssignment(ctx context.Context, db *gorm.DB, projectID, employeeID snowflake.ID) (*Assignment, error)
	CloseAssignment(ctx context.Context, db *gorm.DB, id snowflake.ID, closedAt time.Time) error
	ListTeam(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]TeamMember, error)
	ListHistory(ctx context.Context, db *gorm.DB, employeeID snowflake.ID) ([]HistoryItem, error)
}
