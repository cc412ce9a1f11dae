package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/project/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, project *domain.Project) error {
	return db.WithContext(ctx).Create(project).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Project, error) {
	var project domain.Project
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Project{}).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Project, error) {
	var projects []domain.Project
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repo) InsertAssignment(ctx context.Context, db *gorm.DB, assignment *domain.Assignment) error {
	return db.WithContext(ctx).Create(assignment).Error
}

func (r *repo) FindOpenAssignment(ctx context.Context, db *gorm.DB, projectID, employeeID snowflake.ID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := db.WithContext(ctx).
		Where("project_id = ? AND employee_id = ? AND assigned_to IS NULL", projectID, employeeID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *repo) CloseAssignment(ctx context.Context, db *gorm.DB, id snowflake.ID, closedAt time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("id = ?", id).
		Update("assigned_to", closedAt).Error
}

func (r *repo) ListTeam(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	err := db.WithContext(ctx).
		Table("project_assignments").
		Select("project_assignments.employee_id", "employees.email", "employees.full_name", "project_assignments.assigned_from").
		Joins("JOIN employees ON employees.id = project_assignments.employee_id").
		Where("project_assignments.project_id = ? AND project_assignments.assigned_to IS NULL", projectID).
		Order("project_assignments.assigned_from asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repo) ListHistory(ctx context.Context, db *gorm.DB, employeeID snowflake.ID) ([]domain.HistoryItem, error) {
	var items []domain.HistoryItem
	err := db.WithContext(ctx).
		Table("project_assignments").
		Select("project_assignments.project_id", "projects.name", "projects.type", "projects.status", "project_assignments.assigned_from", "project_assignments.assigned_to").
		Joins("JOIN projects ON projects.id = project_assignments.project_id").
		Where("project_assignments.employee_id = ?", employeeID).
		Order("project_assignments.assigned_from desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
