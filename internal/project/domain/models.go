package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ProjectType distinguishes internal initiatives from client engagements.
type ProjectType string

const (
	TypeInternal ProjectType = "INTERNAL"
	TypeClient   ProjectType = "CLIENT"
)

func (t ProjectType) Valid() bool {
	return t == TypeInternal || t == TypeClient
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusActive ProjectStatus = "ACTIVE"
	StatusPaused ProjectStatus = "PAUSED"
	StatusClosed ProjectStatus = "CLOSED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusClosed:
		return true
	}
	return false
}

type Project struct {
	ID         snowflake.ID  `json:"id" gorm:"primaryKey"`
	Name       string        `json:"name"`
	Type       ProjectType   `json:"type"`
	ClientName *string       `json:"client_name,omitempty"`
	ManagerID  snowflake.ID  `json:"manager_id" gorm:"index"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    *time.Time    `json:"end_date,omitempty"`
	Status     ProjectStatus `json:"status" gorm:"default:ACTIVE"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// Assignment links an employee to a project. A NULL AssignedTo means
// the assignment is still open.
type Assignment struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	ProjectID    snowflake.ID `json:"project_id" gorm:"index"`
	EmployeeID   snowflake.ID `json:"employee_id" gorm:"index"`
	AssignedFrom time.Time    `json:"assigned_from"`
	AssignedTo   *time.Time   `json:"assigned_to,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (Assignment) TableName() string {
	return "project_assignments"
}
