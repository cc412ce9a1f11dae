package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound        = errors.New("project not found")
	ErrInvalidType     = errors.New("invalid project type")
	ErrInvalidStatus   = errors.New("invalid project status")
	ErrClientRequired  = errors.New("client_name is required for client projects")
	ErrAlreadyAssigned = errors.New("employee already has an open assignment on this project")
	ErrNotAssigned     = errors.New("employee has no open assignment on this project")
)

type CreateProjectRequest struct {
	Name       string
	Type       string
	ClientName *string
	ManagerID  snowflake.ID
	StartDate  time.Time
	EndDate    *time.Time
}

type UpdateProjectRequest struct {
	ProjectID snowflake.ID
	Fields    map[string]any
}

type AssignRequest struct {
	ProjectID    snowflake.ID
	EmployeeID   snowflake.ID
	AssignedFrom time.Time
}

type RemoveRequest struct {
	ProjectID  snowflake.ID
	EmployeeID snowflake.ID
}

// TeamMember is one row of a project's team listing.
type TeamMember struct {
	EmployeeID   snowflake.ID `json:"employee_id"`
	Email        string       `json:"email"`
	FullName     *string      `json:"full_name,omitempty"`
	AssignedFrom time.Time    `json:"assigned_from"`
}

// HistoryItem is one entry of an employee's project history.
type HistoryItem struct {
	ProjectID    snowflake.ID  `json:"project_id"`
	Name         string        `json:"name"`
	Type         ProjectType   `json:"type"`
	Status       ProjectStatus `json:"status"`
	AssignedFrom time.Time     `json:"assigned_from"`
	AssignedTo   *time.Time    `json:"assigned_to,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (*Project, error)
	Update(ctx context.Context, req UpdateProjectRequest) (*Project, error)
	Delete(ctx context.Context, projectID snowflake.ID) error
	Get(ctx context.Context, projectID snowflake.ID) (*Project, error)
	List(ctx context.Context) ([]Project, error)

	// Assign opens an assignment. Fails with ErrAlreadyAssigned while an
	// open assignment for the same project and employee exists.
	Assign(ctx context.Context, req AssignRequest) (*Assignment, error)

	// Remove closes the open assignment by stamping its end date.
	Remove(ctx context.Context, req RemoveRequest) error

	// Team lists the employees currently assigned to a project.
	Team(ctx context.Context, projectID snowflake.ID) ([]TeamMember, error)

	// History lists every assignment an employee has held, newest first.
	History(ctx context.Context, employeeID snowflake.ID) ([]HistoryItem, error)
}
