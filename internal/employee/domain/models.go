// Package domain contains core types for the employee service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is the closed set of employee roles.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}

// Employee is the single source of truth for identity, profile and role.
type Employee struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	Email    string `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Role     Role   `gorm:"type:text;not null;default:'EMPLOYEE'" json:"role"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`

	FullName     *string `gorm:"column:full_name" json:"full_name,omitempty"`
	MobileNumber *string `gorm:"column:mobile_number" json:"mobile_number,omitempty"`
	Address      *string `gorm:"column:address" json:"address,omitempty"`

	DOB              *time.Time `gorm:"column:dob" json:"dob,omitempty"`
	Gender           *string    `gorm:"column:gender" json:"gender,omitempty"`
	BloodGroup       *string    `gorm:"column:blood_group" json:"blood_group,omitempty"`
	EmergencyContact *string    `gorm:"column:emergency_contact" json:"emergency_contact,omitempty"`

	Designation     *string `gorm:"column:designation" json:"designation,omitempty"`
	ProjectAssigned *string `gorm:"column:project_assigned" json:"project_assigned,omitempty"`

	EmployeeCode *string       `gorm:"column:employee_code;uniqueIndex" json:"employee_code,omitempty"`
	JoiningDate  *time.Time    `gorm:"column:joining_date" json:"joining_date,omitempty"`
	ManagerID    *snowflake.ID `gorm:"column:manager_id" json:"manager_id,omitempty"`

	ProfileCompleted bool       `gorm:"column:profile_completed;not null;default:false" json:"profile_completed"`
	LastLoginAt      *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Employee) TableName() string { return "employees" }

// ListItem is the directory view returned to HR/ADMIN listings.
type ListItem struct {
	ID        snowflake.ID `json:"id"`
	Email     string       `json:"email"`
	Role      Role         `json:"role"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
}
