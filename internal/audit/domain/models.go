package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Actions recorded in the trail.
const (
	ActionLogin            = "auth.login"
	ActionLoginFailed      = "auth.login_failed"
	ActionProfileUpdate    = "employee.profile_update"
	ActionRestrictedUpdate = "employee.restricted_update"
	ActionDocumentUpload   = "document.upload"
	ActionDocumentDecision = "document.decision"
	ActionProjectCreate    = "project.create"
	ActionProjectUpdate    = "project.update"
	ActionProjectDelete    = "project.delete"
	ActionAssignmentOpen   = "assignment.open"
	ActionAssignmentClose  = "assignment.close"
)

// AuditLog is an append-only record of a sensitive action.
type AuditLog struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey"`
	ActorID    *snowflake.ID     `json:"actor_id,omitempty"`
	ActorRole  *string           `json:"actor_role,omitempty"`
	Action     string            `json:"action" gorm:"index"`
	TargetType string            `json:"target_type"`
	TargetID   *string           `json:"target_id,omitempty"`
	Metadata   datatypes.JSONMap `json:"metadata"`
	IPAddress  *string           `json:"ip_address,omitempty"`
	UserAgent  *string           `json:"user_agent,omitempty"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index:,sort:desc"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
