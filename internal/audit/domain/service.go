package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidAction    = errors.New("invalid_action")
	ErrInvalidTimeRange = errors.New("invalid_time_range")
)

// Entry is a single action to record. Actor may be nil for
// unauthenticated events such as failed logins.
type Entry struct {
	ActorID    *snowflake.ID
	ActorRole  string
	Action     string
	TargetType string
	TargetID   *string
	Metadata   map[string]any
}

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
	StartAt    *time.Time
	EndAt      *time.Time
	Limit      int
}

type Service interface {
	// AuditLog appends an entry to the trail. IP, user agent and request
	// id are picked up from the request context when present.
	AuditLog(ctx context.Context, entry Entry) error

	List(ctx context.Context, filter ListFilter) ([]AuditLog, error)
}
