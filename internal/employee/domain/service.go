package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   snowflake.ID
	Role Role
}

// UpdateProfileRequest is the self-service mutation path. Target resolution
// and field filtering follow the authorization policy: EMPLOYEE always
// targets self and may only touch self-editable fields; other roles may pass
// an explicit target and additionally touch restricted fields.
type UpdateProfileRequest struct {
	Actor  Actor
	Target string // explicit employee id, empty = self
	Fields map[string]any
}

// RestrictedUpdateRequest is the dedicated MANAGER/HR/ADMIN path. Unlike the
// self-service path, unknown fields are an explicit error rather than being
// silently dropped.
type RestrictedUpdateRequest struct {
	Actor  Actor
	Target snowflake.ID
	Fields map[string]any
}

type GetProfileRequest struct {
	Actor  Actor
	Target string // explicit employee id, empty = self
}

type Service interface {
	GetProfile(ctx context.Context, req GetProfileRequest) (*Employee, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	RestrictedUpdate(ctx context.Context, req RestrictedUpdateRequest) error

	List(ctx context.Context) ([]ListItem, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Employee, error)

	// FindOrCreateByEmail returns the employee for the email, creating a
	// fresh record with default role and incomplete profile when unseen.
	FindOrCreateByEmail(ctx context.Context, email string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	RecordLogin(ctx context.Context, id snowflake.ID) error
	MarkProfileCompleted(ctx context.Context, id snowflake.ID) error
}

var (
	ErrNotFound    = errors.New("employee not found")
	ErrEmailExists = errors.New("email already registered")
	ErrInvalidID   = errors.New("invalid employee id")
	ErrInvalidRole = errors.New("invalid role value")
)
