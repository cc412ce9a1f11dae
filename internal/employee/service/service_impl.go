package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/authorization"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/employee/domain"
	"github.com/intellious/hrms/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Policy *authorization.Policy
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	policy *authorization.Policy
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("employee.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		policy: p.Policy,
	}
}

func (s *Service) GetProfile(ctx context.Context, req domain.GetProfileRequest) (*domain.Employee, error) {
	target, err := snowflake.ParseString(authorization.ResolveTarget(req.Actor, req.Target))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	employee, err := s.repo.FindByID(ctx, s.db, target)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

func (s *Service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) error {
	target, err := snowflake.ParseString(authorization.ResolveTarget(req.Actor, req.Target))
	if err != nil {
		return domain.ErrInvalidID
	}

	updates, err := s.policy.FilterSelfUpdate(req.Actor, target == req.Actor.ID, req.Fields)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, req.Actor, target, updates)
}

func (s *Service) RestrictedUpdate(ctx context.Context, req domain.RestrictedUpdateRequest) error {
	updates, err := s.policy.FilterRestrictedUpdate(req.Actor, req.Target == req.Actor.ID, req.Fields)
	if err != nil {
		return err
	}

	return s.applyUpdate(ctx, req.Actor, req.Target, updates)
}

// applyUpdate normalizes typed fields and performs the single all-or-nothing
// write shared by both update paths.
func (s *Service) applyUpdate(ctx context.Context, actor domain.Actor, target snowflake.ID, updates map[string]any) error {
	if raw, ok := updates[authorization.FieldRole]; ok {
		value, ok := raw.(string)
		if !ok {
			return domain.ErrInvalidRole
		}
		role := domain.Role(strings.ToUpper(strings.TrimSpace(value)))
		if !role.Valid() {
			return domain.ErrInvalidRole
		}
		updates[authorization.FieldRole] = role
	}

	employee, err := s.repo.FindByID(ctx, s.db, target)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}

	updates["updated_at"] = s.clock.Now()
	if err := s.repo.UpdateFields(ctx, s.db, target, updates); err != nil {
		return err
	}

	s.log.Info("profile updated",
		zap.String("actor_id", actor.ID.String()),
		zap.String("actor_role", string(actor.Role)),
		zap.String("target_id", target.String()),
	)
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.ListItem, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Employee, error) {
	employee, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

func (s *Service) FindOrCreateByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	employee, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if employee != nil {
		return employee, nil
	}

	now := s.clock.Now()
	created := &domain.Employee{
		ID:        s.genID.Generate(),
		Email:     email,
		Role:      domain.RoleEmployee,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, created); err != nil {
		// A concurrent request may have created the row first.
		if db.IsDuplicateKeyErr(err) {
			return s.FindByEmail(ctx, email)
		}
		return nil, err
	}

	s.log.Info("employee created", zap.String("employee_id", created.ID.String()))
	return created, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	employee, err := s.repo.FindByEmail(ctx, s.db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

func (s *Service) RecordLogin(ctx context.Context, id snowflake.ID) error {
	now := s.clock.Now()
	return s.repo.UpdateFields(ctx, s.db, id, map[string]any{
		"last_login_at": now,
		"updated_at":    now,
	})
}

func (s *Service) MarkProfileCompleted(ctx context.Context, id snowflake.ID) error {
	employee, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	return s.repo.UpdateFields(ctx, s.db, id, map[string]any{
		"profile_completed": true,
		"updated_at":        s.clock.Now(),
	})
}
