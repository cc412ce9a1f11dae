package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/audit/domain"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/requestctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) AuditLog(ctx context.Context, entry domain.Entry) error {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return domain.ErrInvalidAction
	}

	targetType := strings.TrimSpace(entry.TargetType)
	if targetType == "" {
		targetType = "unknown"
	}

	payload := map[string]any{}
	for key, value := range entry.Metadata {
		if key == "" {
			continue
		}
		payload[key] = value
	}
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		payload["request_id"] = requestID
	}

	record := domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorID:    entry.ActorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   entry.TargetID,
		Metadata:   datatypes.JSONMap(payload),
		CreatedAt:  s.clock.Now(),
	}
	if role := strings.TrimSpace(entry.ActorRole); role != "" {
		record.ActorRole = &role
	}
	if ip := requestctx.IPAddressFromContext(ctx); ip != "" {
		record.IPAddress = &ip
	}
	if ua := requestctx.UserAgentFromContext(ctx); ua != "" {
		record.UserAgent = &ua
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.AuditLog, error) {
	if filter.StartAt != nil && filter.EndAt != nil && filter.StartAt.After(*filter.EndAt) {
		return nil, domain.ErrInvalidTimeRange
	}
	return s.repo.List(ctx, s.db, filter)
}
