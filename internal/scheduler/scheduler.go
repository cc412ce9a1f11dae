// Package scheduler runs periodic database maintenance: stale passcode
// cleanup and audit trail retention.
package scheduler

import (
	"context"
	"errors"
	"time"

	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	authdomain "github.com/intellious/hrms/internal/auth/domain"
	"github.com/intellious/hrms/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler dependencies are incomplete")

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	OTPRepo   authdomain.Repository
	AuditRepo auditdomain.Repository
	Config    Config `optional:"true"`
}

type Scheduler struct {
	db        *gorm.DB
	log       *zap.Logger
	cfg       Config
	clock     clock.Clock
	otpRepo   authdomain.Repository
	auditRepo auditdomain.Repository
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.OTPRepo == nil || p.AuditRepo == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:        p.DB,
		log:       p.Log.Named("scheduler"),
		cfg:       p.Config.withDefaults(),
		clock:     p.Clock,
		otpRepo:   p.OTPRepo,
		auditRepo: p.AuditRepo,
	}, nil
}

// RunForever ticks until the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes every maintenance job a single time.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.runJob(ctx, "otp.purge", s.purgeStaleOTPs)
	s.runJob(ctx, "audit.prune", s.pruneAuditTrail)
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	start := s.clock.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	log := s.log.With(zap.String("job", name), zap.Duration("elapsed", elapsed))
	switch {
	case err == nil:
		log.Debug("job finished")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.Warn("job timed out", zap.Duration("timeout", s.cfg.JobTimeout))
	default:
		log.Error("job failed", zap.Error(err))
	}
}

func (s *Scheduler) purgeStaleOTPs(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.cfg.OTPRetention)
	removed, err := s.otpRepo.DeleteStale(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.log.Info("purged stale otp records", zap.Int64("removed", removed))
	}
	return nil
}

func (s *Scheduler) pruneAuditTrail(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.cfg.AuditRetention)
	removed, err := s.auditRepo.DeleteOlderThan(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.log.Info("pruned audit trail", zap.Int64("removed", removed))
	}
	return nil
}
