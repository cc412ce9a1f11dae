package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/auth/domain"
	"github.com/intellious/hrms/internal/auth/token"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/config"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// otpTTL is the validity window of an issued passcode.
const otpTTL = 5 * time.Minute

type Params struct {
	fx.In

	Cfg       config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Employees employeedomain.Service
	Signer    *token.Signer
}

type Service struct {
	cfg       config.Config
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	employees employeedomain.Service
	signer    *token.Signer
}

func New(p Params) domain.Service {
	return &Service{
		cfg:       p.Cfg,
		db:        p.DB,
		log:       p.Log.Named("auth.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		employees: p.Employees,
		signer:    p.Signer,
	}
}

func (s *Service) RequestOTP(ctx context.Context, req domain.RequestOTPRequest) (*domain.RequestOTPResult, error) {
	email, err := s.normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	// First sight of a company email registers the employee with default
	// role and an incomplete profile.
	employee, err := s.employees.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := &domain.OTPLog{
		ID:        s.genID.Generate(),
		Email:     email,
		OTPHash:   hashOTP(s.cfg.StaticOTP),
		ExpiresAt: now.Add(otpTTL),
		CreatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.log.Info("otp issued",
		zap.String("employee_id", employee.ID.String()),
		zap.Time("expires_at", record.ExpiresAt),
	)

	return &domain.RequestOTPResult{ExpiresIn: int(otpTTL.Seconds())}, nil
}

func (s *Service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.VerifyOTPResult, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		return nil, domain.ErrMissingFields
	}

	email, err := s.normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindLatestByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrOTPNotFound
	}

	if record.IsUsed {
		return nil, domain.ErrOTPAlreadyUsed
	}

	now := s.clock.Now()
	if now.After(record.ExpiresAt) {
		return nil, domain.ErrOTPExpired
	}

	candidate := hashOTP(strings.TrimSpace(req.OTP))
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(record.OTPHash)) != 1 {
		// Attempts are tracked for audit only; there is no lockout.
		if err := s.repo.IncrementAttempts(ctx, s.db, record.ID); err != nil {
			s.log.Warn("increment otp attempts failed", zap.Error(err))
		}
		return nil, domain.ErrInvalidOTP
	}

	if err := s.repo.MarkUsed(ctx, s.db, record.ID, now); err != nil {
		return nil, err
	}

	employee, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	firstLogin := employee.LastLoginAt == nil
	if err := s.employees.RecordLogin(ctx, employee.ID); err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := s.signer.Sign(employee.ID.String(), employee.Role, employee.IsActive)
	if err != nil {
		return nil, err
	}

	nextStep := domain.NextStepProfileCreation
	if employee.ProfileCompleted {
		nextStep = domain.NextStepDashboard
	}

	s.log.Info("otp verified",
		zap.String("employee_id", employee.ID.String()),
		zap.Bool("first_login", firstLogin),
	)

	return &domain.VerifyOTPResult{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Employee: domain.EmployeeView{
			ID:               employee.ID.String(),
			Email:            employee.Email,
			Role:             employee.Role,
			FirstLogin:       firstLogin,
			ProfileCompleted: employee.ProfileCompleted,
			NextStep:         nextStep,
		},
	}, nil
}

func (s *Service) normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", domain.ErrInvalidEmail
	}
	email := strings.ToLower(strings.TrimSpace(addr.Address))
	if !strings.HasSuffix(email, s.cfg.CompanyDomain) {
		return "", domain.ErrDomainNotAllowed
	}
	return email, nil
}

func hashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}
