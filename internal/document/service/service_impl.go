package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/document/domain"
	"github.com/intellious/hrms/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// signedURLTTL is how long a generated download link stays valid.
const signedURLTTL = 5 * time.Minute

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Storage storage.Storage
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	storage storage.Storage
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("document.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		storage: p.Storage,
	}
}

func (s *Service) Upload(ctx context.Context, req domain.UploadRequest) (*domain.Document, error) {
	// The type gate runs before any storage call so a bad request never
	// leaves an orphaned blob behind.
	docType := domain.DocumentType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !docType.Valid() {
		return nil, domain.ErrUnknownType
	}

	if req.Reader == nil || strings.TrimSpace(req.FileName) == "" {
		return nil, domain.ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	key := fmt.Sprintf("documents/%s/%s%s", req.EmployeeID.String(), uuid.NewString(), ext)

	if err := s.storage.Save(ctx, key, req.Reader, req.ContentType); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:               s.genID.Generate(),
		EmployeeID:       req.EmployeeID,
		DocumentType:     docType,
		FileKey:          key,
		OriginalFileName: req.FileName,
		Status:           domain.StatusPending,
		UploadedAt:       s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, doc); err != nil {
		return nil, err
	}

	s.log.Info("document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("employee_id", req.EmployeeID.String()),
		zap.String("document_type", string(docType)),
	)

	return doc, nil
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID snowflake.ID) ([]domain.Document, error) {
	return s.repo.ListByEmployee(ctx, s.db, employeeID)
}

func (s *Service) GetDownloadURL(ctx context.Context, req domain.DownloadURLRequest) (*domain.SignedURL, error) {
	docType := domain.DocumentType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !docType.Valid() {
		return nil, domain.ErrUnknownType
	}

	doc, err := s.repo.FindLatestByType(ctx, s.db, req.EmployeeID, docType)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	url, err := s.storage.GetSignedURL(ctx, doc.FileKey, signedURLTTL)
	if err != nil {
		return nil, err
	}

	return &domain.SignedURL{
		URL:          url,
		DocumentType: docType,
		ExpiresIn:    int(signedURLTTL.Seconds()),
	}, nil
}

func (s *Service) SetStatus(ctx context.Context, req domain.SetStatusRequest) (*domain.Document, error) {
	status := domain.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status != domain.StatusApproved && status != domain.StatusRejected {
		return nil, domain.ErrInvalidStatus
	}

	doc, err := s.repo.FindByID(ctx, s.db, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	now := s.clock.Now()
	fields := map[string]any{
		"status":      status,
		"approved_by": req.ReviewerID,
		"approved_at": now,
	}
	if err := s.repo.UpdateFields(ctx, s.db, doc.ID, fields); err != nil {
		return nil, err
	}

	doc.Status = status
	doc.ApprovedBy = &req.ReviewerID
	doc.ApprovedAt = &now

	s.log.Info("document status updated",
		zap.String("document_id", doc.ID.String()),
		zap.String("status", string(status)),
		zap.String("reviewer_id", req.ReviewerID.String()),
	)

	return doc, nil
}
