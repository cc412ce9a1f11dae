package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/project/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("project.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (*domain.Project, error) {
	projectType := domain.ProjectType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !projectType.Valid() {
		return nil, domain.ErrInvalidType
	}
	if projectType == domain.TypeClient && (req.ClientName == nil || strings.TrimSpace(*req.ClientName) == "") {
		return nil, domain.ErrClientRequired
	}

	now := s.clock.Now()
	project := &domain.Project{
		ID:         s.genID.Generate(),
		Name:       strings.TrimSpace(req.Name),
		Type:       projectType,
		ClientName: req.ClientName,
		ManagerID:  req.ManagerID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, project); err != nil {
		return nil, err
	}

	s.log.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("type", string(projectType)),
	)

	return project, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, s.db, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	fields := make(map[string]any, len(req.Fields))
	for name, value := range req.Fields {
		switch name {
		case "name", "client_name", "start_date", "end_date":
			fields[name] = value
		case "type":
			raw, _ := value.(string)
			projectType := domain.ProjectType(strings.ToUpper(strings.TrimSpace(raw)))
			if !projectType.Valid() {
				return nil, domain.ErrInvalidType
			}
			fields[name] = projectType
		case "status":
			raw, _ := value.(string)
			status := domain.ProjectStatus(strings.ToUpper(strings.TrimSpace(raw)))
			if !status.Valid() {
				return nil, domain.ErrInvalidStatus
			}
			fields[name] = status
		}
	}
	if len(fields) == 0 {
		return project, nil
	}
	fields["updated_at"] = s.clock.Now()

	if err := s.repo.UpdateFields(ctx, s.db, project.ID, fields); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, s.db, project.ID)
}

func (s *Service) Delete(ctx context.Context, projectID snowflake.ID) error {
	project, err := s.repo.FindByID(ctx, s.db, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, projectID)
}

func (s *Service) Get(ctx context.Context, projectID snowflake.ID) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, s.db, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return project, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Assign(ctx context.Context, req domain.AssignRequest) (*domain.Assignment, error) {
	project, err := s.repo.FindByID(ctx, s.db, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	open, err := s.repo.FindOpenAssignment(ctx, s.db, req.ProjectID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrAlreadyAssigned
	}

	now := s.clock.Now()
	assignedFrom := req.AssignedFrom
	if assignedFrom.IsZero() {
		assignedFrom = now
	}

	assignment := &domain.Assignment{
		ID:           s.genID.Generate(),
		ProjectID:    req.ProjectID,
		EmployeeID:   req.EmployeeID,
		AssignedFrom: assignedFrom,
		CreatedAt:    now,
	}
	if err := s.repo.InsertAssignment(ctx, s.db, assignment); err != nil {
		return nil, err
	}

	s.log.Info("employee assigned",
		zap.String("project_id", req.ProjectID.String()),
		zap.String("employee_id", req.EmployeeID.String()),
	)

	return assignment, nil
}

func (s *Service) Remove(ctx context.Context, req domain.RemoveRequest) error {
	open, err := s.repo.FindOpenAssignment(ctx, s.db, req.ProjectID, req.EmployeeID)
	if err != nil {
		return err
	}
	if open == nil {
		return domain.ErrNotAssigned
	}

	if err := s.repo.CloseAssignment(ctx, s.db, open.ID, s.clock.Now()); err != nil {
		return err
	}

	s.log.Info("assignment closed",
		zap.String("project_id", req.ProjectID.String()),
		zap.String("employee_id", req.EmployeeID.String()),
	)

	return nil
}

func (s *Service) Team(ctx context.Context, projectID snowflake.ID) ([]domain.TeamMember, error) {
	project, err := s.repo.FindByID(ctx, s.db, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.ListTeam(ctx, s.db, projectID)
}

func (s *Service) History(ctx context.Context, employeeID snowflake.ID) ([]domain.HistoryItem, error) {
	return s.repo.ListHistory(ctx, s.db, employeeID)
}
