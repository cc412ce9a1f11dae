package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/intellious/hrms/internal/clock"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	"github.com/intellious/hrms/internal/project/domain"
	"github.com/intellious/hrms/internal/project/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var testCounter int

func newTestService(t *testing.T) (*Service, *clock.FakeClock, *gorm.DB) {
	t.Helper()

	testCounter++
	dsn := fmt.Sprintf("file:project_svc_%d?mode=memory&cache=shared", testCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Project{}, &domain.Assignment{}, &employeedomain.Employee{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	return &Service{
		db:    db,
		log:   zaptest.NewLogger(t),
		genID: node,
		clock: fake,
		repo:  repository.Provide(),
	}, fake, db
}

func seedEmployee(t *testing.T, db *gorm.DB, node *snowflake.Node, email string) snowflake.ID {
	t.Helper()
	name := email
	employee := &employeedomain.Employee{
		ID:       node.Generate(),
		Email:    email,
		Role:     employeedomain.RoleEmployee,
		IsActive: true,
		FullName: &name,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee.ID
}

func createProject(t *testing.T, svc *Service, name string, projectType string) *domain.Project {
	t.Helper()
	client := "Acme"
	req := domain.CreateProjectRequest{
		Name:      name,
		Type:      projectType,
		ManagerID: svc.genID.Generate(),
		StartDate: svc.clock.Now(),
	}
	if projectType == string(domain.TypeClient) {
		req.ClientName = &client
	}
	project, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return project
}

func TestCreateProjectValidatesType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateProjectRequest{
		Name: "X", Type: "SIDE_HUSTLE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestCreateClientProjectRequiresClientName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateProjectRequest{
		Name: "Portal", Type: "client",
	})
	assert.ErrorIs(t, err, domain.ErrClientRequired)

	empty := "   "
	_, err = svc.Create(context.Background(), domain.CreateProjectRequest{
		Name: "Portal", Type: "CLIENT", ClientName: &empty,
	})
	assert.ErrorIs(t, err, domain.ErrClientRequired)
}

func TestCreateProjectDefaultsActive(t *testing.T) {
	svc, _, _ := newTestService(t)

	project := createProject(t, svc, "Internal Tools", "internal")
	assert.Equal(t, domain.TypeInternal, project.Type)
	assert.Equal(t, domain.StatusActive, project.Status)
}

func TestUpdateProjectWhitelistsFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	project := createProject(t, svc, "Portal", "CLIENT")

	updated, err := svc.Update(ctx, domain.UpdateProjectRequest{
		ProjectID: project.ID,
		Fields: map[string]any{
			"name":   "Portal v2",
			"status": "paused",
			"id":     snowflake.ID(42),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Portal v2", updated.Name)
	assert.Equal(t, domain.StatusPaused, updated.Status)
	assert.Equal(t, project.ID, updated.ID)
}

func TestUpdateProjectInvalidStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	project := createProject(t, svc, "Portal", "CLIENT")
	_, err := svc.Update(context.Background(), domain.UpdateProjectRequest{
		ProjectID: project.ID,
		Fields:    map[string]any{"status": "DORMANT"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateAbsentProject(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), domain.UpdateProjectRequest{
		ProjectID: snowflake.ID(404),
		Fields:    map[string]any{"name": "Ghost"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	project := createProject(t, svc, "Short Lived", "INTERNAL")
	require.NoError(t, svc.Delete(ctx, project.ID))

	_, err := svc.Get(ctx, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, project.ID), domain.ErrNotFound)
}

func TestAssignRejectsDuplicateOpenAssignment(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	project := createProject(t, svc, "Portal", "CLIENT")
	employeeID := seedEmployee(t, db, svc.genID, "dev@intellious.tech")

	_, err := svc.Assign(ctx, domain.AssignRequest{ProjectID: project.ID, EmployeeID: employeeID})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, domain.AssignRequest{ProjectID: project.ID, EmployeeID: employeeID})
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
}

func TestAssignAbsentProject(t *testing.T) {
	svc, _, db := newTestService(t)

	employeeID := seedEmployee(t, db, svc.genID, "dev@intellious.tech")
	_, err := svc.Assign(context.Background(), domain.AssignRequest{
		ProjectID:  snowflake.ID(404),
		EmployeeID: employeeID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveClosesAssignmentAndAllowsReassign(t *testing.T) {
	svc, fake, db := newTestService(t)
	ctx := context.Background()

	project := createProject(t, svc, "Portal", "CLIENT")
	employeeID := seedEmployee(t, db, svc.genID, "dev@intellious.tech")

	_, err := svc.Assign(ctx, domain.AssignRequest{ProjectID: project.ID, EmployeeID: employeeID})
	require.NoError(t, err)

	fake.Advance(48 * time.Hour)
	require.NoError(t, svc.Remove(ctx, domain.RemoveRequest{ProjectID: project.ID, EmployeeID: employeeID}))

	// A closed assignment no longer blocks a new one.
	_, err = svc.Assign(ctx, domain.AssignRequest{ProjectID: project.ID, EmployeeID: employeeID})
	require.NoError(t, err)

	history, err := svc.History(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestRemoveWithoutOpenAssignment(t *testing.T) {
	svc, _, db := newTestService(t)

	project := createProject(t, svc, "Portal", "CLIENT")
	employeeID := seedEmployee(t, db, svc.genID, "dev@intellious.tech")

	err := svc.Remove(context.Background(), domain.RemoveRequest{
		ProjectID:  project.ID,
		EmployeeID: employeeID,
	})
	assert.ErrorIs(t, err, domain.ErrNotAssigned)
}

func TestTeamListsOnlyOpenAssignments(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	project := createProject(t, svc, "Portal", "CLIENT")
	active := seedEmployee(t, db, svc.genID, "active@intellious.tech")
	former := seedEmployee(t, db, svc.genID, "former@intellious.tech")

	_, err := svc.Assign(ctx, domain.AssignRequest{ProjectID: project.ID, EmployeeID: active})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, domain.AssignRequest{ProjectID: project.ID, EmployeeID: former})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, domain.RemoveRequest{ProjectID: project.ID, EmployeeID: former}))

	team, err := svc.Team(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, active, team[0].EmployeeID)
	assert.Equal(t, "active@intellious.tech", team[0].Email)
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, fake, db := newTestService(t)
	ctx := context.Background()

	first := createProject(t, svc, "Alpha", "INTERNAL")
	second := createProject(t, svc, "Beta", "CLIENT")
	employeeID := seedEmployee(t, db, svc.genID, "dev@intellious.tech")

	_, err := svc.Assign(ctx, domain.AssignRequest{ProjectID: first.ID, EmployeeID: employeeID})
	require.NoError(t, err)
	fake.Advance(24 * time.Hour)
	_, err = svc.Assign(ctx, domain.AssignRequest{ProjectID: second.ID, EmployeeID: employeeID})
	require.NoError(t, err)

	history, err := svc.History(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Beta", history[0].Name)
	assert.Equal(t, "Alpha", history[1].Name)
}
