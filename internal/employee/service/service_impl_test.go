package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/intellious/hrms/internal/authorization"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/employee/domain"
	"github.com/intellious/hrms/internal/employee/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var testCounter int

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	testCounter++
	dsn := fmt.Sprintf("file:employee_svc_%d?mode=memory&cache=shared", testCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Employee{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &Service{
		db:     db,
		log:    zaptest.NewLogger(t),
		genID:  node,
		clock:  clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		repo:   repository.Provide(),
		policy: authorization.NewPolicy(),
	}, db
}

func seedEmployee(t *testing.T, svc *Service, email string, role domain.Role) *domain.Employee {
	t.Helper()
	employee, err := svc.FindOrCreateByEmail(context.Background(), email)
	require.NoError(t, err)
	if role != domain.RoleEmployee {
		require.NoError(t, svc.db.Model(&domain.Employee{}).
			Where("id = ?", employee.ID).
			Update("role", role).Error)
		employee.Role = role
	}
	return employee
}

func TestFindOrCreateByEmailIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.FindOrCreateByEmail(ctx, "Asha@Intellious.Tech")
	require.NoError(t, err)
	assert.Equal(t, "asha@intellious.tech", first.Email)
	assert.Equal(t, domain.RoleEmployee, first.Role)
	assert.True(t, first.IsActive)
	assert.False(t, first.ProfileCompleted)

	second, err := svc.FindOrCreateByEmail(ctx, "asha@intellious.tech")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpdateProfileSelfService(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	employee := seedEmployee(t, svc, "dev@intellious.tech", domain.RoleEmployee)
	actor := domain.Actor{ID: employee.ID, Role: domain.RoleEmployee}

	err := svc.UpdateProfile(ctx, domain.UpdateProfileRequest{
		Actor:  actor,
		Fields: map[string]any{"full_name": "Dev Patel", "mobile_number": "8888888888"},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FullName)
	assert.Equal(t, "Dev Patel", *got.FullName)
}

func TestUpdateProfileEmployeeCannotTouchRestrictedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	employee := seedEmployee(t, svc, "dev@intellious.tech", domain.RoleEmployee)
	actor := domain.Actor{ID: employee.ID, Role: domain.RoleEmployee}

	err := svc.UpdateProfile(ctx, domain.UpdateProfileRequest{
		Actor:  actor,
		Fields: map[string]any{"full_name": "Dev", "role": "ADMIN"},
	})
	var fErr *authorization.FieldsError
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, authorization.ReasonFieldsForbidden, fErr.Reason)

	// The denial is all-or-nothing: full_name must not have been written.
	got, err := svc.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.Nil(t, got.FullName)
	assert.Equal(t, domain.RoleEmployee, got.Role)
}

func TestRestrictedUpdateByHR(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	hr := seedEmployee(t, svc, "hr@intellious.tech", domain.RoleHR)
	target := seedEmployee(t, svc, "dev@intellious.tech", domain.RoleEmployee)

	err := svc.RestrictedUpdate(ctx, domain.RestrictedUpdateRequest{
		Actor:  domain.Actor{ID: hr.ID, Role: domain.RoleHR},
		Target: target.ID,
		Fields: map[string]any{"role": "manager", "employee_code": "EMP-007"},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, got.Role)
	require.NotNil(t, got.EmployeeCode)
	assert.Equal(t, "EMP-007", *got.EmployeeCode)
}

func TestRestrictedUpdateSelfEscalationDenied(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	hr := seedEmployee(t, svc, "hr@intellious.tech", domain.RoleHR)

	err := svc.RestrictedUpdate(ctx, domain.RestrictedUpdateRequest{
		Actor:  domain.Actor{ID: hr.ID, Role: domain.RoleHR},
		Target: hr.ID,
		Fields: map[string]any{"is_active": false},
	})
	var fErr *authorization.FieldsError
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, authorization.ReasonSelfEscalation, fErr.Reason)
}

func TestRestrictedUpdateInvalidRoleValue(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin := seedEmployee(t, svc, "admin@intellious.tech", domain.RoleAdmin)
	target := seedEmployee(t, svc, "dev@intellious.tech", domain.RoleEmployee)

	err := svc.RestrictedUpdate(ctx, domain.RestrictedUpdateRequest{
		Actor:  domain.Actor{ID: admin.ID, Role: domain.RoleAdmin},
		Target: target.ID,
		Fields: map[string]any{"role": "SUPERUSER"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUpdateAbsentEmployee(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin := seedEmployee(t, svc, "admin@intellious.tech", domain.RoleAdmin)

	err := svc.RestrictedUpdate(ctx, domain.RestrictedUpdateRequest{
		Actor:  domain.Actor{ID: admin.ID, Role: domain.RoleAdmin},
		Target: snowflake.ID(999999),
		Fields: map[string]any{"employee_code": "EMP-1"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetProfileEmployeeAlwaysReadsSelf(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	self := seedEmployee(t, svc, "dev@intellious.tech", domain.RoleEmployee)
	other := seedEmployee(t, svc, "other@intellious.tech", domain.RoleEmployee)

	got, err := svc.GetProfile(ctx, domain.GetProfileRequest{
		Actor:  domain.Actor{ID: self.ID, Role: domain.RoleEmployee},
		Target: other.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, self.ID, got.ID)
}

func TestListDirectory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seedEmployee(t, svc, "a@intellious.tech", domain.RoleEmployee)
	seedEmployee(t, svc, "b@intellious.tech", domain.RoleHR)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestMarkProfileCompleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	employee := seedEmployee(t, svc, "dev@intellious.tech", domain.RoleEmployee)
	require.NoError(t, svc.MarkProfileCompleted(ctx, employee.ID))

	got, err := svc.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.True(t, got.ProfileCompleted)
}

func TestTimestampsComeFromInjectedClock(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	fake := svc.clock.(*clock.FakeClock)

	created, err := svc.FindOrCreateByEmail(ctx, "ravi@intellious.tech")
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(fake.Now()))

	fake.Advance(45 * time.Minute)
	require.NoError(t, svc.RecordLogin(ctx, created.ID))

	var stored domain.Employee
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	require.NotNil(t, stored.LastLoginAt)
	assert.True(t, stored.LastLoginAt.Equal(fake.Now()))
	assert.True(t, stored.UpdatedAt.Equal(fake.Now()))
}
