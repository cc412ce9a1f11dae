package authorization

import (
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(id int64, role employeedomain.Role) employeedomain.Actor {
	return employeedomain.Actor{ID: snowflake.ID(id), Role: role}
}

func fieldsErr(t *testing.T, err error) *FieldsError {
	t.Helper()
	var fErr *FieldsError
	require.True(t, errors.As(err, &fErr), "expected FieldsError, got %v", err)
	return fErr
}

func TestResolveTarget(t *testing.T) {
	employee := actor(10, employeedomain.RoleEmployee)
	hr := actor(20, employeedomain.RoleHR)

	// EMPLOYEE always resolves to self, even with an explicit target.
	assert.Equal(t, "10", ResolveTarget(employee, "99"))
	assert.Equal(t, "10", ResolveTarget(employee, ""))

	assert.Equal(t, "99", ResolveTarget(hr, "99"))
	assert.Equal(t, "20", ResolveTarget(hr, ""))
	assert.Equal(t, "20", ResolveTarget(hr, "   "))
}

func TestFilterSelfUpdateEmployeeAllowedFields(t *testing.T) {
	policy := NewPolicy()

	updates, err := policy.FilterSelfUpdate(actor(1, employeedomain.RoleEmployee), true, map[string]any{
		"full_name":     "Asha Rao",
		"mobile_number": "9999999999",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"full_name":     "Asha Rao",
		"mobile_number": "9999999999",
	}, updates)
}

func TestFilterSelfUpdateEmployeeDeniedNamesEveryField(t *testing.T) {
	policy := NewPolicy()

	_, err := policy.FilterSelfUpdate(actor(1, employeedomain.RoleEmployee), true, map[string]any{
		"full_name": "Asha Rao",
		"role":      "ADMIN",
		"is_active": false,
	})
	fErr := fieldsErr(t, err)
	assert.Equal(t, ReasonFieldsForbidden, fErr.Reason)
	assert.Equal(t, []string{"is_active", "role"}, fErr.Fields)
}

func TestFilterSelfUpdateSilentDropForPrivilegedRoles(t *testing.T) {
	policy := NewPolicy()

	updates, err := policy.FilterSelfUpdate(actor(2, employeedomain.RoleHR), false, map[string]any{
		"full_name": "New Name",
		"role":      "MANAGER",
		"unknown":   "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"full_name": "New Name",
		"role":      "MANAGER",
	}, updates)
}

func TestFilterSelfUpdateNoValidFields(t *testing.T) {
	policy := NewPolicy()

	_, err := policy.FilterSelfUpdate(actor(2, employeedomain.RoleHR), false, map[string]any{
		"unknown": "x",
		"email":   "x@intellious.tech",
	})
	fErr := fieldsErr(t, err)
	assert.Equal(t, ReasonNoValidFields, fErr.Reason)
}

func TestSelfEscalationGuard(t *testing.T) {
	policy := NewPolicy()

	// A privileged actor may not touch their own role or active flag.
	_, err := policy.FilterSelfUpdate(actor(3, employeedomain.RoleHR), true, map[string]any{
		"role": "ADMIN",
	})
	fErr := fieldsErr(t, err)
	assert.Equal(t, ReasonSelfEscalation, fErr.Reason)
	assert.Equal(t, []string{"role"}, fErr.Fields)

	_, err = policy.FilterRestrictedUpdate(actor(3, employeedomain.RoleHR), true, map[string]any{
		"is_active": false,
	})
	fErr = fieldsErr(t, err)
	assert.Equal(t, ReasonSelfEscalation, fErr.Reason)

	// An EMPLOYEE targeting self is not subject to the guard; the
	// self-editable gate already rejected privileged fields.
	_, err = policy.FilterSelfUpdate(actor(3, employeedomain.RoleEmployee), true, map[string]any{
		"full_name": "ok",
	})
	assert.NoError(t, err)
}

func TestAdminAssignmentRequiresAdmin(t *testing.T) {
	policy := NewPolicy()

	_, err := policy.FilterRestrictedUpdate(actor(4, employeedomain.RoleHR), false, map[string]any{
		"role": "admin",
	})
	fErr := fieldsErr(t, err)
	assert.Equal(t, ReasonAdminAssignment, fErr.Reason)

	updates, err := policy.FilterRestrictedUpdate(actor(5, employeedomain.RoleAdmin), false, map[string]any{
		"role": "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"role": "ADMIN"}, updates)
}

func TestFilterRestrictedUpdateRejectsUnknownFields(t *testing.T) {
	policy := NewPolicy()

	_, err := policy.FilterRestrictedUpdate(actor(6, employeedomain.RoleAdmin), false, map[string]any{
		"employee_code": "EMP-42",
		"email":         "a@intellious.tech",
		"created_at":    "now",
	})
	fErr := fieldsErr(t, err)
	assert.Equal(t, ReasonInvalidFields, fErr.Reason)
	assert.Equal(t, []string{"created_at", "email"}, fErr.Fields)
}

func TestFilterRestrictedUpdateEmptySet(t *testing.T) {
	policy := NewPolicy()

	_, err := policy.FilterRestrictedUpdate(actor(6, employeedomain.RoleAdmin), false, map[string]any{})
	fErr := fieldsErr(t, err)
	assert.Equal(t, ReasonNoValidFields, fErr.Reason)
}

func TestCanReadOther(t *testing.T) {
	assert.False(t, CanReadOther(employeedomain.RoleEmployee))
	assert.True(t, CanReadOther(employeedomain.RoleManager))
	assert.True(t, CanReadOther(employeedomain.RoleHR))
	assert.True(t, CanReadOther(employeedomain.RoleAdmin))
}
