// Package authorization implements the field-level update policy for
// employee records. It is a pure decision layer: no I/O, no storage access.
package authorization

import (
	"fmt"
	"sort"
	"strings"

	employeedomain "github.com/intellious/hrms/internal/employee/domain"
)

// Field names governed by the policy. They match employees table column
// names, as in the HTTP payload contract. Profile fields outside both sets
// (address, dob, designation and the like) need no constant: the update
// paths pass them through or drop them by set membership alone.
const (
	FieldFullName     = "full_name"
	FieldMobileNumber = "mobile_number"

	FieldRole         = "role"
	FieldManagerID    = "manager_id"
	FieldEmployeeCode = "employee_code"
	FieldJoiningDate  = "joining_date"
	FieldIsActive     = "is_active"
)

// Policy holds the immutable field permission sets. Build it once at process
// start and pass it explicitly; it is never ambient state.
type Policy struct {
	selfEditable map[string]struct{}
	restricted   map[string]struct{}
}

// NewPolicy builds the default policy: employees may edit their own name and
// mobile number; organizational and privilege fields require MANAGER/HR/ADMIN.
func NewPolicy() *Policy {
	return &Policy{
		selfEditable: fieldSet(
			FieldFullName,
			FieldMobileNumber,
		),
		restricted: fieldSet(
			FieldRole,
			FieldManagerID,
			FieldEmployeeCode,
			FieldJoiningDate,
			FieldIsActive,
		),
	}
}

func fieldSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// FieldsError is a denial or rejection that names every offending field.
type FieldsError struct {
	Reason string
	Fields []string
}

func (e *FieldsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

const (
	ReasonFieldsForbidden = "cannot update fields"
	ReasonSelfEscalation  = "cannot modify own role or active status"
	ReasonAdminAssignment = "only an admin may assign the admin role"
	ReasonInvalidFields   = "cannot update system fields"
	ReasonNoValidFields   = "no valid fields provided for update"
)

// ResolveTarget resolves the effective target of a read or write. EMPLOYEE
// always targets self; other roles may name an explicit target and default
// to self when none is given.
func ResolveTarget(actor employeedomain.Actor, explicit string) string {
	if actor.Role == employeedomain.RoleEmployee {
		return actor.ID.String()
	}
	if strings.TrimSpace(explicit) == "" {
		return actor.ID.String()
	}
	return strings.TrimSpace(explicit)
}

// FilterSelfUpdate applies the self-service contract and returns the
// effective update set. Fields outside both permission sets are silently
// dropped for non-EMPLOYEE callers; for EMPLOYEE callers any field outside
// the self-editable set denies the whole request.
func (p *Policy) FilterSelfUpdate(actor employeedomain.Actor, targetIsSelf bool, fields map[string]any) (map[string]any, error) {
	if actor.Role == employeedomain.RoleEmployee {
		var forbidden []string
		for name := range fields {
			if _, ok := p.selfEditable[name]; !ok {
				forbidden = append(forbidden, name)
			}
		}
		if len(forbidden) > 0 {
			sort.Strings(forbidden)
			return nil, &FieldsError{Reason: ReasonFieldsForbidden, Fields: forbidden}
		}
	}

	if err := p.guardEscalation(actor, targetIsSelf, fields); err != nil {
		return nil, err
	}

	updates := make(map[string]any, len(fields))
	for name, value := range fields {
		if _, ok := p.selfEditable[name]; ok {
			updates[name] = value
			continue
		}
		if _, ok := p.restricted[name]; ok && actor.Role != employeedomain.RoleEmployee {
			updates[name] = value
		}
	}

	if len(updates) == 0 {
		return nil, &FieldsError{Reason: ReasonNoValidFields}
	}
	return updates, nil
}

// FilterRestrictedUpdate applies the dedicated MANAGER/HR/ADMIN contract.
// Unknown and system fields are an explicit rejection naming each of them,
// never a silent drop.
func (p *Policy) FilterRestrictedUpdate(actor employeedomain.Actor, targetIsSelf bool, fields map[string]any) (map[string]any, error) {
	var invalid []string
	for name := range fields {
		_, self := p.selfEditable[name]
		_, restricted := p.restricted[name]
		if !self && !restricted {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, &FieldsError{Reason: ReasonInvalidFields, Fields: invalid}
	}

	if err := p.guardEscalation(actor, targetIsSelf, fields); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, &FieldsError{Reason: ReasonNoValidFields}
	}

	updates := make(map[string]any, len(fields))
	for name, value := range fields {
		updates[name] = value
	}
	return updates, nil
}

// guardEscalation enforces the two privilege rules shared by both paths:
// a privileged actor may never change their own role or activation state,
// and the ADMIN role value may only be assigned by an ADMIN.
func (p *Policy) guardEscalation(actor employeedomain.Actor, targetIsSelf bool, fields map[string]any) error {
	if actor.Role != employeedomain.RoleEmployee && targetIsSelf {
		var offending []string
		if _, ok := fields[FieldRole]; ok {
			offending = append(offending, FieldRole)
		}
		if _, ok := fields[FieldIsActive]; ok {
			offending = append(offending, FieldIsActive)
		}
		if len(offending) > 0 {
			return &FieldsError{Reason: ReasonSelfEscalation, Fields: offending}
		}
	}

	if raw, ok := fields[FieldRole]; ok {
		if value, ok := raw.(string); ok &&
			employeedomain.Role(strings.ToUpper(strings.TrimSpace(value))) == employeedomain.RoleAdmin &&
			actor.Role != employeedomain.RoleAdmin {
			return &FieldsError{Reason: ReasonAdminAssignment, Fields: []string{FieldRole}}
		}
	}

	return nil
}

// CanReadOther reports whether the role may fetch another employee's
// profile or documents.
func CanReadOther(role employeedomain.Role) bool {
	return role != employeedomain.RoleEmployee
}
