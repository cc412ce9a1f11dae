package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	"github.com/intellious/hrms/internal/authorization"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
)

func (s *Server) GetProfile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	employee, err := s.employeeSvc.GetProfile(c.Request.Context(), employeedomain.GetProfileRequest{
		Actor:  actor,
		Target: c.Query("employee_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (s *Server) UpdateProfile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	target := c.Query("employee_id")
	err := s.employeeSvc.UpdateProfile(c.Request.Context(), employeedomain.UpdateProfileRequest{
		Actor:  actor,
		Target: target,
		Fields: fields,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// A successful self-service update completes the first-login profile
	// creation step.
	resolved := authorization.ResolveTarget(actor, target)
	if resolved == actor.ID.String() {
		if err := s.employeeSvc.MarkProfileCompleted(c.Request.Context(), actor.ID); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	targetID := resolved
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionProfileUpdate,
		TargetType: "employee",
		TargetID:   &targetID,
		Metadata:   map[string]any{"fields": fieldNames(fields)},
	})

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
