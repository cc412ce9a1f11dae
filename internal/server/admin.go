package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
)

func (s *Server) ListEmployees(c *gin.Context) {
	items, err := s.employeeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": items})
}

func (s *Server) GetEmployee(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("employeeId"))
	if err != nil {
		AbortWithError(c, employeedomain.ErrInvalidID)
		return
	}

	employee, err := s.employeeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (s *Server) RestrictedUpdateEmployee(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("employeeId"))
	if err != nil {
		AbortWithError(c, employeedomain.ErrInvalidID)
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err = s.employeeSvc.RestrictedUpdate(c.Request.Context(), employeedomain.RestrictedUpdateRequest{
		Actor:  actor,
		Target: id,
		Fields: fields,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	target := id.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionRestrictedUpdate,
		TargetType: "employee",
		TargetID:   &target,
		Metadata:   map[string]any{"fields": fieldNames(fields)},
	})

	c.JSON(http.StatusOK, gin.H{"message": "employee updated"})
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	filter := auditdomain.ListFilter{
		Action:     c.Query("action"),
		TargetType: c.Query("target_type"),
		TargetID:   c.Query("target_id"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("start_at"); raw != "" {
		startAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		filter.StartAt = &startAt
	}
	if raw := c.Query("end_at"); raw != "" {
		endAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		filter.EndAt = &endAt
	}

	logs, err := s.auditSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit_logs": logs})
}
