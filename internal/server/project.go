package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	projectdomain "github.com/intellious/hrms/internal/project/domain"
)

const dateLayout = "2006-01-02"

type CreateProjectRequest struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	ClientName *string `json:"client_name"`
	ManagerID  string  `json:"manager_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

func (s *Server) CreateProject(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Name == "" {
		AbortWithError(c, newValidationError("name", "required", "name is required"))
		return
	}

	managerID := actor.ID
	if req.ManagerID != "" {
		parsed, err := snowflake.ParseString(req.ManagerID)
		if err != nil {
			AbortWithError(c, newValidationError("manager_id", "invalid", "invalid manager id"))
			return
		}
		managerID = parsed
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid", "start_date must be YYYY-MM-DD"))
		return
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			AbortWithError(c, newValidationError("end_date", "invalid", "end_date must be YYYY-MM-DD"))
			return
		}
		endDate = &parsed
	}

	project, err := s.projectSvc.Create(c.Request.Context(), projectdomain.CreateProjectRequest{
		Name:       req.Name,
		Type:       req.Type,
		ClientName: req.ClientName,
		ManagerID:  managerID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	target := project.ID.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionProjectCreate,
		TargetType: "project",
		TargetID:   &target,
		Metadata:   map[string]any{"type": string(project.Type)},
	})

	c.JSON(http.StatusCreated, project)
}

func (s *Server) UpdateProject(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("projectId"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	project, err := s.projectSvc.Update(c.Request.Context(), projectdomain.UpdateProjectRequest{
		ProjectID: id,
		Fields:    fields,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	target := id.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionProjectUpdate,
		TargetType: "project",
		TargetID:   &target,
		Metadata:   map[string]any{"fields": fieldNames(fields)},
	})

	c.JSON(http.StatusOK, project)
}

func (s *Server) DeleteProject(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("projectId"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.projectSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	target := id.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionProjectDelete,
		TargetType: "project",
		TargetID:   &target,
	})

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func (s *Server) GetProject(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("projectId"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	project, err := s.projectSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (s *Server) ListProjects(c *gin.Context) {
	projects, err := s.projectSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) GetProjectTeam(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("projectId"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	team, err := s.projectSvc.Team(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (s *Server) GetEmployeeProjects(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("employeeId"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	history, err := s.projectSvc.History(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": history})
}

type AssignmentRequest struct {
	ProjectID    string `json:"project_id"`
	EmployeeID   string `json:"employee_id"`
	AssignedFrom string `json:"assigned_from"`
}

func (s *Server) AssignEmployee(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	projectID, err := snowflake.ParseString(req.ProjectID)
	if err != nil {
		AbortWithError(c, newValidationError("project_id", "invalid", "invalid project id"))
		return
	}
	employeeID, err := snowflake.ParseString(req.EmployeeID)
	if err != nil {
		AbortWithError(c, newValidationError("employee_id", "invalid", "invalid employee id"))
		return
	}

	var assignedFrom time.Time
	if req.AssignedFrom != "" {
		assignedFrom, err = time.Parse(dateLayout, req.AssignedFrom)
		if err != nil {
			AbortWithError(c, newValidationError("assigned_from", "invalid", "assigned_from must be YYYY-MM-DD"))
			return
		}
	}

	assignment, err := s.projectSvc.Assign(c.Request.Context(), projectdomain.AssignRequest{
		ProjectID:    projectID,
		EmployeeID:   employeeID,
		AssignedFrom: assignedFrom,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	target := assignment.ID.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionAssignmentOpen,
		TargetType: "assignment",
		TargetID:   &target,
		Metadata: map[string]any{
			"project_id":  projectID.String(),
			"employee_id": employeeID.String(),
		},
	})

	c.JSON(http.StatusCreated, assignment)
}

func (s *Server) RemoveAssignment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	projectID, err := snowflake.ParseString(req.ProjectID)
	if err != nil {
		AbortWithError(c, newValidationError("project_id", "invalid", "invalid project id"))
		return
	}
	employeeID, err := snowflake.ParseString(req.EmployeeID)
	if err != nil {
		AbortWithError(c, newValidationError("employee_id", "invalid", "invalid employee id"))
		return
	}

	err = s.projectSvc.Remove(c.Request.Context(), projectdomain.RemoveRequest{
		ProjectID:  projectID,
		EmployeeID: employeeID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionAssignmentClose,
		TargetType: "assignment",
		Metadata: map[string]any{
			"project_id":  projectID.String(),
			"employee_id": employeeID.String(),
		},
	})

	c.JSON(http.StatusOK, gin.H{"message": "assignment closed"})
}
