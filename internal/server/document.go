package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	documentdomain "github.com/intellious/hrms/internal/document/domain"
)

func (s *Server) ListDocuments(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	docs, err := s.documentSvc.ListForEmployee(c.Request.Context(), actor.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) UploadDocument(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	docType := c.PostForm("document_type")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "file_required", "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}
	defer file.Close()

	doc, err := s.documentSvc.Upload(c.Request.Context(), documentdomain.UploadRequest{
		EmployeeID:  actor.ID,
		Type:        docType,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	docID := doc.ID.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionDocumentUpload,
		TargetType: "document",
		TargetID:   &docID,
		Metadata:   map[string]any{"document_type": string(doc.DocumentType)},
	})

	c.JSON(http.StatusCreated, doc)
}

func (s *Server) GetDocumentURL(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	signed, err := s.documentSvc.GetDownloadURL(c.Request.Context(), documentdomain.DownloadURLRequest{
		EmployeeID: actor.ID,
		Type:       c.Param("type"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, signed)
}

type SetDocumentStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) SetDocumentStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	docID, err := snowflake.ParseString(c.Param("documentId"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req SetDocumentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc, err := s.documentSvc.SetStatus(c.Request.Context(), documentdomain.SetStatusRequest{
		DocumentID: docID,
		Status:     req.Status,
		ReviewerID: actor.ID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	target := doc.ID.String()
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		ActorID:    &actor.ID,
		ActorRole:  string(actor.Role),
		Action:     auditdomain.ActionDocumentDecision,
		TargetType: "document",
		TargetID:   &target,
		Metadata:   map[string]any{"status": string(doc.Status)},
	})

	c.JSON(http.StatusOK, doc)
}
