package domain

import (
	"context"
	"errors"
	"io"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrUnknownType   = errors.New("unknown document type")
	ErrEmptyFile     = errors.New("file is required")
	ErrNotFound      = errors.New("document not found")
	ErrInvalidStatus = errors.New("invalid document status")
)

type UploadRequest struct {
	EmployeeID  snowflake.ID
	Type        string
	FileName    string
	ContentType string
	Reader      io.Reader
}

type DownloadURLRequest struct {
	EmployeeID snowflake.ID
	Type       string
}

// SignedURL is a time-limited download link for a stored document.
type SignedURL struct {
	URL          string       `json:"url"`
	DocumentType DocumentType `json:"document_type"`
	ExpiresIn    int          `json:"expires_in"`
}

type SetStatusRequest struct {
	DocumentID snowflake.ID
	Status     string
	ReviewerID snowflake.ID
}

type Service interface {
	// Upload validates the document type, puts the blob in object storage
	// and records its metadata.
	Upload(ctx context.Context, req UploadRequest) (*Document, error)

	// ListForEmployee returns all documents filed by the employee, newest first.
	ListForEmployee(ctx context.Context, employeeID snowflake.ID) ([]Document, error)

	// GetDownloadURL resolves the latest document of the given type and
	// returns a short-lived signed download URL.
	GetDownloadURL(ctx context.Context, req DownloadURLRequest) (*SignedURL, error)

	// SetStatus records a review decision on a document.
	SetStatus(ctx context.Context, req SetStatusRequest) (*Document, error)
}
