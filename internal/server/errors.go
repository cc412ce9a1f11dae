package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	authdomain "github.com/intellious/hrms/internal/auth/domain"
	"github.com/intellious/hrms/internal/authorization"
	documentdomain "github.com/intellious/hrms/internal/document/domain"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	projectdomain "github.com/intellious/hrms/internal/project/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal_error")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if fErr := asFieldsError(err); fErr != nil {
		return mapFieldsError(fErr)
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrInvalidOTP):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authdomain.ErrDomainNotAllowed):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, employeedomain.ErrEmailExists),
		errors.Is(err, projectdomain.ErrAlreadyAssigned):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(err),
					Code:    validationErrorCode(err),
					Message: err.Error(),
				},
			},
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func asFieldsError(err error) *authorization.FieldsError {
	var fErr *authorization.FieldsError
	if errors.As(err, &fErr) && fErr != nil {
		return fErr
	}
	return nil
}

// mapFieldsError distinguishes policy denials (403) from malformed field
// selections (400).
func mapFieldsError(fErr *authorization.FieldsError) (int, errorPayload) {
	switch fErr.Reason {
	case authorization.ReasonInvalidFields, authorization.ReasonNoValidFields:
		violations := make([]ValidationError, 0, len(fErr.Fields))
		for _, field := range fErr.Fields {
			violations = append(violations, ValidationError{
				Field:   field,
				Code:    "invalid_field",
				Message: fErr.Reason,
			})
		}
		if len(violations) == 0 {
			violations = append(violations, ValidationError{
				Field:   "fields",
				Code:    "no_valid_fields",
				Message: fErr.Reason,
			})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: fErr.Reason,
			Errors:  violations,
		}
	default:
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: fErr.Error(),
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, auditdomain.ErrInvalidTimeRange),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrMissingFields),
		errors.Is(err, authdomain.ErrOTPExpired),
		errors.Is(err, authdomain.ErrOTPAlreadyUsed),
		errors.Is(err, employeedomain.ErrInvalidID),
		errors.Is(err, employeedomain.ErrInvalidRole),
		errors.Is(err, documentdomain.ErrUnknownType),
		errors.Is(err, documentdomain.ErrEmptyFile),
		errors.Is(err, documentdomain.ErrInvalidStatus),
		errors.Is(err, projectdomain.ErrInvalidType),
		errors.Is(err, projectdomain.ErrInvalidStatus),
		errors.Is(err, projectdomain.ErrClientRequired):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrOTPNotFound),
		errors.Is(err, employeedomain.ErrNotFound),
		errors.Is(err, documentdomain.ErrNotFound),
		errors.Is(err, projectdomain.ErrNotFound),
		errors.Is(err, projectdomain.ErrNotAssigned),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, authdomain.ErrOTPExpired):
		return "otp_expired"
	case errors.Is(err, authdomain.ErrOTPAlreadyUsed):
		return "otp_already_used"
	case errors.Is(err, authdomain.ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, authdomain.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, employeedomain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, documentdomain.ErrUnknownType):
		return "unknown_document_type"
	case errors.Is(err, projectdomain.ErrClientRequired):
		return "client_name_required"
	default:
		return "invalid_request"
	}
}

func validationErrorField(err error) string {
	switch {
	case errors.Is(err, authdomain.ErrInvalidEmail):
		return "email"
	case errors.Is(err, authdomain.ErrOTPExpired),
		errors.Is(err, authdomain.ErrOTPAlreadyUsed):
		return "otp"
	case errors.Is(err, employeedomain.ErrInvalidRole):
		return "role"
	case errors.Is(err, documentdomain.ErrUnknownType):
		return "document_type"
	case errors.Is(err, projectdomain.ErrClientRequired):
		return "client_name"
	default:
		return "request"
	}
}
