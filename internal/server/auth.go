package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	authdomain "github.com/intellious/hrms/internal/auth/domain"
	"github.com/intellious/hrms/internal/requestctx"
)

type RequestOTPRequest struct {
	Email string `json:"email"`
}

func (s *Server) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if s.otpLimiter.Enabled() {
		allowed, err := s.otpLimiter.AllowIP(c.Request.Context(), c.ClientIP())
		if err == nil && allowed {
			allowed, err = s.otpLimiter.AllowEmail(c.Request.Context(), req.Email)
		}
		if err == nil && !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		// A limiter outage must not take down login.
	}

	result, err := s.authsvc.RequestOTP(c.Request.Context(), authdomain.RequestOTPRequest{
		Email: req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "otp sent",
		"expires_in": result.ExpiresIn,
	})
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (s *Server) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := requestctx.WithIPAddress(c.Request.Context(), c.ClientIP())
	ctx = requestctx.WithUserAgent(ctx, c.Request.UserAgent())

	result, err := s.authsvc.VerifyOTP(ctx, authdomain.VerifyOTPRequest{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		_ = s.auditSvc.AuditLog(ctx, auditdomain.Entry{
			Action:     auditdomain.ActionLoginFailed,
			TargetType: "employee",
			Metadata:   map[string]any{"email": req.Email, "reason": err.Error()},
		})
		AbortWithError(c, err)
		return
	}

	actorID := result.Employee.ID
	_ = s.auditSvc.AuditLog(ctx, auditdomain.Entry{
		ActorRole:  string(result.Employee.Role),
		Action:     auditdomain.ActionLogin,
		TargetType: "employee",
		TargetID:   &actorID,
		Metadata:   map[string]any{"first_login": result.Employee.FirstLogin},
	})

	c.JSON(http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"expires_at":   result.ExpiresAt,
		"employee":     result.Employee,
		"next_step":    result.Employee.NextStep,
	})
}
