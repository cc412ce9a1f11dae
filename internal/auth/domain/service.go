package domain

import (
	"context"
	"time"

	employeedomain "github.com/intellious/hrms/internal/employee/domain"
)

// Onboarding next-step values returned after a successful verification.
const (
	NextStepProfileCreation = "PROFILE_CREATION"
	NextStepDashboard       = "DASHBOARD"
)

type RequestOTPRequest struct {
	Email string
}

type RequestOTPResult struct {
	// ExpiresIn is the validity window of the issued passcode in seconds.
	ExpiresIn int
}

type VerifyOTPRequest struct {
	Email string
	OTP   string
}

type VerifyOTPResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Employee    EmployeeView
}

// EmployeeView is the onboarding snapshot sent back with the token.
type EmployeeView struct {
	ID               string              `json:"id"`
	Email            string              `json:"email"`
	Role             employeedomain.Role `json:"role"`
	FirstLogin       bool                `json:"first_login"`
	ProfileCompleted bool                `json:"profile_completed"`
	NextStep         string              `json:"next_step"`
}

type Service interface {
	RequestOTP(ctx context.Context, req RequestOTPRequest) (*RequestOTPResult, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResult, error)
}
