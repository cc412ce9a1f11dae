package domain

import "errors"

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrDomainNotAllowed = errors.New("email domain not allowed")
	ErrMissingFields    = errors.New("email and otp are required")
	ErrOTPNotFound      = errors.New("otp not found")
	ErrOTPAlreadyUsed   = errors.New("otp already used")
	ErrOTPExpired       = errors.New("otp expired")
	ErrInvalidOTP       = errors.New("invalid otp")
	ErrInvalidToken     = errors.New("invalid or expired token")
)
