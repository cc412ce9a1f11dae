// Package domain contains core types for the OTP auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// OTPLog is a single passcode issuance. History is retained: a new request
// inserts a new row and verification always targets the latest one.
type OTPLog struct {
	ID snowflake.ID `gorm:"primaryKey"`

	Email   string `gorm:"type:text;not null;index:idx_otp_logs_email"`
	OTPHash string `gorm:"column:otp_hash;type:text;not null"`

	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	Attempts  int       `gorm:"column:attempts;not null;default:0"`
	IsUsed    bool      `gorm:"column:is_used;not null;default:false"`

	CreatedAt  time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	VerifiedAt *time.Time `gorm:"column:verified_at"`
}

// TableName sets the database table name.
func (OTPLog) TableName() string { return "otp_logs" }
