package scheduler

import "time"

// Config controls maintenance intervals and retention windows.
type Config struct {
	RunInterval    time.Duration
	JobTimeout     time.Duration
	OTPRetention   time.Duration
	AuditRetention time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunInterval:    time.Hour,
		JobTimeout:     time.Minute,
		OTPRetention:   24 * time.Hour,
		AuditRetention: 180 * 24 * time.Hour,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	if c.OTPRetention <= 0 {
		c.OTPRetention = defaults.OTPRetention
	}
	if c.AuditRetention <= 0 {
		c.AuditRetention = defaults.AuditRetention
	}
	return c
}
