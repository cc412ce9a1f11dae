package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/intellious/hrms/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyOTPRequestEmail = "otp:request:email:%s"
	keyOTPRequestIP    = "otp:request:ip:%s"
)

// OTPRequestLimiter throttles passcode issuance per email and per caller
// IP. A nil limiter allows everything, so the server can treat the
// limiter as optional wiring.
type OTPRequestLimiter struct {
	enabled bool

	bucket *TokenBucket

	rate  float64
	burst int
}

func NewOTPRequestLimiter(cfg config.Config) (*OTPRequestLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.OTPRequestRate <= 0 || limitCfg.OTPRequestBurst <= 0 {
		return nil, errors.New("otp request rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &OTPRequestLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.OTPRequestRate,
		burst:   limitCfg.OTPRequestBurst,
	}, nil
}

func (l *OTPRequestLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *OTPRequestLimiter) AllowEmail(ctx context.Context, email string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	key := fmt.Sprintf(keyOTPRequestEmail, strings.ToLower(strings.TrimSpace(email)))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}

func (l *OTPRequestLimiter) AllowIP(ctx context.Context, ip string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	key := fmt.Sprintf(keyOTPRequestIP, strings.TrimSpace(ip))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}
