// Package token signs and verifies the short-lived session tokens minted at
// OTP verification. Claims are a snapshot: role and active status may drift
// from the database until the token expires.
package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	authdomain "github.com/intellious/hrms/internal/auth/domain"
	"github.com/intellious/hrms/internal/config"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
)

// TTL is the fixed session token lifetime.
const TTL = 15 * time.Minute

// Claims is the signed session payload.
type Claims struct {
	jwt.RegisteredClaims
	EmployeeID string              `json:"employee_id"`
	Role       employeedomain.Role `json:"role"`
	IsActive   bool                `json:"is_active"`
}

// Signer signs and verifies session tokens with a symmetric secret.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(cfg config.Config) *Signer {
	return &Signer{
		secret: []byte(cfg.AuthJWTSecret),
		now:    time.Now,
	}
}

// NewSignerAt returns a signer with a fixed time source, for tests.
func NewSignerAt(secret string, now func() time.Time) *Signer {
	return &Signer{secret: []byte(secret), now: now}
}

// Sign mints a token for the employee snapshot with the fixed TTL.
func (s *Signer) Sign(employeeID string, role employeedomain.Role, isActive bool) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(TTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		EmployeeID: employeeID,
		Role:       role,
		IsActive:   isActive,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token. Any failure, tampering or expiry
// surfaces as the same uniform error.
func (s *Signer) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, authdomain.ErrInvalidToken
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authdomain.ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, authdomain.ErrInvalidToken
	}

	if !claims.Role.Valid() || strings.TrimSpace(claims.EmployeeID) == "" {
		return nil, authdomain.ErrInvalidToken
	}
	return &claims, nil
}
