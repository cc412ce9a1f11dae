// Package requestctx carries per-request metadata used by logging and audit.
package requestctx

import "context"

type requestIDKey struct{}
type ipAddressKey struct{}
type userAgentKey struct{}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID from context, if set.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// WithIPAddress stores the caller IP in the context.
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipAddressKey{}, ip)
}

// IPAddressFromContext returns the caller IP from context, if set.
func IPAddressFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(ipAddressKey{}).(string)
	return value
}

// WithUserAgent stores the caller user agent in the context.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// UserAgentFromContext returns the caller user agent from context, if set.
func UserAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(userAgentKey{}).(string)
	return value
}
