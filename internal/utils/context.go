// Package utils provides general-purpose helpers shared by the ingress
// service: typed context keys, JSON response writing, a resty-based HTTP
// client used by the health check, and time-ordered UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key under which the request trace identifier is
// stored in the context.
//
//	ctx := context.WithValue(ctx, utils.TraceIDCtxKey, "8f14e45f-...")
var TraceIDCtxKey = contextKey("traceID")

// GetTraceIDFromContext retrieves the trace identifier from the context.
// ok is false when the value is missing or not a non-empty string.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}
