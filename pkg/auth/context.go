package auth

import (
	"context"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	usernameKey  contextKey = "username"
)

// NewContextWithSessionID returns a context carrying the session ID.
func NewContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionIDFromContext extracts the session ID from the context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok
}

// SessionIDFromContext extracts the session ID, falling back to "guest" when
// none is present.
func SessionIDFromContext(ctx context.Context) string {
	sessionID, ok := GetSessionIDFromContext(ctx)
	if !ok || sessionID == "" {
		return "guest"
	}
	return sessionID
}

// AddIdentityToContext stores the validated token identity in the context.
// Accepts the claims value returned by ValidateToken.
func AddIdentityToContext(ctx context.Context, claims interface{}, isUser bool) context.Context {
	switch c := claims.(type) {
	case *UserClaims:
		ctx = NewContextWithSessionID(ctx, c.SessionID)
		if isUser {
			ctx = context.WithValue(ctx, usernameKey, c.Username)
		}
	case *GuestClaims:
		ctx = NewContextWithSessionID(ctx, c.SessionID)
	}
	return ctx
}

// UsernameFromContext extracts the logged-in username from the context. The
// second result is false for guest sessions.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}
