package auth

import (
	"context"

	"disccount_backend/pkg/apperrors"
	"disccount_backend/pkg/contextkeys"
)

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDContextKey, userID)
}

// CurrentUserID returns the id stored by the auth middleware. A missing id
// is reported as ErrNotAuthenticated, never as an empty string.
func CurrentUserID(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", apperrors.ErrNotAuthenticated
	}
	userID, ok := ctx.Value(contextkeys.UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return userID, nil
}
