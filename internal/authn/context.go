package authn

import (
	"context"

	"tallio.org/internal/access"
)

type userContextKey struct{}

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *access.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the authenticated user, or nil for an
// anonymous request.
func UserFromContext(ctx context.Context) *access.User {
	if ctx == nil {
		return nil
	}
	user, ok := ctx.Value(userContextKey{}).(*access.User)
	if !ok {
		return nil
	}
	return user
}
