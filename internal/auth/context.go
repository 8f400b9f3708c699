package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/cadencia/cadencia-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   domain.UserRole
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// CanViewTeam reports whether the user may access team-scoped views
func (u *UserContext) CanViewTeam() bool {
	return u.Role.CanViewTeam()
}

// CanManageUsers reports whether the user may administer accounts
func (u *UserContext) CanManageUsers() bool {
	return u.Role.CanManageUsers()
}
