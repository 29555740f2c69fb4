// Package session carries the authenticated caller through a request.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

type ctxKey struct{}

// Session is the identity of the caller, built from a validated access token
type Session struct {
	Token       string    `json:"-"`
	TokenID     string    `json:"-"`
	TenantID    uuid.UUID `json:"tenantId"`
	UserID      uuid.UUID `json:"userId"`
	UserRole    string    `json:"userRole"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"-"`
	IssuedAt    time.Time `json:"-"`
}

// IsAdmin reports whether the caller holds the tenant administrator role
func (s *Session) IsAdmin() bool {
	return strings.EqualFold(s.UserRole, identity.AdminRoleCode)
}

// Can reports whether the session grants the resource:action code
func (s *Session) Can(required string) bool {
	return s.IsAdmin() || identity.Allows(s.Permissions, required)
}

// Actor returns a pointer to the user ID, for created_by fields
func (s *Session) Actor() *uuid.UUID {
	id := s.UserID
	return &id
}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// Require returns the session stored in ctx or an UNAUTHORIZED error
func Require(ctx context.Context) (*Session, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return nil, shared.ErrUnauthorized
	}
	return s, nil
}
