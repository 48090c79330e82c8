package auth

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login checks credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, error)

	// ParseToken validates a session token and returns the owner id it
	// was issued for.
	ParseToken(token string) (uuid.UUID, error)
}

type contextKey int

const ownerKey contextKey = 0

// WithOwner returns ctx carrying the authenticated owner id.
func WithOwner(ctx context.Context, owner uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// OwnerID extracts the authenticated owner id placed by RequireAuth.
func OwnerID(ctx context.Context) (uuid.UUID, bool) {
	owner, ok := ctx.Value(ownerKey).(uuid.UUID)
	return owner, ok
}
