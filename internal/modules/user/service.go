package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}

// ProfileSeeder creates the business profile row that backs the public
// catalog. Implemented by the profile module.
type ProfileSeeder interface {
	EnsureProfile(ctx context.Context, owner uuid.UUID, businessName string) error
}
