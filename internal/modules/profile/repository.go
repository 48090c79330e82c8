package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines profile persistence.
type Repository interface {
	// EnsureProfile creates a default profile for a new owner if none
	// exists yet.
	EnsureProfile(ctx context.Context, owner uuid.UUID, businessName string) error
	GetProfile(ctx context.Context, owner uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) (*Profile, error)
}
