package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user data storage.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error

	// GetUserByEmail returns nil when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}
