package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type service struct {
	repo     Repository
	profiles ProfileSeeder
}

// NewService creates a new user service.
func NewService(repo Repository, profiles ProfileSeeder) Service {
	return &service{repo: repo, profiles: profiles}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validationf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validationf("password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		BusinessName: strings.TrimSpace(req.BusinessName),
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := s.profiles.EnsureProfile(ctx, u.ID, u.BusinessName); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}
