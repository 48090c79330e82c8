package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

// Service defines profile business logic.
type Service interface {
	GetProfile(ctx context.Context, owner uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, owner uuid.UUID, req UpdateProfileRequest) (*Profile, error)
}

type service struct {
	repo Repository
}

// NewService creates a new profile service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, owner uuid.UUID) (*Profile, error) {
	return s.repo.GetProfile(ctx, owner)
}

func (s *service) UpdateProfile(ctx context.Context, owner uuid.UUID, req UpdateProfileRequest) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, owner)
	if err != nil {
		return nil, err
	}
	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return nil, apperr.Validationf("business name is required")
		}
		p.BusinessName = name
	}
	if req.InstagramURL != nil {
		p.InstagramURL = strings.TrimSpace(*req.InstagramURL)
	}
	if req.FacebookURL != nil {
		p.FacebookURL = strings.TrimSpace(*req.FacebookURL)
	}
	if req.WebsiteURL != nil {
		p.WebsiteURL = strings.TrimSpace(*req.WebsiteURL)
	}
	if req.PhoneNumber != nil {
		p.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.ShowCatalogPrice != nil {
		p.ShowCatalogPrice = *req.ShowCatalogPrice
	}
	if req.ShowCatalogDescription != nil {
		p.ShowCatalogDescription = *req.ShowCatalogDescription
	}
	return s.repo.UpdateProfile(ctx, p)
}
