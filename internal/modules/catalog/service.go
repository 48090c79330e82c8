package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/modules/product"
	"github.com/casastock/casastock-backend/internal/modules/profile"
)

// Service assembles the public catalog page for an owner.
type Service interface {
	Page(ctx context.Context, owner uuid.UUID) (*Page, error)
}

type service struct {
	profiles profile.Repository
	products product.Repository
}

// NewService creates a new catalog service.
func NewService(profiles profile.Repository, products product.Repository) Service {
	return &service{profiles: profiles, products: products}
}

func (s *service) Page(ctx context.Context, owner uuid.UUID) (*Page, error) {
	prof, err := s.profiles.GetProfile(ctx, owner)
	if err != nil {
		return nil, err
	}
	list, err := s.products.ListProducts(ctx, owner)
	if err != nil {
		return nil, err
	}

	page := &Page{
		BusinessName: prof.BusinessName,
		InstagramURL: prof.InstagramURL,
		FacebookURL:  prof.FacebookURL,
		WebsiteURL:   prof.WebsiteURL,
		PhoneNumber:  prof.PhoneNumber,
		Items:        make([]Item, 0, len(list)),
	}
	for _, p := range list {
		item := Item{
			ID:       p.ID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			InStock:  p.CurrentQuantity > 0,
		}
		if prof.ShowCatalogDescription && p.Description != "" {
			d := p.Description
			item.Description = &d
		}
		if prof.ShowCatalogPrice {
			price := p.SellingPrice
			item.Price = &price
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}
