package profile

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new postgres profile repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) EnsureProfile(ctx context.Context, owner uuid.UUID, businessName string) error {
	query := `INSERT INTO profiles (owner_id, business_name)
		VALUES ($1, $2)
		ON CONFLICT (owner_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, owner, businessName); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (r *postgresRepository) GetProfile(ctx context.Context, owner uuid.UUID) (*Profile, error) {
	query := `SELECT owner_id, business_name, instagram_url, facebook_url, website_url,
			phone_number, show_catalog_price, show_catalog_description, updated_at
		FROM profiles
		WHERE owner_id = $1`

	p := &Profile{}
	err := r.db.QueryRowContext(ctx, query, owner).Scan(
		&p.OwnerID, &p.BusinessName, &p.InstagramURL, &p.FacebookURL, &p.WebsiteURL,
		&p.PhoneNumber, &p.ShowCatalogPrice, &p.ShowCatalogDescription, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("profile not found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, p *Profile) (*Profile, error) {
	query := `UPDATE profiles
		SET business_name = $2, instagram_url = $3, facebook_url = $4, website_url = $5,
			phone_number = $6, show_catalog_price = $7, show_catalog_description = $8,
			updated_at = now()
		WHERE owner_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, p.OwnerID, p.BusinessName, p.InstagramURL,
		p.FacebookURL, p.WebsiteURL, p.PhoneNumber, p.ShowCatalogPrice, p.ShowCatalogDescription).
		Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("profile not found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return p, nil
}
