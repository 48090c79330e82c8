package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the owner's public-facing business page settings. The
// visibility flags control what the public catalog reveals.
type Profile struct {
	OwnerID                uuid.UUID `json:"owner_id"`
	BusinessName           string    `json:"business_name"`
	InstagramURL           string    `json:"instagram_url"`
	FacebookURL            string    `json:"facebook_url"`
	WebsiteURL             string    `json:"website_url"`
	PhoneNumber            string    `json:"phone_number"`
	ShowCatalogPrice       bool      `json:"show_catalog_price"`
	ShowCatalogDescription bool      `json:"show_catalog_description"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// UpdateProfileRequest carries the editable profile fields. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	BusinessName           *string `json:"business_name"`
	InstagramURL           *string `json:"instagram_url"`
	FacebookURL            *string `json:"facebook_url"`
	WebsiteURL             *string `json:"website_url"`
	PhoneNumber            *string `json:"phone_number"`
	ShowCatalogPrice       *bool   `json:"show_catalog_price"`
	ShowCatalogDescription *bool   `json:"show_catalog_description"`
}
