package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one product as shown on the public catalog page. Description
// and price are omitted when the owner's profile hides them.
type Item struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	ImageURL    string           `json:"image_url,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	InStock     bool             `json:"in_stock"`
}

// Page is the public catalog response: the business header plus its
// products.
type Page struct {
	BusinessName string `json:"business_name"`
	InstagramURL string `json:"instagram_url,omitempty"`
	FacebookURL  string `json:"facebook_url,omitempty"`
	WebsiteURL   string `json:"website_url,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Items        []Item `json:"items"`
}
