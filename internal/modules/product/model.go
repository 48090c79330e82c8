package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the read model for stock listings, including the display name
// of the batch the product arrived in (empty once the batch is deleted).
type Product struct {
	ID              uuid.UUID       `json:"id"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	BatchID         *uuid.UUID      `json:"batch_id,omitempty"`
	BatchName       string          `json:"batch_name,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	InitialQuantity int             `json:"initial_quantity"`
	CurrentQuantity int             `json:"current_quantity"`
	CreatedAt       time.Time       `json:"created_at"`
}

// UpdateProductRequest is the payload for editing a product. The current
// quantity may be corrected directly here; capital is not touched by edits.
type UpdateProductRequest struct {
	BatchID         string          `json:"batch_id,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	CurrentQuantity int             `json:"current_quantity"`
}
