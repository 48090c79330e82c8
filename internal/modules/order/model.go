package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the read model for order history, with product names resolved
// for display.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	Address        string          `json:"address"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	Total          decimal.Decimal `json:"total"`
	Lines          []*Line         `json:"lines"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Line is one line of an order as listed, including the product name at
// read time (empty when the product has since been deleted).
type Line struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}
