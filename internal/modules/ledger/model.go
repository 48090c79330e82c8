package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item of stock owned by a business. CurrentQuantity starts
// equal to InitialQuantity and only ever decreases through order fulfilment
// or a direct correction; it never goes negative.
type Product struct {
	ID              uuid.UUID       `json:"id"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	BatchID         *uuid.UUID      `json:"batch_id,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	InitialQuantity int             `json:"initial_quantity"`
	CurrentQuantity int             `json:"current_quantity"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Order is a customer order. Lines are immutable once the order is created.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	Address        string          `json:"address"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	Total          decimal.Decimal `json:"total"`
	Lines          []*OrderLine    `json:"lines"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderLine is a single line item within an order.
type OrderLine struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// Expense is a recorded business cost. Creating, editing, or deleting an
// expense mutates the capital ledger by a signed delta.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	ExpenseType string          `json:"expense_type"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CapitalSnapshot is one entry in the append-only capital sequence. The
// current balance is the most recent snapshot's Amount. The balance may go
// negative; over-spending is surfaced, not blocked.
type CapitalSnapshot struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// StockPurchaseRequest is the payload for registering new stock.
type StockPurchaseRequest struct {
	BatchID      string          `json:"batch_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
}

// OrderLineRequest is one requested line of a new order.
type OrderLineRequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// PlaceOrderRequest is the payload for placing a multi-item order.
type PlaceOrderRequest struct {
	Address        string             `json:"address"`
	ShippingCharge decimal.Decimal    `json:"shipping_charge"`
	Lines          []OrderLineRequest `json:"lines"`
}

// ExpenseRequest is the payload for recording or editing an expense.
type ExpenseRequest struct {
	ExpenseType string          `json:"expense_type"`
	Amount      decimal.Decimal `json:"amount"`
}
