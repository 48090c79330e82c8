package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine is a sold line enriched with the product's buying price at
// report time.
type SaleLine struct {
	Quantity     int
	SellingPrice decimal.Decimal
	BuyingPrice  decimal.Decimal
}

// OrderSales carries the figures of a single order needed for reporting.
type OrderSales struct {
	CreatedAt      time.Time
	ShippingCharge decimal.Decimal
	Lines          []SaleLine
}

// Summary holds the aggregated figures for one period.
type Summary struct {
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
	Orders  int             `json:"orders"`
}

// Overview is the full report response: rolling week, calendar month and
// calendar year.
type Overview struct {
	Weekly  Summary `json:"weekly"`
	Monthly Summary `json:"monthly"`
	Yearly  Summary `json:"yearly"`
}
