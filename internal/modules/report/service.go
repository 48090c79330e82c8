package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service computes revenue and profit summaries.
type Service interface {
	Overview(ctx context.Context, owner uuid.UUID) (*Overview, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new report service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Overview(ctx context.Context, owner uuid.UUID) (*Overview, error) {
	now := s.now()
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	// The year start is the earliest of the three periods, so a single
	// fetch covers all of them.
	since := yearStart
	if weekStart.Before(since) {
		since = weekStart
	}
	orders, err := s.repo.OrdersSince(ctx, owner, since)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Weekly:  Summarize(orders, weekStart, now),
		Monthly: Summarize(orders, monthStart, now),
		Yearly:  Summarize(orders, yearStart, now),
	}, nil
}

// Summarize aggregates revenue and profit over the orders created in
// [start, end], both bounds inclusive.
func Summarize(orders []*OrderSales, start, end time.Time) Summary {
	sum := Summary{Revenue: decimal.Zero, Profit: decimal.Zero}
	for _, o := range orders {
		if o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		revenue := o.ShippingCharge
		cost := decimal.Zero
		for _, l := range o.Lines {
			qty := decimal.NewFromInt(int64(l.Quantity))
			revenue = revenue.Add(l.SellingPrice.Mul(qty))
			cost = cost.Add(l.BuyingPrice.Mul(qty))
		}
		sum.Revenue = sum.Revenue.Add(revenue)
		sum.Profit = sum.Profit.Add(revenue.Sub(cost))
		sum.Orders++
	}
	return sum
}
