package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func order(at time.Time, shipping string, lines ...SaleLine) *OrderSales {
	return &OrderSales{CreatedAt: at, ShippingCharge: dec(shipping), Lines: lines}
}

func TestSummarizeRevenueAndProfit(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	orders := []*OrderSales{
		order(now.Add(-time.Hour), "20",
			SaleLine{Quantity: 2, SellingPrice: dec("100"), BuyingPrice: dec("60")},
			SaleLine{Quantity: 1, SellingPrice: dec("50"), BuyingPrice: dec("30")},
		),
	}

	sum := Summarize(orders, now.AddDate(0, 0, -7), now)

	assert.Equal(t, 1, sum.Orders)
	// 2*100 + 1*50 + 20 shipping.
	assert.True(t, sum.Revenue.Equal(dec("270")), "revenue %s", sum.Revenue)
	// revenue minus 2*60 + 1*30 cost of goods.
	assert.True(t, sum.Profit.Equal(dec("120")), "profit %s", sum.Profit)
}

func TestSummarizeBoundsInclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	line := SaleLine{Quantity: 1, SellingPrice: dec("10"), BuyingPrice: dec("4")}

	orders := []*OrderSales{
		order(start, "0", line),                     // exactly on start
		order(end, "0", line),                       // exactly on end
		order(start.Add(-time.Second), "0", line),   // before
		order(end.Add(time.Second), "0", line),      // after
		order(start.AddDate(0, 0, 10), "0", line),   // inside
	}

	sum := Summarize(orders, start, end)

	assert.Equal(t, 3, sum.Orders)
	assert.True(t, sum.Revenue.Equal(dec("30")), "revenue %s", sum.Revenue)
	assert.True(t, sum.Profit.Equal(dec("18")), "profit %s", sum.Profit)
}

func TestSummarizeEmpty(t *testing.T) {
	now := time.Now()
	sum := Summarize(nil, now.AddDate(0, -1, 0), now)
	assert.Equal(t, 0, sum.Orders)
	assert.True(t, sum.Revenue.IsZero())
	assert.True(t, sum.Profit.IsZero())
}

type stubRepo struct {
	orders []*OrderSales
	since  time.Time
}

func (r *stubRepo) OrdersSince(_ context.Context, _ uuid.UUID, since time.Time) ([]*OrderSales, error) {
	r.since = since
	return r.orders, nil
}

func TestOverviewPeriods(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	line := SaleLine{Quantity: 1, SellingPrice: dec("100"), BuyingPrice: dec("40")}

	repo := &stubRepo{orders: []*OrderSales{
		order(now.Add(-time.Hour), "0", line),            // this week
		order(now.AddDate(0, 0, -10), "0", line),         // this month, not this week
		order(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "0", line), // this year only
	}}
	svc := &service{repo: repo, now: func() time.Time { return now }}

	o, err := svc.Overview(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, o.Weekly.Orders)
	assert.Equal(t, 2, o.Monthly.Orders)
	assert.Equal(t, 3, o.Yearly.Orders)
	assert.True(t, o.Yearly.Revenue.Equal(dec("300")))
	assert.True(t, o.Yearly.Profit.Equal(dec("180")))

	// A single fetch from the start of the year covers every period.
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), repo.since)
}
