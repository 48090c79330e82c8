package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casastock/casastock-backend/internal/apperr"
)

func newTestEngine(t *testing.T) (*Engine, *MemStore, uuid.UUID, uuid.UUID) {
	t.Helper()
	store := NewMemStore()
	owner := uuid.New()
	batch := uuid.New()
	store.SeedBatch(owner, batch)
	return NewEngine(store), store, owner, batch
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireBalance(t *testing.T, store *MemStore, owner uuid.UUID, want string) {
	t.Helper()
	got, ok := store.Balance(owner)
	require.True(t, ok, "expected a capital snapshot")
	require.True(t, got.Equal(dec(want)), "balance = %s, want %s", got, want)
}

func addStock(t *testing.T, e *Engine, owner, batch uuid.UUID, name string, buying, selling string, qty int) *Product {
	t.Helper()
	p, err := e.RecordStockPurchase(context.Background(), owner, StockPurchaseRequest{
		BatchID:      batch.String(),
		Name:         name,
		BuyingPrice:  dec(buying),
		SellingPrice: dec(selling),
		Quantity:     qty,
	})
	require.NoError(t, err)
	return p
}

func TestAdjustCapital(t *testing.T) {
	e, store, owner, _ := newTestEngine(t)
	ctx := context.Background()

	_, ok := store.Balance(owner)
	require.False(t, ok)

	snap, err := e.AdjustCapital(ctx, owner, dec("1000"))
	require.NoError(t, err)
	require.True(t, snap.Amount.Equal(dec("1000")))
	requireBalance(t, store, owner, "1000")

	// Negative adjustments are withdrawals; no floor is enforced.
	snap, err = e.AdjustCapital(ctx, owner, dec("-1250.50"))
	require.NoError(t, err)
	require.True(t, snap.Amount.Equal(dec("-250.50")))
	requireBalance(t, store, owner, "-250.50")
}

func TestRecordStockPurchase(t *testing.T) {
	e, store, owner, batch := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("1000"))
	require.NoError(t, err)

	p := addStock(t, e, owner, batch, "Candle", "40", "95", 5)
	require.Equal(t, 5, p.InitialQuantity)
	require.Equal(t, 5, p.CurrentQuantity)
	requireBalance(t, store, owner, "800")

	stored := store.Product(owner, p.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Candle", stored.Name)
	assert.Equal(t, 5, stored.CurrentQuantity)
}

func TestRecordStockPurchaseBlockedWithoutCapital(t *testing.T) {
	e, store, owner, batch := newTestEngine(t)

	p, err := e.RecordStockPurchase(context.Background(), owner, StockPurchaseRequest{
		BatchID:      batch.String(),
		Name:         "Candle",
		BuyingPrice:  dec("40"),
		SellingPrice: dec("95"),
		Quantity:     5,
	})
	require.Nil(t, p)

	var pe *apperr.PreconditionError
	require.ErrorAs(t, err, &pe)

	// Rejected entirely: no product row, no capital row.
	_, ok := store.Balance(owner)
	assert.False(t, ok)
}

func TestRecordStockPurchaseValidation(t *testing.T) {
	e, _, owner, batch := newTestEngine(t)
	ctx := context.Background()
	_, err := e.AdjustCapital(ctx, owner, dec("1000"))
	require.NoError(t, err)

	tests := []struct {
		name string
		req  StockPurchaseRequest
	}{
		{"empty name", StockPurchaseRequest{BatchID: batch.String(), BuyingPrice: dec("1"), SellingPrice: dec("2"), Quantity: 1}},
		{"missing batch", StockPurchaseRequest{Name: "x", BuyingPrice: dec("1"), SellingPrice: dec("2"), Quantity: 1}},
		{"malformed batch id", StockPurchaseRequest{BatchID: "nope", Name: "x", BuyingPrice: dec("1"), SellingPrice: dec("2"), Quantity: 1}},
		{"negative buying price", StockPurchaseRequest{BatchID: batch.String(), Name: "x", BuyingPrice: dec("-1"), SellingPrice: dec("2"), Quantity: 1}},
		{"negative selling price", StockPurchaseRequest{BatchID: batch.String(), Name: "x", BuyingPrice: dec("1"), SellingPrice: dec("-2"), Quantity: 1}},
		{"negative quantity", StockPurchaseRequest{BatchID: batch.String(), Name: "x", BuyingPrice: dec("1"), SellingPrice: dec("2"), Quantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.RecordStockPurchase(ctx, owner, tt.req)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}

	t.Run("unknown batch", func(t *testing.T) {
		_, err := e.RecordStockPurchase(ctx, owner, StockPurchaseRequest{
			BatchID: uuid.NewString(), Name: "x",
			BuyingPrice: dec("1"), SellingPrice: dec("2"), Quantity: 1,
		})
		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestPlaceOrderRevenue(t *testing.T) {
	e, store, owner, batch := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("100"))
	require.NoError(t, err)
	p := addStock(t, e, owner, batch, "Vase", "0", "100", 10)
	requireBalance(t, store, owner, "100")

	o, err := e.PlaceOrder(ctx, owner, PlaceOrderRequest{
		Address:        "12 Hill Road",
		ShippingCharge: dec("20"),
		Lines: []OrderLineRequest{
			{ProductID: p.ID.String(), Quantity: 2, SellingPrice: dec("100")},
			{ProductID: p.ID.String(), Quantity: 1, SellingPrice: dec("50")},
		},
	})
	require.NoError(t, err)
	require.True(t, o.Total.Equal(dec("270")), "total = %s", o.Total)
	require.Len(t, o.Lines, 2)

	// 2*100 + 1*50 + 20 shipping, added to the 100 opening balance.
	requireBalance(t, store, owner, "370")
	assert.Equal(t, 7, store.Product(owner, p.ID).CurrentQuantity)
}

func TestPlaceOrderAggregatesDemandAcrossLines(t *testing.T) {
	e, store, owner, batch := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("0"))
	require.NoError(t, err)
	p := addStock(t, e, owner, batch, "Mug", "0", "30", 5)

	// Two lines of 3 each pass a per-line check but overdraw in aggregate.
	_, err = e.PlaceOrder(ctx, owner, PlaceOrderRequest{
		Address: "somewhere",
		Lines: []OrderLineRequest{
			{ProductID: p.ID.String(), Quantity: 3, SellingPrice: dec("30")},
			{ProductID: p.ID.String(), Quantity: 3, SellingPrice: dec("30")},
		},
	})
	shortages := apperr.Shortages(err)
	require.Len(t, shortages, 1)
	assert.Equal(t, p.ID, shortages[0].ProductID)
	assert.Equal(t, 6, shortages[0].Requested)
	assert.Equal(t, 5, shortages[0].Available)

	// Fully rejected: stock and capital untouched.
	assert.Equal(t, 5, store.Product(owner, p.ID).CurrentQuantity)
	requireBalance(t, store, owner, "0")
}

func TestPlaceOrderReportsEveryShortage(t *testing.T) {
	e, store, owner, batch := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("0"))
	require.NoError(t, err)
	scarce1 := addStock(t, e, owner, batch, "Plate", "0", "10", 1)
	scarce2 := addStock(t, e, owner, batch, "Bowl", "0", "10", 2)
	plenty := addStock(t, e, owner, batch, "Spoon", "0", "10", 100)

	_, err = e.PlaceOrder(ctx, owner, PlaceOrderRequest{
		Address: "somewhere",
		Lines: []OrderLineRequest{
			{ProductID: scarce1.ID.String(), Quantity: 5, SellingPrice: dec("10")},
			{ProductID: plenty.ID.String(), Quantity: 3, SellingPrice: dec("10")},
			{ProductID: scarce2.ID.String(), Quantity: 4, SellingPrice: dec("10")},
		},
	})
	shortages := apperr.Shortages(err)
	require.Len(t, shortages, 2)
	assert.Equal(t, scarce1.ID, shortages[0].ProductID)
	assert.Equal(t, scarce2.ID, shortages[1].ProductID)

	// No partial decrement, including for the product with enough stock.
	assert.Equal(t, 100, store.Product(owner, plenty.ID).CurrentQuantity)
	assert.Equal(t, 1, store.Product(owner, scarce1.ID).CurrentQuantity)
}

func TestPlaceOrderErrors(t *testing.T) {
	e, _, owner, batch := newTestEngine(t)
	ctx := context.Background()
	_, err := e.AdjustCapital(ctx, owner, dec("100"))
	require.NoError(t, err)
	p := addStock(t, e, owner, batch, "Mug", "0", "30", 5)

	line := func(id string, qty int, price string) []OrderLineRequest {
		return []OrderLineRequest{{ProductID: id, Quantity: qty, SellingPrice: dec(price)}}
	}

	t.Run("empty address", func(t *testing.T) {
		_, err := e.PlaceOrder(ctx, owner, PlaceOrderRequest{Lines: line(p.ID.String(), 1, "30")})
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
	})
	t.Run("no lines", func(t *testing.T) {
		_, err := e.PlaceOrder(ctx, owner, PlaceOrderRequest{Address: "a"})
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
	})
	t.Run("zero quantity", func(t *testing.T) {
		_, err := e.PlaceOrder(ctx, owner, PlaceOrderRequest{Address: "a", Lines: line(p.ID.String(), 0, "30")})
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
	})
	t.Run("negative selling price", func(t *testing.T) {
		_, err := e.PlaceOrder(ctx, owner, PlaceOrderRequest{Address: "a", Lines: line(p.ID.String(), 1, "-30")})
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
	})
	t.Run("negative shipping", func(t *testing.T) {
		_, err := e.PlaceOrder(ctx, owner, PlaceOrderRequest{Address: "a", ShippingCharge: dec("-1"), Lines: line(p.ID.String(), 1, "30")})
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
	})
	t.Run("unknown product", func(t *testing.T) {
		_, err := e.PlaceOrder(ctx, owner, PlaceOrderRequest{Address: "a", Lines: line(uuid.NewString(), 1, "30")})
		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
	t.Run("foreign owner's product", func(t *testing.T) {
		_, err := e.PlaceOrder(ctx, uuid.New(), PlaceOrderRequest{Address: "a", Lines: line(p.ID.String(), 1, "30")})
		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestPlaceOrderRequiresCapital(t *testing.T) {
	e, store, owner, _ := newTestEngine(t)

	// A product that exists without any capital snapshot (e.g. migrated
	// data) still cannot be ordered against.
	p := &Product{ID: uuid.New(), OwnerID: owner, Name: "Mug", InitialQuantity: 5, CurrentQuantity: 5,
		BuyingPrice: dec("0"), SellingPrice: dec("30")}
	store.SeedProduct(owner, p)

	_, err := e.PlaceOrder(context.Background(), owner, PlaceOrderRequest{
		Address: "a",
		Lines:   []OrderLineRequest{{ProductID: p.ID.String(), Quantity: 1, SellingPrice: dec("30")}},
	})
	var pe *apperr.PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 5, store.Product(owner, p.ID).CurrentQuantity)
}

func TestExpenseReversalRestoresCapitalExactly(t *testing.T) {
	e, store, owner, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("500.10"))
	require.NoError(t, err)

	exp, err := e.RecordExpense(ctx, owner, ExpenseRequest{ExpenseType: "rent", Amount: dec("120.01")})
	require.NoError(t, err)
	requireBalance(t, store, owner, "380.09")

	require.NoError(t, e.DeleteExpense(ctx, owner, exp.ID))
	requireBalance(t, store, owner, "500.10")
}

func TestExpenseEditAppliesDelta(t *testing.T) {
	e, store, owner, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("500"))
	require.NoError(t, err)

	exp, err := e.RecordExpense(ctx, owner, ExpenseRequest{ExpenseType: "packaging", Amount: dec("100")})
	require.NoError(t, err)
	requireBalance(t, store, owner, "400")

	// Shrinking the expense restores the difference...
	updated, err := e.UpdateExpense(ctx, owner, exp.ID, ExpenseRequest{ExpenseType: "packaging", Amount: dec("60")})
	require.NoError(t, err)
	require.True(t, updated.Amount.Equal(dec("60")))
	requireBalance(t, store, owner, "440")

	// ...and growing it debits only the increase.
	_, err = e.UpdateExpense(ctx, owner, exp.ID, ExpenseRequest{ExpenseType: "packaging", Amount: dec("90")})
	require.NoError(t, err)
	requireBalance(t, store, owner, "410")
}

func TestExpenseErrors(t *testing.T) {
	e, _, owner, _ := newTestEngine(t)
	ctx := context.Background()

	t.Run("requires capital", func(t *testing.T) {
		_, err := e.RecordExpense(ctx, owner, ExpenseRequest{ExpenseType: "rent", Amount: dec("10")})
		var pe *apperr.PreconditionError
		require.ErrorAs(t, err, &pe)
	})

	_, err := e.AdjustCapital(ctx, owner, dec("100"))
	require.NoError(t, err)

	t.Run("empty type", func(t *testing.T) {
		_, err := e.RecordExpense(ctx, owner, ExpenseRequest{Amount: dec("10")})
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
	})
	t.Run("non-positive amount", func(t *testing.T) {
		_, err := e.RecordExpense(ctx, owner, ExpenseRequest{ExpenseType: "rent", Amount: dec("0")})
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve)
	})
	t.Run("update unknown id", func(t *testing.T) {
		_, err := e.UpdateExpense(ctx, owner, uuid.New(), ExpenseRequest{ExpenseType: "rent", Amount: dec("10")})
		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
	t.Run("delete unknown id", func(t *testing.T) {
		err := e.DeleteExpense(ctx, owner, uuid.New())
		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
	t.Run("expense of another owner invisible", func(t *testing.T) {
		exp, err := e.RecordExpense(ctx, owner, ExpenseRequest{ExpenseType: "rent", Amount: dec("10")})
		require.NoError(t, err)
		err = e.DeleteExpense(ctx, uuid.New(), exp.ID)
		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

// The balance after any operation sequence equals the opening value plus the
// sum of all signed deltas, in call order.
func TestCapitalInvariantAcrossSequence(t *testing.T) {
	e, store, owner, batch := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("1000")) // +1000
	require.NoError(t, err)

	p := addStock(t, e, owner, batch, "Lamp", "20", "50", 10) // -200

	_, err = e.PlaceOrder(ctx, owner, PlaceOrderRequest{ // +160
		Address:        "a",
		ShippingCharge: dec("10"),
		Lines:          []OrderLineRequest{{ProductID: p.ID.String(), Quantity: 3, SellingPrice: dec("50")}},
	})
	require.NoError(t, err)

	exp, err := e.RecordExpense(ctx, owner, ExpenseRequest{ExpenseType: "ads", Amount: dec("75")}) // -75
	require.NoError(t, err)

	_, err = e.UpdateExpense(ctx, owner, exp.ID, ExpenseRequest{ExpenseType: "ads", Amount: dec("50")}) // +25
	require.NoError(t, err)

	_, err = e.AdjustCapital(ctx, owner, dec("-100")) // -100
	require.NoError(t, err)

	requireBalance(t, store, owner, "810")
}

// Two concurrent orders for the same product must serialise: exactly one
// succeeds, stock never goes negative, and neither works from a stale read.
func TestConcurrentOrdersSerialize(t *testing.T) {
	e, store, owner, batch := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AdjustCapital(ctx, owner, dec("0"))
	require.NoError(t, err)
	p := addStock(t, e, owner, batch, "Chair", "0", "10", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.PlaceOrder(ctx, owner, PlaceOrderRequest{
				Address: "a",
				Lines:   []OrderLineRequest{{ProductID: p.ID.String(), Quantity: 6, SellingPrice: dec("10")}},
			})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			require.NotNil(t, apperr.Shortages(err), "unexpected error kind: %v", err)
			failures++
		}
	}
	require.Equal(t, 1, failures, "exactly one of the two orders must fail")
	assert.Equal(t, 4, store.Product(owner, p.ID).CurrentQuantity)
	requireBalance(t, store, owner, "60")
}
