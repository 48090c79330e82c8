package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casastock/casastock-backend/internal/modules/product"
	"github.com/casastock/casastock-backend/internal/modules/profile"
)

type fakeProfiles struct{ p *profile.Profile }

func (f *fakeProfiles) EnsureProfile(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeProfiles) GetProfile(context.Context, uuid.UUID) (*profile.Profile, error) {
	return f.p, nil
}
func (f *fakeProfiles) UpdateProfile(_ context.Context, p *profile.Profile) (*profile.Profile, error) {
	return p, nil
}

type fakeProducts struct{ list []*product.Product }

func (f *fakeProducts) ListProducts(context.Context, uuid.UUID) ([]*product.Product, error) {
	return f.list, nil
}
func (f *fakeProducts) ListLowStock(context.Context, uuid.UUID, int) ([]*product.Product, error) {
	return nil, nil
}
func (f *fakeProducts) UpdateProduct(context.Context, uuid.UUID, uuid.UUID, product.UpdateProductRequest, *uuid.UUID) (*product.Product, error) {
	return nil, nil
}
func (f *fakeProducts) DeleteProduct(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func testPage(t *testing.T, prof *profile.Profile) *Page {
	t.Helper()
	products := &fakeProducts{list: []*product.Product{
		{
			ID:              uuid.New(),
			Name:            "Ceramic Vase",
			Description:     "Hand painted",
			SellingPrice:    decimal.NewFromInt(450),
			CurrentQuantity: 3,
		},
		{
			ID:              uuid.New(),
			Name:            "Sold Out Lamp",
			SellingPrice:    decimal.NewFromInt(900),
			CurrentQuantity: 0,
		},
	}}
	svc := NewService(&fakeProfiles{p: prof}, products)
	page, err := svc.Page(context.Background(), uuid.New())
	require.NoError(t, err)
	return page
}

func TestPageShowsEverythingWhenAllowed(t *testing.T) {
	page := testPage(t, &profile.Profile{
		BusinessName:           "Casa Decor",
		InstagramURL:           "https://instagram.com/casadecor",
		ShowCatalogPrice:       true,
		ShowCatalogDescription: true,
	})

	assert.Equal(t, "Casa Decor", page.BusinessName)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	require.NotNil(t, first.Price)
	assert.True(t, first.Price.Equal(decimal.NewFromInt(450)))
	require.NotNil(t, first.Description)
	assert.Equal(t, "Hand painted", *first.Description)
	assert.True(t, first.InStock)

	assert.False(t, page.Items[1].InStock)
}

func TestPageHidesPriceAndDescription(t *testing.T) {
	page := testPage(t, &profile.Profile{BusinessName: "Casa Decor"})

	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Nil(t, item.Price)
		assert.Nil(t, item.Description)
	}
}
