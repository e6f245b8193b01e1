package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func float(v float64) *float64 { return &v }

func newTestService(t *testing.T) (*Service, *LocalStorage) {
	t.Helper()
	storage := NewLocalStorage()
	return NewService(storage, zaptest.NewLogger(t)), storage
}

func TestNewService(t *testing.T) {
	svc := NewService(NewLocalStorage(), nil)

	require.NotNil(t, svc)
	assert.NotNil(t, svc.storage, "Service storage was not initialized")
	assert.NotNil(t, svc.logger, "Service logger was not initialized")
}

func TestComputePricePerSheet(t *testing.T) {
	assert.Equal(t, 50.0, ComputePricePerSheet(500, 10))
	assert.InDelta(t, 33.333, ComputePricePerSheet(100, 3), 0.001)
	assert.Equal(t, 0.0, ComputePricePerSheet(100, 0))
}

func TestCreateSale(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, SaleInput{SheetsSold: 10, TotalRevenue: float(500)})
	require.NoError(t, err)

	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, 10, sale.SheetsSold)
	assert.Equal(t, 500.0, sale.TotalRevenue)
	assert.InDelta(t, sale.TotalRevenue/float64(sale.SheetsSold), sale.PricePerSheet, 1e-9)
	assert.False(t, sale.Date.IsZero(), "date should default to creation time")
	assert.Equal(t, sale.CreatedAt, sale.Date)

	stored, err := storage.Read(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.PricePerSheet, stored.PricePerSheet)
}

func TestCreateSale_KeepsSuppliedDate(t *testing.T) {
	svc, _ := newTestService(t)
	date := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)

	sale, err := svc.CreateSale(context.Background(), SaleInput{Date: &date, SheetsSold: 4, TotalRevenue: float(100)})
	require.NoError(t, err)
	assert.True(t, sale.Date.Equal(date))
}

func TestCreateSale_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   SaleInput
	}{
		{"zero sheets", SaleInput{SheetsSold: 0, TotalRevenue: float(100)}},
		{"negative sheets", SaleInput{SheetsSold: -2, TotalRevenue: float(100)}},
		{"missing revenue", SaleInput{SheetsSold: 3}},
		{"negative revenue", SaleInput{SheetsSold: 3, TotalRevenue: float(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, storage := newTestService(t)

			sale, err := svc.CreateSale(context.Background(), tt.in)

			assert.Nil(t, sale)
			assert.True(t, errors.Is(err, ErrValidation), "expected ErrValidation, got %v", err)
			all, _ := storage.List(context.Background(), Filter{})
			assert.Empty(t, all, "no sale should be persisted")
		})
	}
}

func TestUpdateSale(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSale(ctx, SaleInput{SheetsSold: 10, TotalRevenue: float(500)})
	require.NoError(t, err)

	updated, err := svc.UpdateSale(ctx, created.ID, SaleInput{SheetsSold: 20, TotalRevenue: float(800)})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 20, updated.SheetsSold)
	assert.Equal(t, 40.0, updated.PricePerSheet, "price per sheet must be recomputed")
	assert.True(t, updated.Date.Equal(created.Date), "date is kept when not supplied")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateSale_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	sale, err := svc.UpdateSale(context.Background(), "missing", SaleInput{SheetsSold: 1, TotalRevenue: float(1)})

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSale_InvalidDoesNotTouchStore(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSale(ctx, SaleInput{SheetsSold: 10, TotalRevenue: float(500)})
	require.NoError(t, err)

	_, err = svc.UpdateSale(ctx, created.ID, SaleInput{SheetsSold: 0, TotalRevenue: float(500)})
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := storage.Read(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.SheetsSold)
}

func TestDeleteSale_Twice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSale(ctx, SaleInput{SheetsSold: 2, TotalRevenue: float(90)})
	require.NoError(t, err)

	deleted, err := svc.DeleteSale(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, created.TotalRevenue, deleted.TotalRevenue)

	_, err = svc.DeleteSale(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSales_FilterAndOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	day := func(d int) *time.Time {
		v := time.Date(2024, time.May, d, 10, 0, 0, 0, time.Local)
		return &v
	}
	for _, d := range []int{3, 1, 5, 2} {
		_, err := svc.CreateSale(ctx, SaleInput{Date: day(d), SheetsSold: d, TotalRevenue: float(float64(d * 100))})
		require.NoError(t, err)
	}

	all, err := svc.ListSales(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date), "sales must be sorted by date descending")
	}

	ranged, err := svc.ListSales(ctx, Filter{Start: *day(2), End: *day(3)})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, 3, ranged[0].SheetsSold)
	assert.Equal(t, 2, ranged[1].SheetsSold)
}
