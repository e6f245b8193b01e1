package sales

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api_ledger/internal/database"
)

func newSQLiteStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStorage(db)
}

func testSale(id string, date time.Time, sheets int, revenue float64) *Sale {
	return &Sale{
		ID:            id,
		Date:          date,
		SheetsSold:    sheets,
		TotalRevenue:  revenue,
		PricePerSheet: ComputePricePerSheet(revenue, sheets),
		CreatedAt:     date,
		UpdatedAt:     date,
	}
}

func TestSQLiteStorage_CRUD(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()
	date := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.Local)

	require.NoError(t, s.Create(ctx, testSale("s1", date, 10, 500)))

	got, err := s.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.SheetsSold)
	assert.Equal(t, 50.0, got.PricePerSheet)
	assert.True(t, got.Date.Equal(date))

	got.SheetsSold = 20
	got.PricePerSheet = ComputePricePerSheet(got.TotalRevenue, got.SheetsSold)
	got.UpdatedAt = date.Add(time.Hour)
	require.NoError(t, s.Update(ctx, got))

	got, err = s.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.PricePerSheet)
	assert.True(t, got.CreatedAt.Equal(date))

	deleted, err := s.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, deleted.SheetsSold)

	_, err = s.Read(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Delete(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStorage_Errors(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()
	now := time.Now()

	assert.ErrorIs(t, s.Create(ctx, testSale("", now, 1, 1)), ErrEmptyID)
	assert.ErrorIs(t, s.Create(ctx, testSale("bad", now, 0, 1)), ErrValidation)
	assert.ErrorIs(t, s.Update(ctx, testSale("missing", now, 1, 1)), ErrNotFound)
}

func TestSQLiteStorage_List(t *testing.T) {
	s := newSQLiteStorage(t)
	ctx := context.Background()
	base := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.Local)

	require.NoError(t, s.Create(ctx, testSale("a", base.AddDate(0, 0, -2), 1, 10)))
	require.NoError(t, s.Create(ctx, testSale("b", base, 2, 20)))
	require.NoError(t, s.Create(ctx, testSale("c", base.AddDate(0, 0, -1), 3, 30)))

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	ranged, err := s.List(ctx, Filter{Start: base.AddDate(0, 0, -1), End: base})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "b", ranged[0].ID)
	assert.Equal(t, "c", ranged[1].ID)

	empty, err := s.List(ctx, Filter{Start: base.AddDate(1, 0, 0), End: base.AddDate(2, 0, 0)})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
