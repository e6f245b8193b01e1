package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"api_ledger/internal/database"
)

const saleColumns = `id, date, sheets_sold, total_revenue, price_per_sheet, created_at, updated_at`

// SQLiteStorage persists sales in the ledger database.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a sales storage over an opened ledger database.
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Create(ctx context.Context, sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	if err := sale.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sale.ID, database.ToMillis(sale.Date), sale.SheetsSold, sale.TotalRevenue,
		sale.PricePerSheet, database.ToMillis(sale.CreatedAt), database.ToMillis(sale.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Read(ctx context.Context, id string) (*Sale, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)
	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

func (s *SQLiteStorage) Update(ctx context.Context, sale *Sale) error {
	if err := sale.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE sales
		SET date = ?, sheets_sold = ?, total_revenue = ?, price_per_sheet = ?, updated_at = ?
		WHERE id = ?
	`, database.ToMillis(sale.Date), sale.SheetsSold, sale.TotalRevenue, sale.PricePerSheet,
		database.ToMillis(sale.UpdatedAt), sale.ID)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, id string) (*Sale, error) {
	row := s.db.QueryRowContext(ctx, `DELETE FROM sales WHERE id = ? RETURNING `+saleColumns, id)
	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete sale: %w", err)
	}
	return sale, nil
}

func (s *SQLiteStorage) List(ctx context.Context, filter Filter) ([]*Sale, error) {
	var (
		where []string
		args  []any
	)
	if filter.HasRange() {
		where = append(where, "date >= ?", "date <= ?")
		args = append(args, database.ToMillis(filter.Start), database.ToMillis(filter.End))
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]*Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	return sales, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSale(row scanner) (*Sale, error) {
	var (
		sale                       Sale
		date, createdAt, updatedAt int64
	)
	if err := row.Scan(&sale.ID, &date, &sale.SheetsSold, &sale.TotalRevenue,
		&sale.PricePerSheet, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	sale.Date = database.FromMillis(date)
	sale.CreatedAt = database.FromMillis(createdAt)
	sale.UpdatedAt = database.FromMillis(updatedAt)
	return &sale, nil
}
