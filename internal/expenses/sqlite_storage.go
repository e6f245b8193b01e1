package expenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"api_ledger/internal/database"
)

const expenseColumns = `id, date, type, amount, description, created_at, updated_at`

// SQLiteStorage persists expenses in the ledger database.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Create(ctx context.Context, e *Expense) error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, database.ToMillis(e.Date), string(e.Type), e.Amount, e.Description,
		database.ToMillis(e.CreatedAt), database.ToMillis(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Read(ctx context.Context, id string) (*Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (s *SQLiteStorage) Update(ctx context.Context, e *Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET date = ?, type = ?, amount = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, database.ToMillis(e.Date), string(e.Type), e.Amount, e.Description,
		database.ToMillis(e.UpdatedAt), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
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

func (s *SQLiteStorage) Delete(ctx context.Context, id string) (*Expense, error) {
	row := s.db.QueryRowContext(ctx, `DELETE FROM expenses WHERE id = ? RETURNING `+expenseColumns, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}
	return e, nil
}

func (s *SQLiteStorage) List(ctx context.Context, filter Filter) ([]*Expense, error) {
	var (
		where []string
		args  []any
	)
	if filter.HasRange() {
		where = append(where, "date >= ?", "date <= ?")
		args = append(args, database.ToMillis(filter.Start), database.ToMillis(filter.End))
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	out := make([]*Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*Expense, error) {
	var (
		e                          Expense
		typ                        string
		date, createdAt, updatedAt int64
	)
	if err := row.Scan(&e.ID, &date, &typ, &e.Amount, &e.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.Type = Type(typ)
	e.Date = database.FromMillis(date)
	e.CreatedAt = database.FromMillis(createdAt)
	e.UpdatedAt = database.FromMillis(updatedAt)
	return &e, nil
}
