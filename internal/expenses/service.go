package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides expense management operations on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateExpense stores a new expense, filling in the date and description
// when the caller left them out.
func (s *Service) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	if err := in.Validate(); err != nil {
		s.logger.Warn("rejected expense", zap.Error(err))
		return nil, err
	}

	now := s.now()
	expense := &Expense{
		ID:        uuid.NewString(),
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	expense.apply(in)
	if expense.Description == "" {
		expense.Description = DefaultDescription(expense.Type)
	}

	if err := s.storage.Create(ctx, expense); err != nil {
		s.logger.Error("failed to save expense", zap.String("expense_id", expense.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.logger.Info("expense created",
		zap.String("expense_id", expense.ID),
		zap.String("type", string(expense.Type)),
		zap.Float64("amount", expense.Amount),
	)
	return expense, nil
}

// UpdateExpense replaces the fields of an existing expense. Date and
// description keep their stored values when not supplied; no default
// description is applied.
func (s *Service) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*Expense, error) {
	if err := in.Validate(); err != nil {
		s.logger.Warn("rejected expense update", zap.String("expense_id", id), zap.Error(err))
		return nil, err
	}

	expense, err := s.storage.Read(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to read expense", id, err)
	}

	expense.apply(in)
	expense.UpdatedAt = s.now()

	if err := s.storage.Update(ctx, expense); err != nil {
		return nil, s.storeError("failed to update expense", id, err)
	}

	s.logger.Info("expense updated", zap.String("expense_id", id))
	return expense, nil
}

// DeleteExpense removes an expense and returns its last state.
func (s *Service) DeleteExpense(ctx context.Context, id string) (*Expense, error) {
	expense, err := s.storage.Delete(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to delete expense", id, err)
	}

	s.logger.Info("expense deleted", zap.String("expense_id", id))
	return expense, nil
}

// ListExpenses returns the expenses matching the filter, newest first.
func (s *Service) ListExpenses(ctx context.Context, filter Filter) ([]*Expense, error) {
	out, err := s.storage.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", zap.String("type", string(filter.Type)), zap.Error(err))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return out, nil
}

func (s *Service) storeError(msg, id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		s.logger.Warn("expense not found", zap.String("expense_id", id))
		return ErrNotFound
	}
	s.logger.Error(msg, zap.String("expense_id", id), zap.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}
