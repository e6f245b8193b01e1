package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides high-level sales management operations on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new Service.
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

// CreateSale validates the input, derives the price per sheet and stores a new sale.
func (s *Service) CreateSale(ctx context.Context, in SaleInput) (*Sale, error) {
	if err := in.Validate(); err != nil {
		s.logger.Warn("rejected sale", zap.Error(err))
		return nil, err
	}

	now := s.now()
	sale := &Sale{
		ID:        uuid.NewString(),
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sale.apply(in)

	if err := s.storage.Create(ctx, sale); err != nil {
		s.logger.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	s.logger.Info("sale created", zap.String("sale_id", sale.ID), zap.Any("sale", sale))
	return sale, nil
}

// UpdateSale replaces the fields of an existing sale. The date is kept when
// the input does not carry one.
func (s *Service) UpdateSale(ctx context.Context, id string, in SaleInput) (*Sale, error) {
	if err := in.Validate(); err != nil {
		s.logger.Warn("rejected sale update", zap.String("sale_id", id), zap.Error(err))
		return nil, err
	}

	sale, err := s.storage.Read(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to read sale", id, err)
	}

	sale.apply(in)
	sale.UpdatedAt = s.now()

	if err := s.storage.Update(ctx, sale); err != nil {
		return nil, s.storeError("failed to update sale", id, err)
	}

	s.logger.Info("sale updated", zap.String("sale_id", id), zap.Any("sale", sale))
	return sale, nil
}

// DeleteSale removes a sale and returns its last state.
func (s *Service) DeleteSale(ctx context.Context, id string) (*Sale, error) {
	sale, err := s.storage.Delete(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to delete sale", id, err)
	}

	s.logger.Info("sale deleted", zap.String("sale_id", id))
	return sale, nil
}

// ListSales returns the sales matching the filter, newest first.
func (s *Service) ListSales(ctx context.Context, filter Filter) ([]*Sale, error) {
	sales, err := s.storage.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list sales", zap.Error(err))
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (s *Service) storeError(msg, id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		s.logger.Warn("sale not found", zap.String("sale_id", id))
		return ErrNotFound
	}
	s.logger.Error(msg, zap.String("sale_id", id), zap.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}
