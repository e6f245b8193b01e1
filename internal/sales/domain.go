package sales

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrValidation is returned when a sale is missing required fields or holds out of range values.
var ErrValidation = errors.New("invalid sale")

// Sale represents a recorded transaction of sheets sold for revenue.
type Sale struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	SheetsSold    int       `json:"sheetsSold"`
	TotalRevenue  float64   `json:"totalRevenue"`
	PricePerSheet float64   `json:"pricePerSheet"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SaleInput carries the caller supplied fields of a sale. A nil Date means
// "not supplied"; a nil TotalRevenue means the field was missing.
type SaleInput struct {
	Date         *time.Time
	SheetsSold   int
	TotalRevenue *float64
}

// Filter selects sales by an inclusive date range. Zero bounds are ignored.
type Filter struct {
	Start time.Time
	End   time.Time
}

// HasRange reports whether both bounds are set.
func (f Filter) HasRange() bool {
	return !f.Start.IsZero() && !f.End.IsZero()
}

// Match reports whether d falls inside the filter range.
func (f Filter) Match(d time.Time) bool {
	if !f.HasRange() {
		return true
	}
	return !d.Before(f.Start) && !d.After(f.End)
}

// ComputePricePerSheet derives the unit price of a sale.
func ComputePricePerSheet(totalRevenue float64, sheetsSold int) float64 {
	if sheetsSold <= 0 {
		return 0
	}
	return totalRevenue / float64(sheetsSold)
}

// Validate checks the input against the sale rules.
func (in SaleInput) Validate() error {
	if in.SheetsSold < 1 {
		return fmt.Errorf("%w: sheetsSold must be at least 1", ErrValidation)
	}
	if in.TotalRevenue == nil {
		return fmt.Errorf("%w: totalRevenue is required", ErrValidation)
	}
	if r := *in.TotalRevenue; math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("%w: totalRevenue must be a non-negative number", ErrValidation)
	}
	return nil
}

// Validate checks a stored sale, including its derived price.
func (s *Sale) Validate() error {
	revenue := s.TotalRevenue
	if err := (SaleInput{SheetsSold: s.SheetsSold, TotalRevenue: &revenue}).Validate(); err != nil {
		return err
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return nil
}

// apply copies the input onto the sale and recomputes the derived fields.
func (s *Sale) apply(in SaleInput) {
	if in.Date != nil {
		s.Date = *in.Date
	}
	s.SheetsSold = in.SheetsSold
	s.TotalRevenue = *in.TotalRevenue
	s.PricePerSheet = ComputePricePerSheet(s.TotalRevenue, s.SheetsSold)
}
