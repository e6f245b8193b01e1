package expenses

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrValidation is returned when an expense is missing required fields or holds invalid values.
var ErrValidation = errors.New("invalid expense")

// Type categorizes an expense.
type Type string

const (
	TypePetrol Type = "petrol"
	TypeOther  Type = "other"
)

// Valid reports whether t is one of the known expense types.
func (t Type) Valid() bool {
	switch t {
	case TypePetrol, TypeOther:
		return true
	}
	return false
}

// Expense is a recorded outgoing cost.
type Expense struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        Type      `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExpenseInput carries the caller supplied fields of an expense. Nil
// pointers mark fields that were not sent.
type ExpenseInput struct {
	Date        *time.Time
	Type        Type
	Amount      *float64
	Description *string
}

// Filter selects expenses by an inclusive date range and an optional type.
type Filter struct {
	Start time.Time
	End   time.Time
	Type  Type
}

// HasRange reports whether both bounds are set.
func (f Filter) HasRange() bool {
	return !f.Start.IsZero() && !f.End.IsZero()
}

// Match reports whether e passes the filter.
func (f Filter) Match(e *Expense) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if !f.HasRange() {
		return true
	}
	return !e.Date.Before(f.Start) && !e.Date.After(f.End)
}

// DefaultDescription is the description given to expenses created without one.
func DefaultDescription(t Type) string {
	return fmt.Sprintf("%s expense", t)
}

// Validate checks the input against the expense rules.
func (in ExpenseInput) Validate() error {
	if in.Type == "" {
		return fmt.Errorf("%w: type is required", ErrValidation)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: type must be one of %q, %q", ErrValidation, TypePetrol, TypeOther)
	}
	if in.Amount == nil {
		return fmt.Errorf("%w: amount is required", ErrValidation)
	}
	if a := *in.Amount; math.IsNaN(a) || math.IsInf(a, 0) || a == 0 {
		return fmt.Errorf("%w: amount must be a non-zero number", ErrValidation)
	}
	return nil
}

// Validate checks a stored expense.
func (e *Expense) Validate() error {
	amount := e.Amount
	if err := (ExpenseInput{Type: e.Type, Amount: &amount}).Validate(); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return nil
}

func (e *Expense) apply(in ExpenseInput) {
	if in.Date != nil {
		e.Date = *in.Date
	}
	e.Type = in.Type
	e.Amount = *in.Amount
	if in.Description != nil {
		e.Description = *in.Description
	}
}
