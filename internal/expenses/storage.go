package expenses

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when an expense with the given ID is not found.
var ErrNotFound = errors.New("expense not found")

// ErrEmptyID is returned when trying to store an expense with an empty ID.
var ErrEmptyID = errors.New("empty expense ID")

// Storage is the persistence contract for expenses.
type Storage interface {
	Create(ctx context.Context, expense *Expense) error
	Read(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context, filter Filter) ([]*Expense, error)
}

// LocalStorage keeps expenses in memory.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]*Expense
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Expense{},
	}
}

func (l *LocalStorage) Create(_ context.Context, expense *Expense) error {
	if expense.ID == "" {
		return ErrEmptyID
	}
	if err := expense.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *expense
	l.m[expense.ID] = &cp
	return nil
}

func (l *LocalStorage) Read(_ context.Context, id string) (*Expense, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (l *LocalStorage) Update(_ context.Context, expense *Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.m[expense.ID]
	if !ok {
		return ErrNotFound
	}
	cp := *expense
	cp.CreatedAt = current.CreatedAt
	l.m[expense.ID] = &cp
	return nil
}

func (l *LocalStorage) Delete(_ context.Context, id string) (*Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(l.m, id)
	return e, nil
}

// List returns the expenses matching the filter, newest first.
func (l *LocalStorage) List(_ context.Context, filter Filter) ([]*Expense, error) {
	l.mu.RLock()
	out := make([]*Expense, 0, len(l.m))
	for _, e := range l.m {
		if !filter.Match(e) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
