package sales

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrEmptyID is returned when trying to store a sale with an empty ID.
var ErrEmptyID = errors.New("empty sale ID")

// Storage is the main interface for our sales storage layer.
type Storage interface {
	Create(ctx context.Context, sale *Sale) error
	Read(ctx context.Context, id string) (*Sale, error)
	Update(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, filter Filter) ([]*Sale, error)
}

// LocalStorage provides an in-memory implementation for storing sales.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]*Sale
}

// NewLocalStorage instantiates a new LocalStorage for sales with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Sale{},
	}
}

// Create stores a new sale.
// Returns ErrEmptyID if the sale has an empty ID.
func (l *LocalStorage) Create(_ context.Context, sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	if err := sale.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *sale
	l.m[sale.ID] = &cp
	return nil
}

// Read retrieves a sale from the local storage by ID.
// Returns ErrNotFound if the sale is not found.
func (l *LocalStorage) Read(_ context.Context, id string) (*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// Update replaces the mutable fields of an existing sale.
func (l *LocalStorage) Update(_ context.Context, sale *Sale) error {
	if err := sale.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.m[sale.ID]
	if !ok {
		return ErrNotFound
	}
	cp := *sale
	cp.CreatedAt = current.CreatedAt
	l.m[sale.ID] = &cp
	return nil
}

// Delete removes a sale and returns the removed record.
func (l *LocalStorage) Delete(_ context.Context, id string) (*Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(l.m, id)
	return s, nil
}

// List returns the sales matching the filter, newest first.
func (l *LocalStorage) List(_ context.Context, filter Filter) ([]*Sale, error) {
	l.mu.RLock()
	sales := make([]*Sale, 0, len(l.m))
	for _, s := range l.m {
		if !filter.Match(s.Date) {
			continue
		}
		cp := *s
		sales = append(sales, &cp)
	}
	l.mu.RUnlock()

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Date.After(sales[j].Date)
	})
	return sales, nil
}
