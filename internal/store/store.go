// Package store holds the in-memory expense and category collections.
// It owns identity assignment and nothing else: all derived state is
// computed by internal/core on snapshots taken from here.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"galaxy/internal/core"
)

var ErrExpenseNotFound = errors.New("expense not found")

// Store is the mutable record store. The original interaction model is
// single-threaded; mutations here arrive from HTTP handlers, so a
// mutex serializes them instead.
type Store struct {
	mu         sync.RWMutex
	expenses   []core.Expense
	categories []core.Category
	budget     core.Money
}

// New creates a store pre-populated with the given snapshot. A zero
// budget falls back to the default.
func New(expenses []core.Expense, categories []core.Category, budget core.Money) *Store {
	if budget.Cents <= 0 {
		budget = core.DefaultBudget
	}
	return &Store{
		expenses:   append([]core.Expense(nil), expenses...),
		categories: append([]core.Category(nil), categories...),
		budget:     budget,
	}
}

// AddExpense validates the expense, assigns its ID and prepends it to
// the collection (newest first, matching insertion order semantics of
// the dashboard).
func (s *Store) AddExpense(e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]core.Expense{e}, s.expenses...)
	return e, nil
}

// DeleteExpense removes the expense permanently and returns it. No
// tombstone is kept.
func (s *Store) DeleteExpense(id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return e, nil
		}
	}
	return core.Expense{}, ErrExpenseNotFound
}

// AddCategory validates the category, assigns its ID and appends it.
func (s *Store) AddCategory(c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	c.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
	return c, nil
}

// Expenses returns a copy of the current expense collection.
func (s *Store) Expenses() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Expense(nil), s.expenses...)
}

// Categories returns a copy of the current category collection.
func (s *Store) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.categories...)
}

// Category looks up a category by id. The ok result is the explicit
// "not found" signal callers render as Uncategorized.
func (s *Store) Category(id string) (core.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

// Budget returns the current budget ceiling.
func (s *Store) Budget() core.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budget
}

// SetBudget replaces the budget. Invalid values are rejected and the
// prior value stays in effect.
func (s *Store) SetBudget(m core.Money) error {
	if m.Cents <= 0 {
		return core.ErrInvalidBudget
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = m
	return nil
}
