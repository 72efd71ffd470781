package core

import (
	"errors"
	"strings"
	"time"
)

// MaxNotesLen bounds the free-text notes attached to an expense.
const MaxNotesLen = 100

type (
	// Money is an amount held in integer cents. Calculations stay in
	// cents; conversion to a decimal happens only at display or wire
	// boundaries.
	Money struct {
		Cents int64
	}

	// Expense is a single recorded spend. Expenses are immutable once
	// created: there is no edit operation, only deletion.
	Expense struct {
		ID         string
		Amount     Money
		CategoryID string // may reference a category that no longer resolves
		Date       time.Time
		Notes      string
	}

	// Category is a user-defined spending category. Categories are never
	// renamed or deleted once created.
	Category struct {
		ID   string
		Name string
		Icon string // symbolic icon name, resolved by the presentation layer
	}

	// Badge is a gamification flag. Earned is derived fresh on every
	// evaluation and never persisted.
	Badge struct {
		ID          string
		Name        string
		Description string
		Icon        string
		Earned      bool
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrNotesTooLong    = errors.New("notes too long (max 100 characters)")
	ErrEmptyCategoryID = errors.New("empty category id")
	ErrEmptyName       = errors.New("empty category name")
	ErrInvalidBudget   = errors.New("invalid budget")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrEmptyCategoryID
	}
	if len(e.Notes) > MaxNotesLen {
		return ErrNotesTooLong
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Day returns the calendar day the expense falls on with the
// time-of-day stripped, for day-granularity streak detection.
func (e Expense) Day() time.Time {
	y, m, d := e.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
