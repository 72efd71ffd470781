package core

import "sort"

// SortKey selects the expense field the table view orders by.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByAmount   SortKey = "amount"
	SortByNotes    SortKey = "notes"
	SortByCategory SortKey = "category"
)

// ParseSortKey maps a query-string value to a SortKey.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByDate, SortByAmount, SortByNotes, SortByCategory:
		return SortKey(s), true
	}
	return "", false
}

// SortExpenses returns a new slice ordered by the natural ordering of
// the chosen field: numeric for amount, chronological for date,
// lexicographic for notes and category id. The comparator is naive:
// rows with equal keys do not keep their relative input order.
func SortExpenses(expenses []Expense, key SortKey, desc bool) []Expense {
	out := append([]Expense(nil), expenses...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if desc {
			a, b = b, a
		}
		switch key {
		case SortByAmount:
			return a.Amount.Cents < b.Amount.Cents
		case SortByNotes:
			return a.Notes < b.Notes
		case SortByCategory:
			return a.CategoryID < b.CategoryID
		default:
			return a.Date.Before(b.Date)
		}
	})
	return out
}

// SortState tracks the table-header toggle: requesting the key already
// in effect flips the direction, requesting a different key resets to
// ascending.
type SortState struct {
	Key  SortKey
	Desc bool
}

// Request applies one header click to the state.
func (s *SortState) Request(key SortKey) {
	if s.Key == key {
		s.Desc = !s.Desc
		return
	}
	s.Key = key
	s.Desc = false
}
