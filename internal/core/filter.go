package core

import "time"

// MonthOf returns the subset of expenses dated in the same calendar
// month and year as ref, evaluated in ref's location. This is a
// calendar window, not a rolling 30 days. Expenses with a zero date
// are excluded rather than treated as an error, and input order is
// preserved.
func MonthOf(expenses []Expense, ref time.Time) []Expense {
	year, month, _ := ref.Date()
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		y, m, _ := e.Date.In(ref.Location()).Date()
		if y == year && m == month {
			out = append(out, e)
		}
	}
	return out
}
