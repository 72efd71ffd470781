package core

import "sort"

// Uncategorized is the display label for an expense whose category
// reference does not resolve. A dangling CategoryID is a valid state,
// never an error.
const Uncategorized = "Uncategorized"

// CategoryAmount is one row of the spending breakdown.
type CategoryAmount struct {
	CategoryID string
	Name       string
	Amount     Money
}

// MonthSummary aggregates an expense subset: grand total plus the
// per-category breakdown sorted by amount descending. Ties keep the
// order of first appearance in the input.
type MonthSummary struct {
	Total      Money
	ByCategory []CategoryAmount
}

// Summarize aggregates expenses per category and resolves category
// names against the given category list. Unresolved references map to
// the Uncategorized label but remain distinct rows per CategoryID.
// Empty input yields a zero total and an empty breakdown.
func Summarize(expenses []Expense, categories []Category) MonthSummary {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var s MonthSummary
	index := make(map[string]int)
	for _, e := range expenses {
		s.Total.Cents += e.Amount.Cents

		i, ok := index[e.CategoryID]
		if !ok {
			name, found := names[e.CategoryID]
			if !found {
				name = Uncategorized
			}
			i = len(s.ByCategory)
			index[e.CategoryID] = i
			s.ByCategory = append(s.ByCategory, CategoryAmount{
				CategoryID: e.CategoryID,
				Name:       name,
			})
		}
		s.ByCategory[i].Amount.Cents += e.Amount.Cents
	}

	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Amount.Cents > s.ByCategory[j].Amount.Cents
	})
	return s
}
