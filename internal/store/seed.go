package store

import (
	"time"

	"galaxy/internal/core"
)

// DefaultCategories returns the starter category set.
func DefaultCategories() []core.Category {
	return []core.Category{
		{ID: "cat-1", Name: "Food & Drink", Icon: "UtensilsCrossed"},
		{ID: "cat-2", Name: "Travel", Icon: "PlaneTakeoff"},
		{ID: "cat-3", Name: "Housing", Icon: "Home"},
		{ID: "cat-4", Name: "Bills & Utilities", Icon: "Lightbulb"},
		{ID: "cat-5", Name: "Shopping", Icon: "ShoppingCart"},
		{ID: "cat-6", Name: "Entertainment", Icon: "Ticket"},
		{ID: "cat-7", Name: "Health & Wellness", Icon: "HeartPulse"},
		{ID: "cat-8", Name: "Groceries", Icon: "Carrot"},
		{ID: "cat-9", Name: "Transportation", Icon: "Car"},
		{ID: "cat-10", Name: "Other", Icon: "Tag"},
	}
}

// SeedExpenses returns demo expenses anchored to now, spread over the
// last few days plus one in the previous month so the dashboard has
// something to show on first run.
func SeedExpenses(now time.Time) []core.Expense {
	yesterday := now.AddDate(0, 0, -1)
	twoDaysAgo := now.AddDate(0, 0, -2)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location())
	lastMonth := now.AddDate(0, -1, 0)

	return []core.Expense{
		{ID: "exp-1", Amount: core.Money{Cents: 1250}, CategoryID: "cat-1", Date: now, Notes: "Lunch with colleagues"},
		{ID: "exp-2", Amount: core.Money{Cents: 25000}, CategoryID: "cat-2", Date: yesterday, Notes: "Flight ticket for vacation"},
		{ID: "exp-3", Amount: core.Money{Cents: 120000}, CategoryID: "cat-3", Date: firstOfMonth, Notes: "Monthly rent"},
		{ID: "exp-4", Amount: core.Money{Cents: 7580}, CategoryID: "cat-4", Date: twoDaysAgo, Notes: "Electricity bill"},
		{ID: "exp-5", Amount: core.Money{Cents: 5500}, CategoryID: "cat-5", Date: now, Notes: "New shirt"},
		{ID: "exp-6", Amount: core.Money{Cents: 2200}, CategoryID: "cat-6", Date: yesterday, Notes: "Movie ticket"},
		{ID: "exp-7", Amount: core.Money{Cents: 899}, CategoryID: "cat-1", Date: yesterday, Notes: "Morning coffee"},
		{ID: "exp-8", Amount: core.Money{Cents: 30000}, CategoryID: "cat-5", Date: lastMonth, Notes: "New headphones"},
		{ID: "exp-9", Amount: core.Money{Cents: 4530}, CategoryID: "cat-8", Date: twoDaysAgo, Notes: "Weekly groceries"},
		{ID: "exp-10", Amount: core.Money{Cents: 2500}, CategoryID: "cat-9", Date: yesterday, Notes: "Gasoline top-up"},
	}
}
