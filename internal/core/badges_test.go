package core

import (
	"testing"
	"time"
)

func badgeByID(t *testing.T, badges []Badge, id string) Badge {
	t.Helper()
	for _, b := range badges {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("badge %q missing from catalog", id)
	return Badge{}
}

func TestEvaluateBadgesCatalogIsComplete(t *testing.T) {
	badges := EvaluateBadges(nil, nil, DefaultBudget)
	if len(badges) != 4 {
		t.Fatalf("expected full 4-badge catalog, got %d", len(badges))
	}
	for _, id := range []string{"budget-hero", "frugal-spender", "on-a-roll", "master-categorizer"} {
		badgeByID(t, badges, id)
	}
}

func TestBudgetHero(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	month := []Expense{expenseOn(day, 99_999)}

	badges := EvaluateBadges(month, month, Money{Cents: 100_000})
	if !badgeByID(t, badges, "budget-hero").Earned {
		t.Fatalf("spend below budget should earn Budget Hero")
	}

	// Strict comparison: spending exactly the budget does not earn it.
	month = []Expense{expenseOn(day, 100_000)}
	badges = EvaluateBadges(month, month, Money{Cents: 100_000})
	if badgeByID(t, badges, "budget-hero").Earned {
		t.Fatalf("spend equal to budget must not earn Budget Hero")
	}
}

func TestFrugalSpender(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	month := make([]Expense, 6)
	for i := range month {
		month[i] = expenseOn(day, 1_000) // 6 expenses, 60.00 total
	}
	badges := EvaluateBadges(month, month, DefaultBudget)
	if !badgeByID(t, badges, "frugal-spender").Earned {
		t.Fatalf("6 small expenses should earn Frugal Spender")
	}

	// Exactly 5 expenses is not enough (count must exceed 5).
	badges = EvaluateBadges(month[:5], month[:5], DefaultBudget)
	if badgeByID(t, badges, "frugal-spender").Earned {
		t.Fatalf("5 expenses must not earn Frugal Spender")
	}

	// More than 5 expenses but spending at the 500.00 cap.
	over := make([]Expense, 6)
	for i := range over {
		over[i] = expenseOn(day, 10_000) // 600.00 total
	}
	badges = EvaluateBadges(over, over, DefaultBudget)
	if badgeByID(t, badges, "frugal-spender").Earned {
		t.Fatalf("spending over the cap must not earn Frugal Spender")
	}
}

func TestOnARollConsecutiveDays(t *testing.T) {
	d := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	history := []Expense{
		expenseOn(d, 100),
		expenseOn(d.AddDate(0, 0, -1), 200),
		expenseOn(d.AddDate(0, 0, -2), 300),
	}
	badges := EvaluateBadges(history, nil, DefaultBudget)
	if !badgeByID(t, badges, "on-a-roll").Earned {
		t.Fatalf("three consecutive days should earn On a Roll")
	}
}

func TestOnARollGapBreaksStreak(t *testing.T) {
	d := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	history := []Expense{
		expenseOn(d, 100),
		expenseOn(d.AddDate(0, 0, -2), 200), // gap of one day
	}
	badges := EvaluateBadges(history, nil, DefaultBudget)
	if badgeByID(t, badges, "on-a-roll").Earned {
		t.Fatalf("a gap must break the streak")
	}
}

func TestOnARollIgnoresOlderRun(t *testing.T) {
	// A 4-day run that ended a week ago does not count: only the run
	// ending at the most recent day is measured.
	d := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	history := []Expense{expenseOn(d, 100)}
	for i := 7; i < 11; i++ {
		history = append(history, expenseOn(d.AddDate(0, 0, -i), 100))
	}
	badges := EvaluateBadges(history, nil, DefaultBudget)
	if badgeByID(t, badges, "on-a-roll").Earned {
		t.Fatalf("an older run must not earn On a Roll")
	}
}

func TestOnARollMultipleExpensesSameDay(t *testing.T) {
	// Several expenses on one day count as a single streak day.
	d := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	history := []Expense{
		expenseOn(d, 100),
		expenseOn(d.Add(2*time.Hour), 150),
		expenseOn(d.AddDate(0, 0, -1), 200),
	}
	badges := EvaluateBadges(history, nil, DefaultBudget)
	if badgeByID(t, badges, "on-a-roll").Earned {
		t.Fatalf("two distinct days must not earn On a Roll")
	}
}

func TestMasterCategorizer(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	month := make([]Expense, 5)
	for i := range month {
		month[i] = expenseOn(day, 100)
		month[i].CategoryID = string(rune('a' + i))
	}
	badges := EvaluateBadges(month, month, DefaultBudget)
	if !badgeByID(t, badges, "master-categorizer").Earned {
		t.Fatalf("5 distinct categories should earn Master Categorizer")
	}

	badges = EvaluateBadges(month[:4], month[:4], DefaultBudget)
	if badgeByID(t, badges, "master-categorizer").Earned {
		t.Fatalf("4 distinct categories must not earn Master Categorizer")
	}
}

func TestEvaluateBadgesIdempotent(t *testing.T) {
	d := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	history := []Expense{
		expenseOn(d, 10_000),
		expenseOn(d.AddDate(0, 0, -1), 5_000),
	}
	first := EvaluateBadges(history, history, DefaultBudget)
	second := EvaluateBadges(history, history, DefaultBudget)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("badge %d differs between evaluations", i)
		}
	}
}

func TestEndToEndDashboardScenario(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	expenses := []Expense{
		{Amount: Money{Cents: 10_000}, CategoryID: "a", Date: day},
		{Amount: Money{Cents: 5_000}, CategoryID: "b", Date: day},
	}
	budget := Money{Cents: 20_000}

	month := MonthOf(expenses, day)
	summary := Summarize(month, nil)
	if summary.Total.Cents != 15_000 {
		t.Fatalf("expected total 15000, got %d", summary.Total.Cents)
	}

	st := EvaluateBudget(summary.Total, budget)
	if st.Remaining.Cents != 5_000 {
		t.Fatalf("expected remaining 5000, got %d", st.Remaining.Cents)
	}

	badges := EvaluateBadges(expenses, month, budget)
	if !badgeByID(t, badges, "budget-hero").Earned {
		t.Fatalf("Budget Hero should be earned")
	}
	if badgeByID(t, badges, "frugal-spender").Earned {
		t.Fatalf("Frugal Spender must not be earned with 2 expenses")
	}
}
