package core

// DefaultBudget applies until the user sets a budget of their own.
var DefaultBudget = Money{Cents: 100_000} // 1000.00

// BudgetStatus compares month spending against the configured ceiling.
// Remaining may be negative: over budget is a displayable state, not
// an error.
type BudgetStatus struct {
	Budget      Money
	Spent       Money
	Remaining   Money
	Utilization float64 // fraction of budget consumed; 0 when budget is unset
}

// EvaluateBudget derives the remaining amount and utilization ratio.
func EvaluateBudget(spent, budget Money) BudgetStatus {
	st := BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: Money{Cents: budget.Cents - spent.Cents},
	}
	if budget.Cents > 0 {
		st.Utilization = float64(spent.Cents) / float64(budget.Cents)
	}
	return st
}

// ParseBudget validates a proposed budget value. Zero, negative and
// non-numeric values are rejected with ErrInvalidBudget so the caller
// can surface a validation failure without touching the stored value.
func ParseBudget(s string) (Money, error) {
	cents, err := ParseDecimalToCents(s)
	if err != nil {
		return Money{}, ErrInvalidBudget
	}
	return Money{Cents: cents}, nil
}
