// Package services orchestrates the record store, the snapshot
// repository and the text-generation collaborators behind the HTTP
// layer.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"galaxy/internal/ai"
	"galaxy/internal/core"
	"galaxy/internal/store"
)

// NoInsightsDataMessage is returned without calling the collaborator
// when the current month has no expenses.
const NoInsightsDataMessage = "Not enough data for this month to generate insights. Please add more expenses."

// InsightsErrorMessage is the user-facing, retryable failure text for
// insight generation.
const InsightsErrorMessage = "An unexpected error occurred while generating insights. Please try again later."

// Persister is the durable side of the tracker. Implemented by
// storage.Repository; nil when running on the memory backend.
type Persister interface {
	SaveExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	SaveCategory(ctx context.Context, c core.Category) error
	SetBudget(ctx context.Context, m core.Money) error
}

// DashboardData is the derived dashboard state, recomputed from the
// source collections on every call. Nothing here is cached or stored.
type DashboardData struct {
	Summary core.MonthSummary
	Budget  core.BudgetStatus
	Badges  []core.Badge
}

// Tracker coordinates mutations and derivations. Persistence is
// local-first: the in-memory store is updated immediately and a
// write-through failure is logged, not surfaced.
type Tracker struct {
	store   *store.Store
	repo    Persister
	ai      ai.Client
	suggest *SuggestTracker
}

func NewTracker(st *store.Store, repo Persister, client ai.Client, suggestDebounce time.Duration) *Tracker {
	return &Tracker{
		store:   st,
		repo:    repo,
		ai:      client,
		suggest: NewSuggestTracker(suggestDebounce),
	}
}

// AddExpense validates and records a new expense.
func (t *Tracker) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	saved, err := t.store.AddExpense(e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	if t.repo != nil {
		if err := t.repo.SaveExpense(ctx, saved); err != nil {
			slog.ErrorContext(ctx, "Failed to persist expense",
				"id", saved.ID, "amount_cents", saved.Amount.Cents, "error", err)
		}
	}
	return saved, nil
}

// DeleteExpense removes an expense permanently and returns the removed
// record so callers can invalidate derived state for its month.
func (t *Tracker) DeleteExpense(ctx context.Context, id string) (core.Expense, error) {
	removed, err := t.store.DeleteExpense(id)
	if err != nil {
		return core.Expense{}, err
	}
	if t.repo != nil {
		if err := t.repo.DeleteExpense(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to delete persisted expense", "id", id, "error", err)
		}
	}
	return removed, nil
}

// AddCategory records a new user-defined category.
func (t *Tracker) AddCategory(ctx context.Context, c core.Category) (core.Category, error) {
	saved, err := t.store.AddCategory(c)
	if err != nil {
		return core.Category{}, fmt.Errorf("add category: %w", err)
	}
	if t.repo != nil {
		if err := t.repo.SaveCategory(ctx, saved); err != nil {
			slog.ErrorContext(ctx, "Failed to persist category", "id", saved.ID, "error", err)
		}
	}
	return saved, nil
}

// Categories returns the current category list.
func (t *Tracker) Categories() []core.Category {
	return t.store.Categories()
}

// SetBudget validates and applies a new budget ceiling. Invalid input
// leaves the prior value in place.
func (t *Tracker) SetBudget(ctx context.Context, raw string) (core.Money, error) {
	m, err := core.ParseBudget(raw)
	if err != nil {
		return core.Money{}, err
	}
	if err := t.store.SetBudget(m); err != nil {
		return core.Money{}, err
	}
	if t.repo != nil {
		if err := t.repo.SetBudget(ctx, m); err != nil {
			slog.ErrorContext(ctx, "Failed to persist budget", "cents", m.Cents, "error", err)
		}
	}
	return m, nil
}

// Budget returns the current budget ceiling.
func (t *Tracker) Budget() core.Money {
	return t.store.Budget()
}

// Dashboard derives the month summary, budget status and badge
// catalog for the reference instant.
func (t *Tracker) Dashboard(now time.Time) DashboardData {
	expenses := t.store.Expenses()
	month := core.MonthOf(expenses, now)
	summary := core.Summarize(month, t.store.Categories())
	budget := t.store.Budget()

	return DashboardData{
		Summary: summary,
		Budget:  core.EvaluateBudget(summary.Total, budget),
		Badges:  core.EvaluateBadges(expenses, month, budget),
	}
}

// Expenses returns the all-time expense list ordered for the table
// view.
func (t *Tracker) Expenses(key core.SortKey, desc bool) []core.Expense {
	return core.SortExpenses(t.store.Expenses(), key, desc)
}

// Insights generates spending advice for the current month. An empty
// month short-circuits with a fixed message and no collaborator call;
// any failure is a recoverable error the caller renders as retryable
// text.
func (t *Tracker) Insights(ctx context.Context, now time.Time) (string, error) {
	month := core.MonthOf(t.store.Expenses(), now)
	if len(month) == 0 {
		return NoInsightsDataMessage, nil
	}
	if t.ai == nil {
		return "", ai.ErrNotConfigured
	}

	records := make([]ai.ExpenseRecord, len(month))
	for i, e := range month {
		records[i] = ai.ExpenseRecord{
			Category:    e.CategoryID,
			Amount:      e.Amount.Units(),
			Date:        e.Date.Format("2006-01-02"),
			Description: e.Notes,
		}
	}

	resp, err := t.ai.GenerateInsights(ctx, ai.InsightsRequest{MonthlyExpenses: records})
	if err != nil {
		return "", fmt.Errorf("generate insights: %w", err)
	}
	return resp.Insights, nil
}

// SuggestCategory asks the collaborator for the best-fitting category
// for the given notes. The feature is best-effort throughout: short
// notes, a missing client, debounced bursts, stale responses and
// collaborator failures all yield an empty suggestion, never an error.
func (t *Tracker) SuggestCategory(ctx context.Context, notes string) string {
	notes = strings.TrimSpace(notes)
	if len(notes) <= 3 || t.ai == nil {
		return ""
	}

	seq, issue := t.suggest.Issue(time.Now())
	if !issue {
		return ""
	}

	categories := t.store.Categories()
	options := make([]ai.CategoryOption, len(categories))
	for i, c := range categories {
		options[i] = ai.CategoryOption{ID: c.ID, Name: c.Name}
	}

	resp, err := t.ai.SuggestCategory(ctx, ai.SuggestRequest{Notes: notes, Categories: options})
	if err != nil {
		slog.DebugContext(ctx, "Category suggestion failed", "error", err)
		return ""
	}
	if !t.suggest.Apply(seq) {
		// A newer request superseded this one while it was in flight.
		return ""
	}
	if resp.CategoryID == "" {
		return ""
	}
	if _, ok := t.store.Category(resp.CategoryID); !ok {
		// The model must answer with one of the offered ids.
		return ""
	}
	return resp.CategoryID
}
