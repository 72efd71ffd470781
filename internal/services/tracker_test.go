package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"galaxy/internal/ai"
	"galaxy/internal/core"
	"galaxy/internal/store"
)

// fakeAI scripts collaborator behavior per test.
type fakeAI struct {
	insights    string
	insightsErr error
	suggestID   string
	suggestErr  error

	insightsCalls int
	suggestCalls  int
	lastSuggest   ai.SuggestRequest
	lastInsights  ai.InsightsRequest
}

func (f *fakeAI) GenerateInsights(_ context.Context, req ai.InsightsRequest) (ai.InsightsResponse, error) {
	f.insightsCalls++
	f.lastInsights = req
	if f.insightsErr != nil {
		return ai.InsightsResponse{}, f.insightsErr
	}
	return ai.InsightsResponse{Insights: f.insights}, nil
}

func (f *fakeAI) SuggestCategory(_ context.Context, req ai.SuggestRequest) (ai.SuggestResponse, error) {
	f.suggestCalls++
	f.lastSuggest = req
	if f.suggestErr != nil {
		return ai.SuggestResponse{}, f.suggestErr
	}
	return ai.SuggestResponse{CategoryID: f.suggestID}, nil
}

// failingPersister always errors, to prove persistence is best-effort.
type failingPersister struct{}

func (failingPersister) SaveExpense(context.Context, core.Expense) error    { return errors.New("disk gone") }
func (failingPersister) DeleteExpense(context.Context, string) error        { return errors.New("disk gone") }
func (failingPersister) SaveCategory(context.Context, core.Category) error  { return errors.New("disk gone") }
func (failingPersister) SetBudget(context.Context, core.Money) error        { return errors.New("disk gone") }

func newTestTracker(client ai.Client) (*Tracker, *store.Store) {
	st := store.New(nil, store.DefaultCategories(), core.Money{})
	return NewTracker(st, nil, client, 0), st
}

func TestAddExpenseSurvivesPersistFailure(t *testing.T) {
	st := store.New(nil, store.DefaultCategories(), core.Money{})
	tr := NewTracker(st, failingPersister{}, nil, 0)

	e, err := tr.AddExpense(context.Background(), core.Expense{
		Amount:     core.Money{Cents: 1000},
		CategoryID: "cat-1",
		Date:       time.Now(),
	})
	if err != nil {
		t.Fatalf("persist failure must not fail the mutation: %v", err)
	}
	if len(st.Expenses()) != 1 || st.Expenses()[0].ID != e.ID {
		t.Fatalf("expense missing from store")
	}
}

func TestSetBudgetRejectsInvalid(t *testing.T) {
	tr, st := newTestTracker(nil)
	before := st.Budget()

	for _, raw := range []string{"0", "-5", "oops", ""} {
		if _, err := tr.SetBudget(context.Background(), raw); !errors.Is(err, core.ErrInvalidBudget) {
			t.Fatalf("%q expected ErrInvalidBudget, got %v", raw, err)
		}
	}
	if st.Budget() != before {
		t.Fatalf("budget must stay unchanged after rejections")
	}

	m, err := tr.SetBudget(context.Background(), "2000")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if m.Cents != 200_000 || st.Budget().Cents != 200_000 {
		t.Fatalf("budget not applied: %+v", m)
	}
}

func TestDashboardDerivation(t *testing.T) {
	tr, _ := newTestTracker(nil)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	_, _ = tr.AddExpense(context.Background(), core.Expense{
		Amount: core.Money{Cents: 10_000}, CategoryID: "cat-1", Date: now,
	})
	_, _ = tr.AddExpense(context.Background(), core.Expense{
		Amount: core.Money{Cents: 5_000}, CategoryID: "cat-gone", Date: now,
	})
	// Outside the month: excluded from the summary, still part of the
	// badge history.
	_, _ = tr.AddExpense(context.Background(), core.Expense{
		Amount: core.Money{Cents: 99_000}, CategoryID: "cat-2", Date: now.AddDate(0, -1, 0),
	})

	d := tr.Dashboard(now)
	if d.Summary.Total.Cents != 15_000 {
		t.Fatalf("expected month total 15000, got %d", d.Summary.Total.Cents)
	}
	if len(d.Summary.ByCategory) != 2 {
		t.Fatalf("expected 2 breakdown rows, got %d", len(d.Summary.ByCategory))
	}
	if d.Summary.ByCategory[1].Name != core.Uncategorized {
		t.Fatalf("dangling category should render as %q", core.Uncategorized)
	}
	if d.Budget.Remaining.Cents != core.DefaultBudget.Cents-15_000 {
		t.Fatalf("unexpected remaining: %d", d.Budget.Remaining.Cents)
	}
	if len(d.Badges) != 4 {
		t.Fatalf("expected full badge catalog, got %d", len(d.Badges))
	}
}

func TestInsightsEmptyMonthShortCircuits(t *testing.T) {
	client := &fakeAI{insights: "should not be used"}
	tr, _ := newTestTracker(client)

	got, err := tr.Insights(context.Background(), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if got != NoInsightsDataMessage {
		t.Fatalf("expected placeholder message, got %q", got)
	}
	if client.insightsCalls != 0 {
		t.Fatalf("collaborator must not be called for an empty month")
	}
}

func TestInsightsSuccessAndFailure(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	client := &fakeAI{insights: "Cut back on coffee."}
	tr, _ := newTestTracker(client)
	_, _ = tr.AddExpense(context.Background(), core.Expense{
		Amount: core.Money{Cents: 899}, CategoryID: "cat-1", Date: now, Notes: "Morning coffee",
	})

	got, err := tr.Insights(context.Background(), now)
	if err != nil || got != "Cut back on coffee." {
		t.Fatalf("expected insights, got %q (err=%v)", got, err)
	}

	client.insightsErr = errors.New("upstream down")
	if _, err := tr.Insights(context.Background(), now); err == nil {
		t.Fatalf("expected recoverable error")
	}
}

func TestSuggestCategoryShortNotes(t *testing.T) {
	client := &fakeAI{suggestID: "cat-1"}
	tr, _ := newTestTracker(client)

	for _, notes := range []string{"", "abc", "  ab  "} {
		if got := tr.SuggestCategory(context.Background(), notes); got != "" {
			t.Fatalf("%q should not trigger a suggestion, got %q", notes, got)
		}
	}
	if client.suggestCalls != 0 {
		t.Fatalf("collaborator must not be called for short notes")
	}
}

func TestSuggestCategoryHappyPath(t *testing.T) {
	client := &fakeAI{suggestID: "cat-1"}
	tr, _ := newTestTracker(client)

	got := tr.SuggestCategory(context.Background(), "morning coffee with a friend")
	if got != "cat-1" {
		t.Fatalf("expected cat-1, got %q", got)
	}
	if client.lastSuggest.Notes != "morning coffee with a friend" {
		t.Fatalf("notes not forwarded: %q", client.lastSuggest.Notes)
	}
	if len(client.lastSuggest.Categories) != len(store.DefaultCategories()) {
		t.Fatalf("category options not forwarded")
	}
}

func TestSuggestCategoryFailuresAreSilent(t *testing.T) {
	client := &fakeAI{suggestErr: errors.New("model unavailable")}
	tr, _ := newTestTracker(client)

	if got := tr.SuggestCategory(context.Background(), "weekly groceries"); got != "" {
		t.Fatalf("failure must yield empty suggestion, got %q", got)
	}
}

func TestSuggestCategoryRejectsUnknownID(t *testing.T) {
	client := &fakeAI{suggestID: "made-up-id"}
	tr, _ := newTestTracker(client)

	if got := tr.SuggestCategory(context.Background(), "weekly groceries"); got != "" {
		t.Fatalf("id outside the offered set must be dropped, got %q", got)
	}
}

func TestSuggestCategoryNoClient(t *testing.T) {
	tr, _ := newTestTracker(nil)
	if got := tr.SuggestCategory(context.Background(), "weekly groceries"); got != "" {
		t.Fatalf("missing client must yield empty suggestion, got %q", got)
	}
}

func TestInsightsRecordsFormat(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	var captured ai.InsightsRequest
	client := &fakeAI{insights: "ok"}
	tr, _ := newTestTracker(client)
	_, _ = tr.AddExpense(context.Background(), core.Expense{
		Amount: core.Money{Cents: 1250}, CategoryID: "cat-1", Date: now, Notes: "Lunch",
	})

	if _, err := tr.Insights(context.Background(), now); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	captured = client.lastInsights
	if len(captured.MonthlyExpenses) != 1 {
		t.Fatalf("expected 1 record, got %d", len(captured.MonthlyExpenses))
	}
	rec := captured.MonthlyExpenses[0]
	if rec.Amount != 12.5 || rec.Description != "Lunch" || rec.Category != "cat-1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !strings.HasPrefix(rec.Date, "2026-08-") {
		t.Fatalf("date must be YYYY-MM-DD, got %q", rec.Date)
	}
}
