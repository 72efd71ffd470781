package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"galaxy/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "galaxy.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := core.Category{ID: "cat-1", Name: "Food & Drink", Icon: "UtensilsCrossed"}
	if err := repo.SaveCategory(ctx, cat); err != nil {
		t.Fatalf("save category: %v", err)
	}

	exp := core.Expense{
		ID:         "exp-1",
		Amount:     core.Money{Cents: 1250},
		CategoryID: "cat-1",
		Date:       time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		Notes:      "lunch",
	}
	if err := repo.SaveExpense(ctx, exp); err != nil {
		t.Fatalf("save expense: %v", err)
	}
	if err := repo.SetBudget(ctx, core.Money{Cents: 150_000}); err != nil {
		t.Fatalf("set budget: %v", err)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Expenses) != 1 || snap.Expenses[0] != exp {
		t.Fatalf("unexpected expenses: %+v", snap.Expenses)
	}
	if len(snap.Categories) != 1 || snap.Categories[0] != cat {
		t.Fatalf("unexpected categories: %+v", snap.Categories)
	}
	if snap.Budget.Cents != 150_000 {
		t.Fatalf("unexpected budget: %d", snap.Budget.Cents)
	}
}

func TestLoadDefaultsBudgetWhenUnset(t *testing.T) {
	repo := newTestRepo(t)
	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Budget != core.DefaultBudget {
		t.Fatalf("expected default budget, got %+v", snap.Budget)
	}
}

func TestLoadSkipsUnparsableDates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount_cents, category_id, date, notes) VALUES ('bad', 100, 'cat-1', 'not-a-date', '')`); err != nil {
		t.Fatalf("insert malformed row: %v", err)
	}
	good := core.Expense{
		ID:         "good",
		Amount:     core.Money{Cents: 200},
		CategoryID: "cat-1",
		Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveExpense(ctx, good); err != nil {
		t.Fatalf("save expense: %v", err)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load should tolerate malformed dates: %v", err)
	}
	if len(snap.Expenses) != 1 || snap.Expenses[0].ID != "good" {
		t.Fatalf("expected only the parsable row, got %+v", snap.Expenses)
	}
}

func TestSetBudgetOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetBudget(ctx, core.Money{Cents: 100}); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if err := repo.SetBudget(ctx, core.Money{Cents: 200}); err != nil {
		t.Fatalf("overwrite budget: %v", err)
	}
	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Budget.Cents != 200 {
		t.Fatalf("expected 200, got %d", snap.Budget.Cents)
	}
}

func TestDeleteExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := core.Expense{
		ID:         "exp-1",
		Amount:     core.Money{Cents: 100},
		CategoryID: "cat-1",
		Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveExpense(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.DeleteExpense(ctx, "exp-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Expenses) != 0 {
		t.Fatalf("expense should be gone, got %+v", snap.Expenses)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := Snapshot{
		Categories: []core.Category{{ID: "cat-1", Name: "Food & Drink"}},
		Expenses: []core.Expense{{
			ID:         "exp-1",
			Amount:     core.Money{Cents: 100},
			CategoryID: "cat-1",
			Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}},
		Budget: core.Money{Cents: 100_000},
	}
	if err := repo.SeedIfEmpty(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Second call is a no-op.
	if err := repo.SeedIfEmpty(ctx, seed); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Categories) != 1 || len(snap.Expenses) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
