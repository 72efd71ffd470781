// Package storage persists expense, category and budget snapshots to
// SQLite. It is the durable side of the dashboard: the in-memory store
// remains the source of truth at runtime and is written through here
// on every mutation.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"galaxy/internal/core"

	_ "modernc.org/sqlite"
)

const budgetKey = "budget_cents"

// Snapshot is a full restore point for the record store.
type Snapshot struct {
	Expenses   []core.Expense
	Categories []core.Category
	Budget     core.Money
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load restores the full snapshot. Rows with unparsable dates are
// skipped with a warning rather than failing the load; a missing
// budget falls back to the default.
func (r *Repository) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, category_id, date, notes FROM expenses ORDER BY date DESC`)
	if err != nil {
		return snap, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e       core.Expense
			dateStr string
		)
		if err := rows.Scan(&e.ID, &e.Amount.Cents, &e.CategoryID, &dateStr, &e.Notes); err != nil {
			return snap, fmt.Errorf("scan expense: %w", err)
		}
		e.Date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			slog.WarnContext(ctx, "Skipping expense with unparsable date",
				"id", e.ID, "date", dateStr, "error", err)
			continue
		}
		snap.Expenses = append(snap.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate expenses: %w", err)
	}

	catRows, err := r.db.QueryContext(ctx, `SELECT id, name, icon FROM categories`)
	if err != nil {
		return snap, fmt.Errorf("query categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var c core.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			return snap, fmt.Errorf("scan category: %w", err)
		}
		snap.Categories = append(snap.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate categories: %w", err)
	}

	snap.Budget = core.DefaultBudget
	var raw string
	err = r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, budgetKey).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// keep default
	case err != nil:
		return snap, fmt.Errorf("query budget: %w", err)
	default:
		cents, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || cents <= 0 {
			slog.WarnContext(ctx, "Stored budget is malformed, using default", "value", raw)
		} else {
			snap.Budget = core.Money{Cents: cents}
		}
	}

	return snap, nil
}

// SaveExpense writes one expense through to the snapshot.
func (r *Repository) SaveExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount_cents, category_id, date, notes) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Amount.Cents, e.CategoryID, e.Date.Format(time.RFC3339), e.Notes)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense from the snapshot permanently.
func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// SaveCategory writes one category through to the snapshot. The icon
// is stored as its symbolic name only.
func (r *Repository) SaveCategory(ctx context.Context, c core.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, icon) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Icon)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// SetBudget persists the budget ceiling.
func (r *Repository) SetBudget(ctx context.Context, m core.Money) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		budgetKey, strconv.FormatInt(m.Cents, 10))
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}
	return nil
}

// SeedIfEmpty writes the given snapshot when the database holds no
// categories yet, so a fresh install starts with the demo data.
func (r *Repository) SeedIfEmpty(ctx context.Context, snap Snapshot) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, c := range snap.Categories {
		if err := r.SaveCategory(ctx, c); err != nil {
			return err
		}
	}
	for _, e := range snap.Expenses {
		if err := r.SaveExpense(ctx, e); err != nil {
			return err
		}
	}
	if snap.Budget.Cents > 0 {
		if err := r.SetBudget(ctx, snap.Budget); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Seeded empty snapshot database",
		"categories", len(snap.Categories), "expenses", len(snap.Expenses))
	return nil
}
