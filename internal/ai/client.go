// Package ai talks to the external text-generation service. Both
// features built on it are best-effort: insight generation surfaces a
// retryable error message, category suggestion fails silently.
package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no API key is available. Callers
// degrade gracefully instead of failing the dashboard.
var ErrNotConfigured = errors.New("ai client not configured")

// Client is the interface to the text-generation service.
type Client interface {
	// GenerateInsights turns the current month's expenses into
	// natural-language spending advice.
	GenerateInsights(ctx context.Context, req InsightsRequest) (InsightsResponse, error)

	// SuggestCategory picks the best-fitting category for free-text
	// notes. An empty CategoryID means no confident match.
	SuggestCategory(ctx context.Context, req SuggestRequest) (SuggestResponse, error)
}

// ExpenseRecord is one line of the insights input, serialized as JSON
// for the prompt.
type ExpenseRecord struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
}

type InsightsRequest struct {
	MonthlyExpenses []ExpenseRecord
}

type InsightsResponse struct {
	Insights string
}

// CategoryOption is one selectable category offered to the model.
type CategoryOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SuggestRequest struct {
	Notes      string
	Categories []CategoryOption
}

type SuggestResponse struct {
	CategoryID string
}
