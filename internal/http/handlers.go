package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"galaxy/internal/ai"
	"galaxy/internal/core"
	applog "galaxy/internal/log"
	"galaxy/internal/services"
	"galaxy/internal/store"
)

type expenseResponse struct {
	ID         string  `json:"id"`
	Amount     float64 `json:"amount"`
	CategoryID string  `json:"categoryId"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type badgeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

type categoryAmountResponse struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
}

type dashboardResponse struct {
	Summary struct {
		Total      float64                  `json:"total"`
		ByCategory []categoryAmountResponse `json:"byCategory"`
	} `json:"summary"`
	Budget struct {
		Budget      float64 `json:"budget"`
		Spent       float64 `json:"spent"`
		Remaining   float64 `json:"remaining"`
		Utilization float64 `json:"utilization"`
	} `json:"budget"`
	Badges []badgeResponse `json:"badges"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:         e.ID,
		Amount:     e.Amount.Units(),
		CategoryID: e.CategoryID,
		Date:       e.Date.Format("2006-01-02"),
		Notes:      e.Notes,
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := s.tracker.Dashboard(time.Now())

	var resp dashboardResponse
	resp.Summary.Total = data.Summary.Total.Units()
	resp.Summary.ByCategory = make([]categoryAmountResponse, len(data.Summary.ByCategory))
	for i, row := range data.Summary.ByCategory {
		resp.Summary.ByCategory[i] = categoryAmountResponse{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Amount:     row.Amount.Units(),
		}
	}
	resp.Budget.Budget = data.Budget.Budget.Units()
	resp.Budget.Spent = data.Budget.Spent.Units()
	resp.Budget.Remaining = data.Budget.Remaining.Units()
	resp.Budget.Utilization = data.Budget.Utilization
	resp.Badges = make([]badgeResponse, len(data.Badges))
	for i, b := range data.Badges {
		resp.Badges[i] = badgeResponse{
			ID: b.ID, Name: b.Name, Description: b.Description,
			Icon: b.Icon, Earned: b.Earned,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	key := core.SortByDate
	if v := r.URL.Query().Get("sort"); v != "" {
		parsed, ok := core.ParseSortKey(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown sort key")
			return
		}
		key = parsed
	}
	desc := r.URL.Query().Get("dir") == "desc"

	s.logger.DebugContext(r.Context(), "Listing expenses",
		applog.FieldSortKey, string(key), "desc", desc)
	expenses := s.tracker.Expenses(key, desc)
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

type createExpenseRequest struct {
	Amount     string `json:"amount"`
	CategoryID string `json:"categoryId"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	expense := core.Expense{
		Amount:     core.Money{Cents: cents},
		CategoryID: req.CategoryID,
		Date:       date,
		Notes:      sanitizeInput(req.Notes),
	}

	saved, err := s.tracker.AddExpense(r.Context(), expense)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateInsights(saved.Date)

	s.logger.InfoContext(r.Context(), "Expense created",
		applog.FieldExpenseID, saved.ID,
		applog.FieldAmountCents, saved.Amount.Cents,
		applog.FieldCategoryID, saved.CategoryID)
	writeJSON(w, http.StatusCreated, toExpenseResponse(saved))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	removed, err := s.tracker.DeleteExpense(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	s.invalidateInsights(removed.Date)

	s.logger.InfoContext(r.Context(), "Expense deleted", applog.FieldExpenseID, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.tracker.Categories()
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon}
	}
	writeJSON(w, http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.tracker.AddCategory(r.Context(), core.Category{
		Name: sanitizeInput(req.Name),
		Icon: sanitizeInput(req.Icon),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.logger.InfoContext(r.Context(), "Category created", applog.FieldCategoryID, saved.ID)
	writeJSON(w, http.StatusCreated, categoryResponse{ID: saved.ID, Name: saved.Name, Icon: saved.Icon})
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]float64{"budget": s.tracker.Budget().Units()})
}

type setBudgetRequest struct {
	Budget string `json:"budget"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := s.tracker.SetBudget(r.Context(), req.Budget)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "budget must be a positive amount")
		return
	}

	s.logger.InfoContext(r.Context(), "Budget updated", applog.FieldBudgetCents, m.Cents)
	writeJSON(w, http.StatusOK, map[string]float64{"budget": m.Units()})
}

type insightsResponse struct {
	Insights string `json:"insights"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	key := monthKey(now)

	if cached, ok := s.insightCache.Get(key); ok {
		writeJSON(w, http.StatusOK, insightsResponse{Insights: cached})
		return
	}

	insights, err := s.tracker.Insights(r.Context(), now)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "insight generation is not configured")
			return
		}
		s.logger.ErrorContext(r.Context(), "Insight generation failed", applog.FieldError, err)
		writeJSON(w, http.StatusOK, insightsResponse{Insights: services.InsightsErrorMessage})
		return
	}

	if insights != services.NoInsightsDataMessage {
		s.insightCache.Set(key, insights)
	}
	writeJSON(w, http.StatusOK, insightsResponse{Insights: insights})
}

type suggestRequest struct {
	Notes string `json:"notes"`
}

type suggestResponse struct {
	CategoryID string `json:"categoryId"`
}

func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := s.tracker.SuggestCategory(r.Context(), req.Notes)
	writeJSON(w, http.StatusOK, suggestResponse{CategoryID: id})
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func (s *Server) invalidateInsights(date time.Time) {
	s.insightCache.Delete(monthKey(date))
}
