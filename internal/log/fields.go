package log

// Field names for structured logging.
const (
	FieldComponent   = "component"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldExpenseID   = "expense_id"
	FieldCategoryID  = "category_id"
	FieldAmountCents = "amount_cents"
	FieldBudgetCents = "budget_cents"
	FieldSortKey     = "sort_key"
)

// Component names.
const (
	ComponentApp  = "app"
	ComponentHTTP = "http"
)
