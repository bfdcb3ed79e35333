package models

// Budget is a per-category monthly spending limit. At most one row exists
// per (user, category, month); SetBudget applies upsert semantics.
type Budget struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// UserID references the owning user.
	UserID int64 `json:"-"`

	// Category is the free-text category the limit applies to.
	Category string `json:"category"`

	// Amount is the monthly limit for the category.
	Amount float64 `json:"amount"`

	// Month is the ISO-8601 year-month ("2006-01") the limit applies to.
	Month string `json:"month"`
}

// TableName returns the name of the database table
// associated with the Budget model.
func (b Budget) TableName() string {
	return "budgets"
}

// BudgetWarning is the advisory result of a pre-insert projection check:
// recording the candidate expense would push the month's spend in the
// category over its configured limit. It never blocks the insert.
type BudgetWarning struct {
	// Category and Month identify the budget row that would be exceeded.
	Category string
	Month    string

	// Limit is the configured monthly limit.
	Limit float64

	// SpentSoFar is the sum of already-recorded expenses for the
	// (user, category, month) key, read before the candidate is persisted.
	SpentSoFar float64

	// Projected is SpentSoFar plus the candidate amount.
	Projected float64
}
