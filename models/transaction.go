package models

import "time"

// TransactionKind discriminates money movements into incomes and expenses.
type TransactionKind string

const (
	// KindIncome marks a transaction that adds money.
	KindIncome TransactionKind = "Income"
	// KindExpense marks a transaction that spends money.
	KindExpense TransactionKind = "Expense"
)

// Valid reports whether the kind is one of the two recognised values.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single dated, categorised money movement owned by a user.
// Amount is a non-negative magnitude; the sign is carried by Kind.
// Transactions are created and deleted but never updated in place.
type Transaction struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// UserID references the owning user.
	UserID int64 `json:"-"`

	// Kind is either [KindIncome] or [KindExpense].
	Kind TransactionKind `json:"kind"`

	// Category is a free-text, non-empty label (e.g. "Salary", "Food").
	Category string `json:"category"`

	// Amount is the transaction magnitude. Always non-negative.
	Amount float64 `json:"amount"`

	// Date is the calendar date of the movement. The time component is
	// ignored; the store persists it as an ISO-8601 date string.
	Date time.Time `json:"date"`
}

// Month returns the ISO-8601 year-month ("2006-01") the transaction
// falls into. Budget rows are keyed by this value.
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// TableName returns the name of the database table
// associated with the Transaction model.
func (t Transaction) TableName() string {
	return "transactions"
}
