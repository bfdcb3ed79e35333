package store

import (
	"context"

	"github.com/MKhiriev/go-finance-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_store.go -package=mock

// UserRepository provides persistence for user accounts.
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields populated. Returns [ErrUsernameAlreadyExists] when the
	// username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername looks up a user by exact, case-sensitive username.
	// Returns [ErrNoUserWasFound] when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// TransactionRepository provides persistence for ledger entries.
type TransactionRepository interface {
	// CreateTransaction persists a new ledger entry and returns it with the
	// assigned identifier.
	CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)

	// ListTransactions returns all entries owned by userID ordered by date
	// descending with identifier descending as the tiebreak, optionally
	// restricted to one kind. A zero-value kind means no restriction.
	ListTransactions(ctx context.Context, userID int64, kind models.TransactionKind) ([]models.Transaction, error)

	// DeleteTransaction removes the entry only if it belongs to userID and
	// reports whether a row was removed. Deleting a missing or foreign id
	// is a no-op, not an error.
	DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (bool, error)

	// SumExpensesForMonth returns the total of already-recorded Expense
	// amounts for the (user, category, month) key. Month is an ISO-8601
	// year-month string ("2006-01").
	SumExpensesForMonth(ctx context.Context, userID int64, category string, month string) (float64, error)

	// SumByKind returns per-kind amount totals within a calendar window:
	// the whole year when month is zero, a single month otherwise.
	// Kinds with no transactions are absent from the result map.
	SumByKind(ctx context.Context, userID int64, year int, month int) (map[models.TransactionKind]float64, error)
}

// BudgetRepository provides persistence for per-category monthly limits.
type BudgetRepository interface {
	// UpsertBudget inserts a budget row for (user, category, month) or
	// updates the amount of the existing one, and returns the stored row.
	UpsertBudget(ctx context.Context, budget models.Budget) (models.Budget, error)

	// ListBudgets returns all budget rows for the user ordered by month
	// descending.
	ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error)

	// FindBudget returns the budget row for the (user, category, month)
	// key or [ErrBudgetNotFound].
	FindBudget(ctx context.Context, userID int64, category string, month string) (models.Budget, error)
}

// SessionStore persists the signed session token between program runs.
type SessionStore interface {
	// Save writes the token, replacing any previous session.
	Save(token string) error

	// Load returns the persisted token or [ErrSessionNotFound].
	Load() (string, error)

	// Clear removes the persisted session. Clearing an absent session is
	// a no-op.
	Clear() error
}
