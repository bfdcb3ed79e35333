package service

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_service.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-finance-tracker/models"
)

// AuthService handles account registration, credential verification and the
// session token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// LedgerService records and queries the income and expense entries of the
// user identified by the context.
type LedgerService interface {
	// AddTransaction validates and persists a new entry. For expenses it
	// first consults the budget tracker; a non-nil warning reports a
	// projected overspend but never blocks the insert.
	AddTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, *models.BudgetWarning, error)

	// ListTransactions returns the user's entries newest first. A zero kind
	// returns entries of both kinds.
	ListTransactions(ctx context.Context, kind models.TransactionKind) ([]models.Transaction, error)

	// DeleteTransaction removes the entry if it belongs to the user.
	// Returns false without error when nothing was removed.
	DeleteTransaction(ctx context.Context, transactionID int64) (bool, error)
}

// BudgetService manages per-category monthly spending limits and evaluates
// prospective expenses against them.
type BudgetService interface {
	SetBudget(ctx context.Context, budget models.Budget) (models.Budget, error)
	ListBudgets(ctx context.Context) ([]models.Budget, error)

	// CheckProjection reports whether recording the given expense would push
	// the month's category spending past its configured limit. Returns nil
	// when no limit is set or the projection stays within it.
	CheckProjection(ctx context.Context, transaction models.Transaction) (*models.BudgetWarning, error)
}

// ReportService aggregates the user's ledger into period summaries.
type ReportService interface {
	MonthlyReport(ctx context.Context, year, month int) (models.Report, error)
	YearlyReport(ctx context.Context, year int) (models.Report, error)
}
