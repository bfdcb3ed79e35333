package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/internal/validators"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// budgetService is the concrete implementation of BudgetService.
//
// Budgets are advisory. CheckProjection compares a prospective expense
// against the month's spending recorded so far; the ledger service surfaces
// the result as a warning and records the expense regardless.
type budgetService struct {
	budgetRepository      store.BudgetRepository
	transactionRepository store.TransactionRepository
	validator             validators.Validator
	logger                *logger.Logger
}

// NewBudgetService constructs a BudgetService over the budget and
// transaction repositories. The transaction repository supplies the spending
// totals that projections are computed from.
func NewBudgetService(budgetRepository store.BudgetRepository, transactionRepository store.TransactionRepository, logger *logger.Logger) BudgetService {
	return &budgetService{
		budgetRepository:      budgetRepository,
		transactionRepository: transactionRepository,
		validator:             validators.NewLedgerValidator(),
		logger:                logger,
	}
}

// SetBudget stores the monthly limit for the user's (category, month) pair,
// replacing any previous limit for the same pair. An empty month defaults to
// the current calendar month.
//
// Returns ErrInvalidDataProvided when the category is empty, the amount is
// negative or not finite, or the month is not in YYYY-MM form.
func (b *budgetService) SetBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	log := logger.FromContext(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Budget{}, ErrNoUserInContext
	}
	budget.UserID = userID

	if budget.Month == "" {
		budget.Month = time.Now().Format("2006-01")
	}

	if err := b.validator.Validate(ctx, budget); err != nil {
		log.Err(err).
			Str("category", budget.Category).
			Float64("amount", budget.Amount).
			Str("month", budget.Month).
			Msg("invalid budget data provided")
		return models.Budget{}, fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	saved, err := b.budgetRepository.UpsertBudget(ctx, budget)
	if err != nil {
		log.Err(err).Str("category", budget.Category).Str("month", budget.Month).Msg("budget upsert ended with error")
		return models.Budget{}, fmt.Errorf("budget upsert ended with error: %w", err)
	}

	return saved, nil
}

// ListBudgets returns all configured limits of the user, newest month first.
func (b *budgetService) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	log := logger.FromContext(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	budgets, err := b.budgetRepository.ListBudgets(ctx, userID)
	if err != nil {
		log.Err(err).Msg("budget listing ended with error")
		return nil, fmt.Errorf("budget listing ended with error: %w", err)
	}

	return budgets, nil
}

// CheckProjection evaluates a prospective expense against the limit for its
// (category, month) pair.
//
// The projection is computed from the spending already recorded, so it must
// run before the expense is inserted. No configured limit means no warning;
// a projection less than or equal to the limit means no warning. Income
// entries never produce warnings.
func (b *budgetService) CheckProjection(ctx context.Context, transaction models.Transaction) (*models.BudgetWarning, error) {
	log := logger.FromContext(ctx)

	if transaction.Kind != models.KindExpense {
		return nil, nil
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	month := transaction.Month()

	budget, err := b.budgetRepository.FindBudget(ctx, userID, transaction.Category, month)
	if err != nil {
		if errors.Is(err, store.ErrBudgetNotFound) {
			return nil, nil
		}

		log.Err(err).Str("category", transaction.Category).Str("month", month).Msg("budget lookup ended with error")
		return nil, fmt.Errorf("budget lookup ended with error: %w", err)
	}

	spentSoFar, err := b.transactionRepository.SumExpensesForMonth(ctx, userID, transaction.Category, month)
	if err != nil {
		log.Err(err).Str("category", transaction.Category).Str("month", month).Msg("spending sum ended with error")
		return nil, fmt.Errorf("spending sum ended with error: %w", err)
	}

	projected := spentSoFar + transaction.Amount
	if projected <= budget.Amount {
		return nil, nil
	}

	log.Info().
		Str("category", transaction.Category).
		Str("month", month).
		Float64("limit", budget.Amount).
		Float64("projected", projected).
		Msg("projected overspend")

	return &models.BudgetWarning{
		Category:   transaction.Category,
		Month:      month,
		Limit:      budget.Amount,
		SpentSoFar: spentSoFar,
		Projected:  projected,
	}, nil
}
