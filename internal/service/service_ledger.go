package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/internal/validators"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// ledgerService is the concrete implementation of LedgerService.
// It validates incoming entries and delegates overspend projection to the
// budget service before every expense insert.
type ledgerService struct {
	transactionRepository store.TransactionRepository
	budgetService         BudgetService
	validator             validators.Validator
	logger                *logger.Logger
}

// NewLedgerService constructs a LedgerService over the transaction
// repository and the budget service used for pre-insert projections.
func NewLedgerService(transactionRepository store.TransactionRepository, budgetService BudgetService, logger *logger.Logger) LedgerService {
	return &ledgerService{
		transactionRepository: transactionRepository,
		budgetService:         budgetService,
		validator:             validators.NewLedgerValidator(),
		logger:                logger,
	}
}

// AddTransaction validates and records a new ledger entry for the context
// user. A zero Date defaults to today. For expenses the budget tracker is
// consulted first; its warning, if any, is returned alongside the persisted
// entry and never prevents the insert.
//
// Returns ErrInvalidDataProvided when the kind is unknown, the category is
// empty, or the amount is negative or not finite.
func (l *ledgerService) AddTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, *models.BudgetWarning, error) {
	log := logger.FromContext(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Transaction{}, nil, ErrNoUserInContext
	}
	transaction.UserID = userID

	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}

	if err := l.validator.Validate(ctx, transaction); err != nil {
		log.Err(err).
			Str("kind", string(transaction.Kind)).
			Str("category", transaction.Category).
			Float64("amount", transaction.Amount).
			Msg("invalid transaction data provided")
		return models.Transaction{}, nil, fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	// Projection must see strictly pre-insert state.
	warning, err := l.budgetService.CheckProjection(ctx, transaction)
	if err != nil {
		log.Err(err).Msg("budget projection ended with error")
		return models.Transaction{}, nil, fmt.Errorf("budget projection ended with error: %w", err)
	}

	created, err := l.transactionRepository.CreateTransaction(ctx, transaction)
	if err != nil {
		log.Err(err).Msg("transaction creation ended with error")
		return models.Transaction{}, nil, fmt.Errorf("transaction creation ended with error: %w", err)
	}

	return created, warning, nil
}

// ListTransactions returns the context user's entries newest first,
// optionally restricted to one kind. A zero kind returns everything.
//
// Returns ErrInvalidDataProvided for an unknown non-zero kind.
func (l *ledgerService) ListTransactions(ctx context.Context, kind models.TransactionKind) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	if err := l.validator.Validate(ctx, kind); err != nil {
		log.Err(err).Str("kind", string(kind)).Msg("invalid transaction kind filter")
		return nil, fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	transactions, err := l.transactionRepository.ListTransactions(ctx, userID, kind)
	if err != nil {
		log.Err(err).Msg("transaction listing ended with error")
		return nil, fmt.Errorf("transaction listing ended with error: %w", err)
	}

	return transactions, nil
}

// DeleteTransaction removes one of the context user's entries.
// A missing identifier, or one belonging to another user, reports false and
// leaves the ledger unchanged.
func (l *ledgerService) DeleteTransaction(ctx context.Context, transactionID int64) (bool, error) {
	log := logger.FromContext(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return false, ErrNoUserInContext
	}

	deleted, err := l.transactionRepository.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		log.Err(err).Int64("transactionID", transactionID).Msg("transaction deletion ended with error")
		return false, fmt.Errorf("transaction deletion ended with error: %w", err)
	}

	if !deleted {
		log.Debug().Int64("transactionID", transactionID).Msg("no matching transaction to delete")
	}

	return deleted, nil
}
