package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// budgetRepository is the SQLite-backed implementation of [BudgetRepository].
//
// The schema does not enforce uniqueness of (user_id, category, month);
// [budgetRepository.UpsertBudget] maintains that invariant at the
// application level with a select-then-update-or-insert sequence, which is
// safe under the single-session access model.
type budgetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBudgetRepository constructs a [BudgetRepository] backed by the provided
// database connection and logger.
func NewBudgetRepository(db *DB, logger *logger.Logger) BudgetRepository {
	logger.Debug().Msg("creating budget repository")
	return &budgetRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertBudget stores the monthly limit for (user, category, month).
// When a row already exists its amount is updated in place, so calling
// set-budget twice for the same key leaves exactly one row carrying the
// second amount.
func (r *budgetRepository) UpsertBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	log := logger.FromContext(ctx)

	existing, err := r.FindBudget(ctx, budget.UserID, budget.Category, budget.Month)
	switch {
	case err == nil:
		budget.ID = existing.ID
		if _, err = r.db.ExecContext(ctx, updateBudgetAmount, budget.Amount, budget.ID); err != nil {
			log.Err(err).Str("func", "*budgetRepository.UpsertBudget").Msg("error: updating budget amount")
			return models.Budget{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return budget, nil

	case errors.Is(err, ErrBudgetNotFound):
		row := r.db.QueryRowContext(ctx, createBudget, budget.UserID, budget.Category, budget.Amount, budget.Month)
		if err = row.Scan(&budget.ID); err != nil {
			log.Err(err).Str("func", "*budgetRepository.UpsertBudget").Msg("error: inserting budget")
			return models.Budget{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return budget, nil

	default:
		return models.Budget{}, err
	}
}

// ListBudgets returns all budget rows for the user ordered by month
// descending, with category as a secondary key for stable display.
func (r *budgetRepository) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listBudgets, userID)
	if err != nil {
		log.Err(err).Str("func", "*budgetRepository.ListBudgets").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var budget models.Budget
		if err = rows.Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Amount, &budget.Month); err != nil {
			log.Err(err).Str("func", "*budgetRepository.ListBudgets").Msg("error: scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		budgets = append(budgets, budget)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return budgets, nil
}

// FindBudget returns the single budget row for (user, category, month) or
// [ErrBudgetNotFound] when no limit is configured for that key.
func (r *budgetRepository) FindBudget(ctx context.Context, userID int64, category string, month string) (models.Budget, error) {
	log := logger.FromContext(ctx)

	var budget models.Budget
	row := r.db.QueryRowContext(ctx, findBudget, userID, category, month)

	if err := row.Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Amount, &budget.Month); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Budget{}, ErrBudgetNotFound
		}

		log.Err(err).Str("func", "*budgetRepository.FindBudget").Msg("error: scanning row")
		return models.Budget{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return budget, nil
}
