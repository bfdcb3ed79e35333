package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// transactionRepository is the SQLite-backed implementation of
// [TransactionRepository]. It owns all reads and writes of the
// "transactions" table, including the aggregate queries consumed by the
// budget tracker and the report generator.
//
// The list and report queries carry optional restrictions (kind filter,
// month window), so they are assembled with the squirrel builder; the
// fixed-shape statements live in sql_queries.go.
type transactionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransactionRepository constructs a [TransactionRepository] backed by the
// provided database connection and logger.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTransaction persists a new ledger entry and returns it with the
// store-assigned identifier. The date is stored as an ISO-8601 calendar
// date string; any time-of-day component is discarded.
//
// Error handling:
//   - Constraint violation (bad kind, negative amount, missing user) →
//     wrapped [ErrExecutingStatement].
//   - Scan failure → wrapped [ErrScanningRow].
func (r *transactionRepository) CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTransaction,
		transaction.UserID,
		string(transaction.Kind),
		transaction.Category,
		transaction.Amount,
		transaction.Date.Format(dateLayout),
	)

	if err := row.Scan(&transaction.ID); err != nil {
		log.Err(err).Str("func", "*transactionRepository.CreateTransaction").Msg("error: inserting transaction")

		if isConstraintViolation(err) {
			return models.Transaction{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return transaction, nil
}

// ListTransactions returns all entries owned by userID, newest first:
// ordered by date descending with identifier descending as the tiebreak so
// same-day entries keep stable newest-first ordering. A non-zero kind
// restricts the result to that kind.
func (r *transactionRepository) ListTransactions(ctx context.Context, userID int64, kind models.TransactionKind) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("id", "user_id", "type", "category", "amount", "date").
		From("transactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "id DESC")

	if kind != "" {
		builder = builder.Where(sq.Eq{"type": string(kind)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.ListTransactions").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.ListTransactions").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var transaction models.Transaction
		var date string

		if err = rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Kind, &transaction.Category, &transaction.Amount, &date); err != nil {
			log.Err(err).Str("func", "*transactionRepository.ListTransactions").Msg("error: scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if transaction.Date, err = time.Parse(dateLayout, date); err != nil {
			log.Err(err).Str("func", "*transactionRepository.ListTransactions").Str("date", date).Msg("error: malformed date in store")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return transactions, nil
}

// DeleteTransaction removes the entry only when it belongs to userID.
// The boolean result reports whether a row was actually removed; a missing
// or foreign identifier yields (false, nil) — a no-op, not an error.
func (r *transactionRepository) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteTransaction, transactionID, userID)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.DeleteTransaction").Msg("error: executing delete")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// SumExpensesForMonth returns the total of already-recorded Expense amounts
// for the (user, category, month) key. The budget tracker calls this before
// an insert, so the result reflects strictly pre-insertion state.
func (r *transactionRepository) SumExpensesForMonth(ctx context.Context, userID int64, category string, month string) (float64, error) {
	log := logger.FromContext(ctx)

	var total float64
	row := r.db.QueryRowContext(ctx, sumExpensesForMonth, userID, category, month)
	if err := row.Scan(&total); err != nil {
		log.Err(err).Str("func", "*transactionRepository.SumExpensesForMonth").Msg("error: scanning sum")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return total, nil
}

// SumByKind returns per-kind amount totals within the requested window: the
// whole year when month is zero, the single year+month otherwise. Kinds with
// no transactions are absent from the result map; callers default them to
// zero.
func (r *transactionRepository) SumByKind(ctx context.Context, userID int64, year int, month int) (map[models.TransactionKind]float64, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("type", "COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Expr("strftime('%Y', date) = ?", fmt.Sprintf("%04d", year))).
		GroupBy("type")

	if month > 0 {
		builder = builder.Where(sq.Expr("strftime('%m', date) = ?", fmt.Sprintf("%02d", month)))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.SumByKind").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.SumByKind").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	totals := make(map[models.TransactionKind]float64, 2)
	for rows.Next() {
		var kind models.TransactionKind
		var sum float64

		if err = rows.Scan(&kind, &sum); err != nil {
			log.Err(err).Str("func", "*transactionRepository.SumByKind").Msg("error: scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		totals[kind] = sum
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return totals, nil
}
