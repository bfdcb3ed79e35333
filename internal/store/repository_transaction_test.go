package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

func newTestTransactionRepo(t *testing.T) (*transactionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &transactionRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateTransaction_Success(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()
	transaction := models.Transaction{
		UserID:   1,
		Kind:     models.KindExpense,
		Category: "Food",
		Amount:   42.50,
		Date:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	rows := sqlmock.NewRows([]string{"id"}).AddRow(7)

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), "Expense", "Food", 42.50, "2025-03-14").
		WillReturnRows(rows)

	created, err := repo.CreateTransaction(ctx, transaction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("expected ID=7, got %d", created.ID)
	}
}

func TestCreateTransaction_ConstraintViolation(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()
	transaction := models.Transaction{UserID: 1, Kind: "Bogus", Category: "Food"}

	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck})

	_, err := repo.CreateTransaction(ctx, transaction)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestListTransactions_All(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "type", "category", "amount", "date"}).
		AddRow(3, 1, "Expense", "Food", 42.50, "2025-03-14").
		AddRow(2, 1, "Income", "Salary", 1500.0, "2025-03-01")

	mock.ExpectQuery("SELECT id, user_id, type, category, amount, date FROM transactions").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	transactions, err := repo.ListTransactions(ctx, 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Kind != models.KindExpense {
		t.Errorf("expected first kind Expense, got %s", transactions[0].Kind)
	}
	if got := transactions[0].Date.Format("2006-01-02"); got != "2025-03-14" {
		t.Errorf("expected date 2025-03-14, got %s", got)
	}
}

func TestListTransactions_KindFilterAddsPredicate(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "type", "category", "amount", "date"}).
		AddRow(2, 1, "Income", "Salary", 1500.0, "2025-03-01")

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE user_id = \\? AND type = \\?").
		WithArgs(int64(1), "Income").
		WillReturnRows(rows)

	transactions, err := repo.ListTransactions(ctx, 1, models.KindIncome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Category != "Salary" {
		t.Errorf("expected category Salary, got %s", transactions[0].Category)
	}
}

func TestListTransactions_MalformedDate(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "type", "category", "amount", "date"}).
		AddRow(1, 1, "Expense", "Food", 10.0, "not-a-date")

	mock.ExpectQuery("SELECT .+ FROM transactions").
		WillReturnRows(rows)

	_, err := repo.ListTransactions(ctx, 1, "")
	if !errors.Is(err, ErrScanningRows) {
		t.Fatalf("expected ErrScanningRows, got %v", err)
	}
}

func TestDeleteTransaction_Deleted(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM transactions").
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteTransaction(ctx, 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted=true")
	}
}

func TestDeleteTransaction_NotOwnedIsNoop(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM transactions").
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteTransaction(ctx, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatal("expected deleted=false for a row owned by another user")
	}
}

func TestSumExpensesForMonth(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"total"}).AddRow(150.0)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(int64(1), "Food", "2025-03").
		WillReturnRows(rows)

	total, err := repo.SumExpensesForMonth(ctx, 1, "Food", "2025-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 150.0 {
		t.Errorf("expected total 150, got %v", total)
	}
}

func TestSumByKind_MonthlyWindow(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"type", "sum"}).
		AddRow("Income", 1500.0).
		AddRow("Expense", 300.0)

	mock.ExpectQuery("SELECT type, COALESCE").
		WithArgs(int64(1), "2025", "03").
		WillReturnRows(rows)

	totals, err := repo.SumByKind(ctx, 1, 2025, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals[models.KindIncome] != 1500.0 {
		t.Errorf("expected income 1500, got %v", totals[models.KindIncome])
	}
	if totals[models.KindExpense] != 300.0 {
		t.Errorf("expected expense 300, got %v", totals[models.KindExpense])
	}
}

func TestSumByKind_YearlyWindowOmitsMonth(t *testing.T) {
	repo, mock, db := newTestTransactionRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"type", "sum"}).AddRow("Income", 18000.0)

	mock.ExpectQuery("SELECT type, COALESCE").
		WithArgs(int64(1), "2025").
		WillReturnRows(rows)

	totals, err := repo.SumByKind(ctx, 1, 2025, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals[models.KindIncome] != 18000.0 {
		t.Errorf("expected income 18000, got %v", totals[models.KindIncome])
	}
	if _, ok := totals[models.KindExpense]; ok {
		t.Error("expected no Expense entry when no rows matched")
	}
}
