package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

func newTestBudgetRepo(t *testing.T) (*budgetRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &budgetRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestUpsertBudget_InsertWhenMissing(t *testing.T) {
	repo, mock, db := newTestBudgetRepo(t)
	defer db.Close()

	ctx := context.Background()
	budget := models.Budget{UserID: 1, Category: "Food", Amount: 200.0, Month: "2025-03"}

	mock.ExpectQuery("SELECT id, user_id, category, amount, month FROM budgets").
		WithArgs(int64(1), "Food", "2025-03").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("INSERT INTO budgets").
		WithArgs(int64(1), "Food", 200.0, "2025-03").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	saved, err := repo.UpsertBudget(ctx, budget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 4 {
		t.Errorf("expected ID=4, got %d", saved.ID)
	}
}

func TestUpsertBudget_UpdateWhenPresent(t *testing.T) {
	repo, mock, db := newTestBudgetRepo(t)
	defer db.Close()

	ctx := context.Background()
	budget := models.Budget{UserID: 1, Category: "Food", Amount: 350.0, Month: "2025-03"}

	existing := sqlmock.
		NewRows([]string{"id", "user_id", "category", "amount", "month"}).
		AddRow(4, 1, "Food", 200.0, "2025-03")

	mock.ExpectQuery("SELECT id, user_id, category, amount, month FROM budgets").
		WithArgs(int64(1), "Food", "2025-03").
		WillReturnRows(existing)

	mock.ExpectExec("UPDATE budgets SET amount").
		WithArgs(350.0, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.UpsertBudget(ctx, budget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 4 {
		t.Errorf("expected existing ID=4 to be kept, got %d", saved.ID)
	}
	if saved.Amount != 350.0 {
		t.Errorf("expected amount 350, got %v", saved.Amount)
	}
}

func TestFindBudget_NotFound(t *testing.T) {
	repo, mock, db := newTestBudgetRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, user_id, category, amount, month FROM budgets").
		WithArgs(int64(1), "Travel", "2025-03").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBudget(ctx, 1, "Travel", "2025-03")
	if !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound, got %v", err)
	}
}

func TestListBudgets(t *testing.T) {
	repo, mock, db := newTestBudgetRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "category", "amount", "month"}).
		AddRow(2, 1, "Food", 200.0, "2025-04").
		AddRow(1, 1, "Food", 180.0, "2025-03")

	mock.ExpectQuery("SELECT id, user_id, category, amount, month FROM budgets").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	budgets, err := repo.ListBudgets(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	if budgets[0].Month != "2025-04" {
		t.Errorf("expected newest month first, got %s", budgets[0].Month)
	}
}

func TestListBudgets_QueryError(t *testing.T) {
	repo, mock, db := newTestBudgetRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, user_id, category, amount, month FROM budgets").
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.ListBudgets(ctx, 1)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
