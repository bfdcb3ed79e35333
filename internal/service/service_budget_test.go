package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/mock"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

func newTestBudgetSvc(t *testing.T, ctrl *gomock.Controller) (BudgetService, *mock.MockBudgetRepository, *mock.MockTransactionRepository) {
	t.Helper()
	mockBudgets := mock.NewMockBudgetRepository(ctrl)
	mockTransactions := mock.NewMockTransactionRepository(ctrl)

	return NewBudgetService(mockBudgets, mockTransactions, logger.NewLogger("test")), mockBudgets, mockTransactions
}

func userContext(userID int64) context.Context {
	return context.WithValue(context.Background(), utils.UserIDCtxKey, userID)
}

// ── SetBudget ────────────────────────────────────────────────────────────────

func TestBudgetService_SetBudget_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockBudgets, _ := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	budget := models.Budget{Category: "Food", Amount: 200, Month: "2025-03"}

	mockBudgets.EXPECT().UpsertBudget(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, b models.Budget) (models.Budget, error) {
			assert.Equal(t, int64(1), b.UserID)
			b.ID = 5
			return b, nil
		},
	)

	saved, err := svc.SetBudget(ctx, budget)
	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)
	assert.Equal(t, "2025-03", saved.Month)
}

func TestBudgetService_SetBudget_DefaultsToCurrentMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockBudgets, _ := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	mockBudgets.EXPECT().UpsertBudget(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, b models.Budget) (models.Budget, error) {
			assert.Equal(t, time.Now().Format("2006-01"), b.Month)
			return b, nil
		},
	)

	_, err := svc.SetBudget(ctx, models.Budget{Category: "Food", Amount: 200})
	require.NoError(t, err)
}

func TestBudgetService_SetBudget_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	tests := []struct {
		name   string
		budget models.Budget
	}{
		{"empty category", models.Budget{Amount: 100, Month: "2025-03"}},
		{"negative amount", models.Budget{Category: "Food", Amount: -1, Month: "2025-03"}},
		{"malformed month", models.Budget{Category: "Food", Amount: 100, Month: "March 2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetBudget(ctx, tt.budget)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestBudgetService_SetBudget_NoUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestBudgetSvc(t, ctrl)

	_, err := svc.SetBudget(context.Background(), models.Budget{Category: "Food", Amount: 100})
	assert.ErrorIs(t, err, ErrNoUserInContext)
}

// ── CheckProjection ──────────────────────────────────────────────────────────

func expenseOn(day time.Time, category string, amount float64) models.Transaction {
	return models.Transaction{
		Kind:     models.KindExpense,
		Category: category,
		Amount:   amount,
		Date:     day,
	}
}

func TestBudgetService_CheckProjection_Overspend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockBudgets, mockTransactions := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	// limit 200, 150 already spent, adding 100 projects to 250
	mockBudgets.EXPECT().FindBudget(ctx, int64(1), "Food", "2025-03").
		Return(models.Budget{ID: 1, UserID: 1, Category: "Food", Amount: 200, Month: "2025-03"}, nil)
	mockTransactions.EXPECT().SumExpensesForMonth(ctx, int64(1), "Food", "2025-03").
		Return(150.0, nil)

	warning, err := svc.CheckProjection(ctx, expenseOn(day, "Food", 100))
	require.NoError(t, err)
	require.NotNil(t, warning)
	assert.Equal(t, 200.0, warning.Limit)
	assert.Equal(t, 150.0, warning.SpentSoFar)
	assert.Equal(t, 250.0, warning.Projected)
	assert.Equal(t, "2025-03", warning.Month)
}

func TestBudgetService_CheckProjection_WithinLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockBudgets, mockTransactions := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	// limit 200, 150 already spent, adding 40 projects to 190
	mockBudgets.EXPECT().FindBudget(ctx, int64(1), "Food", "2025-03").
		Return(models.Budget{ID: 1, UserID: 1, Category: "Food", Amount: 200, Month: "2025-03"}, nil)
	mockTransactions.EXPECT().SumExpensesForMonth(ctx, int64(1), "Food", "2025-03").
		Return(150.0, nil)

	warning, err := svc.CheckProjection(ctx, expenseOn(day, "Food", 40))
	require.NoError(t, err)
	assert.Nil(t, warning)
}

func TestBudgetService_CheckProjection_ExactLimitIsFine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockBudgets, mockTransactions := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	mockBudgets.EXPECT().FindBudget(ctx, int64(1), "Food", "2025-03").
		Return(models.Budget{Amount: 200}, nil)
	mockTransactions.EXPECT().SumExpensesForMonth(ctx, int64(1), "Food", "2025-03").
		Return(150.0, nil)

	warning, err := svc.CheckProjection(ctx, expenseOn(day, "Food", 50))
	require.NoError(t, err)
	assert.Nil(t, warning)
}

func TestBudgetService_CheckProjection_NoBudgetConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockBudgets, _ := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	mockBudgets.EXPECT().FindBudget(ctx, int64(1), "Travel", "2025-03").
		Return(models.Budget{}, store.ErrBudgetNotFound)

	warning, err := svc.CheckProjection(ctx, expenseOn(day, "Travel", 10000))
	require.NoError(t, err)
	assert.Nil(t, warning)
}

func TestBudgetService_CheckProjection_IncomeIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	warning, err := svc.CheckProjection(ctx, models.Transaction{
		Kind:     models.KindIncome,
		Category: "Salary",
		Amount:   1500,
		Date:     time.Now(),
	})
	require.NoError(t, err)
	assert.Nil(t, warning)
}

// ── ListBudgets ──────────────────────────────────────────────────────────────

func TestBudgetService_ListBudgets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockBudgets, _ := newTestBudgetSvc(t, ctrl)
	ctx := userContext(1)

	mockBudgets.EXPECT().ListBudgets(ctx, int64(1)).Return([]models.Budget{
		{ID: 2, UserID: 1, Category: "Food", Amount: 200, Month: "2025-04"},
		{ID: 1, UserID: 1, Category: "Food", Amount: 180, Month: "2025-03"},
	}, nil)

	budgets, err := svc.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "2025-04", budgets[0].Month)
}
