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
	"github.com/MKhiriev/go-finance-tracker/models"
)

func newTestLedgerSvc(t *testing.T, ctrl *gomock.Controller) (LedgerService, *mock.MockTransactionRepository, *mock.MockBudgetService) {
	t.Helper()
	mockTransactions := mock.NewMockTransactionRepository(ctrl)
	mockBudgets := mock.NewMockBudgetService(ctrl)

	return NewLedgerService(mockTransactions, mockBudgets, logger.NewLogger("test")), mockTransactions, mockBudgets
}

// ── AddTransaction ───────────────────────────────────────────────────────────

func TestLedgerService_AddTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTransactions, mockBudgets := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	transaction := models.Transaction{
		Kind:     models.KindIncome,
		Category: "Salary",
		Amount:   1500,
		Date:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	gomock.InOrder(
		mockBudgets.EXPECT().CheckProjection(ctx, gomock.Any()).Return(nil, nil),
		mockTransactions.EXPECT().CreateTransaction(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tr models.Transaction) (models.Transaction, error) {
				assert.Equal(t, int64(1), tr.UserID)
				tr.ID = 9
				return tr, nil
			},
		),
	)

	created, warning, err := svc.AddTransaction(ctx, transaction)
	require.NoError(t, err)
	assert.Nil(t, warning)
	assert.Equal(t, int64(9), created.ID)
}

func TestLedgerService_AddTransaction_WarningDoesNotBlockInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTransactions, mockBudgets := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	transaction := models.Transaction{
		Kind:     models.KindExpense,
		Category: "Food",
		Amount:   100,
		Date:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	overspend := &models.BudgetWarning{
		Category:   "Food",
		Month:      "2025-03",
		Limit:      200,
		SpentSoFar: 150,
		Projected:  250,
	}

	// projection runs first, then the insert happens regardless
	gomock.InOrder(
		mockBudgets.EXPECT().CheckProjection(ctx, gomock.Any()).Return(overspend, nil),
		mockTransactions.EXPECT().CreateTransaction(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tr models.Transaction) (models.Transaction, error) {
				tr.ID = 10
				return tr, nil
			},
		),
	)

	created, warning, err := svc.AddTransaction(ctx, transaction)
	require.NoError(t, err)
	require.NotNil(t, warning)
	assert.Equal(t, 250.0, warning.Projected)
	assert.Equal(t, int64(10), created.ID)
}

func TestLedgerService_AddTransaction_DefaultsDateToToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTransactions, mockBudgets := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	mockBudgets.EXPECT().CheckProjection(ctx, gomock.Any()).Return(nil, nil)
	mockTransactions.EXPECT().CreateTransaction(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tr models.Transaction) (models.Transaction, error) {
			assert.Equal(t, time.Now().Format("2006-01-02"), tr.Date.Format("2006-01-02"))
			return tr, nil
		},
	)

	_, _, err := svc.AddTransaction(ctx, models.Transaction{
		Kind:     models.KindExpense,
		Category: "Food",
		Amount:   10,
	})
	require.NoError(t, err)
}

func TestLedgerService_AddTransaction_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	tests := []struct {
		name        string
		transaction models.Transaction
	}{
		{"unknown kind", models.Transaction{Kind: "Transfer", Category: "Food", Amount: 10}},
		{"empty category", models.Transaction{Kind: models.KindExpense, Amount: 10}},
		{"negative amount", models.Transaction{Kind: models.KindExpense, Category: "Food", Amount: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.AddTransaction(ctx, tt.transaction)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestLedgerService_AddTransaction_NoUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestLedgerSvc(t, ctrl)

	_, _, err := svc.AddTransaction(context.Background(), models.Transaction{
		Kind:     models.KindExpense,
		Category: "Food",
		Amount:   10,
	})
	assert.ErrorIs(t, err, ErrNoUserInContext)
}

// ── ListTransactions ─────────────────────────────────────────────────────────

func TestLedgerService_ListTransactions_PassesKindFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTransactions, _ := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	expected := []models.Transaction{{ID: 1, UserID: 1, Kind: models.KindIncome, Category: "Salary", Amount: 1500}}

	mockTransactions.EXPECT().ListTransactions(ctx, int64(1), models.KindIncome).Return(expected, nil)

	transactions, err := svc.ListTransactions(ctx, models.KindIncome)
	require.NoError(t, err)
	assert.Equal(t, expected, transactions)
}

func TestLedgerService_ListTransactions_InvalidKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	_, err := svc.ListTransactions(ctx, "Transfer")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── DeleteTransaction ────────────────────────────────────────────────────────

func TestLedgerService_DeleteTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTransactions, _ := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	mockTransactions.EXPECT().DeleteTransaction(ctx, int64(1), int64(7)).Return(true, nil)

	deleted, err := svc.DeleteTransaction(ctx, 7)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestLedgerService_DeleteTransaction_MissingIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTransactions, _ := newTestLedgerSvc(t, ctrl)
	ctx := userContext(1)

	mockTransactions.EXPECT().DeleteTransaction(ctx, int64(1), int64(404)).Return(false, nil)

	deleted, err := svc.DeleteTransaction(ctx, 404)
	require.NoError(t, err)
	assert.False(t, deleted)
}
