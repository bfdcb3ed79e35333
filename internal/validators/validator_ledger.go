package validators

import (
	"context"
	"math"
	"time"

	"github.com/MKhiriev/go-finance-tracker/models"
)

const (
	FieldKind     = "kind"
	FieldCategory = "category"
	FieldAmount   = "amount"
	FieldMonth    = "month"
)

// LedgerValidator validates ledger inputs: transactions, budget limits, and
// the kind filter used when listing.
type LedgerValidator struct {
}

func NewLedgerValidator() Validator {
	return &LedgerValidator{}
}

func (v *LedgerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Transaction:
		return v.validateTransaction(ctx, value, fields...)
	case *models.Transaction:
		return v.validateTransaction(ctx, *value, fields...)

	case models.Budget:
		return v.validateBudget(ctx, value, fields...)
	case *models.Budget:
		return v.validateBudget(ctx, *value, fields...)

	// A bare kind is the list filter; empty means "all kinds".
	case models.TransactionKind:
		if value != "" && !value.Valid() {
			return ErrInvalidKind
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *LedgerValidator) validateTransaction(_ context.Context, transaction models.Transaction, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldCategory, FieldAmount}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !transaction.Kind.Valid() {
				return ErrInvalidKind
			}
		case FieldCategory:
			if transaction.Category == "" {
				return ErrEmptyCategory
			}
		case FieldAmount:
			if !isValidAmount(transaction.Amount) {
				return ErrInvalidAmount
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateBudget(_ context.Context, budget models.Budget, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCategory, FieldAmount, FieldMonth}
	}

	for _, f := range fields {
		switch f {
		case FieldCategory:
			if budget.Category == "" {
				return ErrEmptyCategory
			}
		case FieldAmount:
			if !isValidAmount(budget.Amount) {
				return ErrInvalidAmount
			}
		case FieldMonth:
			if !isValidMonth(budget.Month) {
				return ErrInvalidMonth
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isValidAmount accepts zero and positive finite values.
func isValidAmount(amount float64) bool {
	return amount >= 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// isValidMonth checks the YYYY-MM calendar month form.
func isValidMonth(month string) bool {
	parsed, err := time.Parse("2006-01", month)
	return err == nil && parsed.Format("2006-01") == month
}
