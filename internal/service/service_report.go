package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// reportService is the concrete implementation of ReportService.
// The heavy lifting happens in SQL; this layer validates the period and
// fills in zero totals for kinds with no matching entries.
type reportService struct {
	transactionRepository store.TransactionRepository
	logger                *logger.Logger
}

// NewReportService constructs a ReportService over the transaction
// repository.
func NewReportService(transactionRepository store.TransactionRepository, logger *logger.Logger) ReportService {
	return &reportService{
		transactionRepository: transactionRepository,
		logger:                logger,
	}
}

// MonthlyReport sums the context user's income and expenses for one calendar
// month. A period with no transactions yields a zero report, not an error.
//
// Returns ErrInvalidPeriod when the year is outside 1..9999 or the month
// outside 1..12.
func (r *reportService) MonthlyReport(ctx context.Context, year, month int) (models.Report, error) {
	if month < 1 || month > 12 {
		return models.Report{}, ErrInvalidPeriod
	}
	return r.buildReport(ctx, year, month)
}

// YearlyReport sums the context user's income and expenses for one calendar
// year.
func (r *reportService) YearlyReport(ctx context.Context, year int) (models.Report, error) {
	return r.buildReport(ctx, year, 0)
}

func (r *reportService) buildReport(ctx context.Context, year, month int) (models.Report, error) {
	log := logger.FromContext(ctx)

	if year < 1 || year > 9999 {
		return models.Report{}, ErrInvalidPeriod
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Report{}, ErrNoUserInContext
	}

	totals, err := r.transactionRepository.SumByKind(ctx, userID, year, month)
	if err != nil {
		log.Err(err).Int("year", year).Int("month", month).Msg("report aggregation ended with error")
		return models.Report{}, fmt.Errorf("report aggregation ended with error: %w", err)
	}

	return models.Report{
		Year:         year,
		Month:        month,
		TotalIncome:  totals[models.KindIncome],
		TotalExpense: totals[models.KindExpense],
	}, nil
}
