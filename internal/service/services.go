package service

import (
	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
)

type Services struct {
	AuthService   AuthService
	LedgerService LedgerService
	BudgetService BudgetService
	ReportService ReportService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	budgetService := NewBudgetService(repositories.BudgetRepository, repositories.TransactionRepository, logger)

	return &Services{
		AuthService:   NewAuthService(repositories.UserRepository, cfg.App, logger),
		LedgerService: NewLedgerService(repositories.TransactionRepository, budgetService, logger),
		BudgetService: budgetService,
		ReportService: NewReportService(repositories.TransactionRepository, logger),
	}
}
