package store

import "github.com/MKhiriev/go-finance-tracker/internal/logger"

// Repositories bundles the per-entity data-access implementations that share
// one database connection. It is the single wiring point handed to the
// service layer.
type Repositories struct {
	UserRepository        UserRepository
	TransactionRepository TransactionRepository
	BudgetRepository      BudgetRepository
}

// NewRepositories constructs all repositories over the given connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db, logger),
		TransactionRepository: NewTransactionRepository(db, logger),
		BudgetRepository:      NewBudgetRepository(db, logger),
	}
}
