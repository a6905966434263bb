package persistence

import (
	"context"

	"gorm.io/gorm"

	apptrade "github.com/ayush-nalawade/CRM-backend/internal/application/trade"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/partner"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
)

// LedgerTransactionScope implements the application transaction scope over a
// GORM database. All repositories handed to the callback are bound to the same
// transaction, which makes the FOR UPDATE row locks taken through them hold
// until commit or rollback.
type LedgerTransactionScope struct {
	db *gorm.DB
}

// NewLedgerTransactionScope creates a new LedgerTransactionScope
func NewLedgerTransactionScope(db *gorm.DB) *LedgerTransactionScope {
	return &LedgerTransactionScope{db: db}
}

// Execute runs fn inside one database transaction
func (s *LedgerTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepositories{tx: tx})
	})
}

// ledgerRepositories hands out repositories bound to one transaction
type ledgerRepositories struct {
	tx *gorm.DB
}

func (r *ledgerRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *ledgerRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *ledgerRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

var _ apptrade.TransactionScope = (*LedgerTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*ledgerRepositories)(nil)
