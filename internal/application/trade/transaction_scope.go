package trade

import (
	"context"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/partner"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the ledger repositories.
// Every ledger operation runs its full item -> purchase -> customer
// propagation chain inside one Execute call: the chain commits as a whole or
// rolls back as a whole, so a line item can never be persisted alongside an
// un-propagated purchase total or customer rollup.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories participating
// in the ledger chain. All repositories returned share the same underlying
// database transaction, which is what makes the ForUpdate row locks effective
// for the duration of a read-modify-write.
type TransactionalRepositories interface {
	Purchases() trade.PurchaseRepository
	Customers() partner.CustomerRepository
	Products() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for callers that only read.
type NoOpTransactionScope struct {
	purchaseRepo trade.PurchaseRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	purchaseRepo trade.PurchaseRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Execute runs the function without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Purchases returns the purchase repository
func (s *NoOpTransactionScope) Purchases() trade.PurchaseRepository {
	return s.purchaseRepo
}

// Customers returns the customer repository
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository {
	return s.customerRepo
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
