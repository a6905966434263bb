package trade

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/partner"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
)

// serialLedgerScope serializes Execute calls with a mutex, the way the real
// scope's gorm transaction plus FOR UPDATE row locks serialize concurrent
// writers against the same purchase row.
type serialLedgerScope struct {
	mu        sync.Mutex
	purchases *memoryPurchaseRepository
	customers *memoryCustomerRepository
}

func (s *serialLedgerScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (s *serialLedgerScope) Purchases() trade.PurchaseRepository {
	return s.purchases
}

func (s *serialLedgerScope) Customers() partner.CustomerRepository {
	return s.customers
}

func (s *serialLedgerScope) Products() catalog.ProductRepository {
	return new(MockProductRepository)
}

// memoryPurchaseRepository holds a single purchase; reads hand out the live
// aggregate, which is safe because the scope serializes every chain.
type memoryPurchaseRepository struct {
	purchase *trade.Purchase
}

func (r *memoryPurchaseRepository) FindByID(_ context.Context, id uuid.UUID) (*trade.Purchase, error) {
	if r.purchase == nil || r.purchase.ID != id {
		return nil, shared.ErrNotFound
	}
	return r.purchase, nil
}

func (r *memoryPurchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryPurchaseRepository) FindPurchaseIDByItem(_ context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	if r.purchase != nil {
		for i := range r.purchase.Items {
			if r.purchase.Items[i].ID == itemID {
				return r.purchase.ID, nil
			}
		}
	}
	return uuid.Nil, shared.ErrNotFound
}

func (r *memoryPurchaseRepository) FindByPurchaseNumber(_ context.Context, purchaseNumber string) (*trade.Purchase, error) {
	if r.purchase == nil || r.purchase.PurchaseNumber != purchaseNumber {
		return nil, shared.ErrNotFound
	}
	return r.purchase, nil
}

func (r *memoryPurchaseRepository) FindAll(_ context.Context, _ shared.Filter) ([]trade.Purchase, error) {
	if r.purchase == nil {
		return nil, nil
	}
	return []trade.Purchase{*r.purchase}, nil
}

func (r *memoryPurchaseRepository) FindByCustomer(ctx context.Context, _ uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	return r.FindAll(ctx, filter)
}

func (r *memoryPurchaseRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	if r.purchase == nil {
		return 0, nil
	}
	return 1, nil
}

func (r *memoryPurchaseRepository) Save(_ context.Context, purchase *trade.Purchase) error {
	r.purchase = purchase
	return nil
}

func (r *memoryPurchaseRepository) Delete(_ context.Context, id uuid.UUID) error {
	if r.purchase == nil || r.purchase.ID != id {
		return shared.ErrNotFound
	}
	r.purchase = nil
	return nil
}

func (r *memoryPurchaseRepository) ExistsByPurchaseNumber(_ context.Context, purchaseNumber string) (bool, error) {
	return r.purchase != nil && r.purchase.PurchaseNumber == purchaseNumber, nil
}

type memoryCustomerRepository struct {
	customer *partner.Customer
}

func (r *memoryCustomerRepository) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	if r.customer == nil || r.customer.ID != id {
		return nil, shared.ErrNotFound
	}
	return r.customer, nil
}

func (r *memoryCustomerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryCustomerRepository) FindAll(_ context.Context, _ shared.Filter) ([]partner.Customer, error) {
	if r.customer == nil {
		return nil, nil
	}
	return []partner.Customer{*r.customer}, nil
}

func (r *memoryCustomerRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	if r.customer == nil {
		return 0, nil
	}
	return 1, nil
}

func (r *memoryCustomerRepository) Save(_ context.Context, customer *partner.Customer) error {
	r.customer = customer
	return nil
}

func TestPurchaseService_ConcurrentItemUpdates(t *testing.T) {
	ctx := context.Background()

	customer := newTestCustomer(t)
	purchase, err := trade.NewPurchase("PUR-20260828-C0FFEE", customer.ID,
		decimal.RequireFromString("10"), decimal.RequireFromString("5"),
		trade.PaymentMethodCash, time.Now())
	require.NoError(t, err)

	itemA, err := purchase.AddItem(uuid.New(), nil, 1, decimal.RequireFromString("100"), decimal.Zero)
	require.NoError(t, err)
	itemB, err := purchase.AddItem(uuid.New(), nil, 1, decimal.RequireFromString("50"), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, customer.RecordPurchase(purchase.FinalAmount, purchase.PurchaseDate))
	require.Equal(t, "155", customer.TotalSpent.String())

	scope := &serialLedgerScope{
		purchases: &memoryPurchaseRepository{purchase: purchase},
		customers: &memoryCustomerRepository{customer: customer},
	}
	service := NewPurchaseService(scope, zap.NewNop())

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		quantity := 3
		_, errs[0] = service.UpdateItem(ctx, purchase.ID, itemA.ID, UpdateItemRequest{Quantity: &quantity})
	}()
	go func() {
		defer wg.Done()
		quantity := 2
		_, errs[1] = service.UpdateItem(ctx, purchase.ID, itemB.ID, UpdateItemRequest{Quantity: &quantity})
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// neither update is lost: 3x100 + 2x50
	assert.Equal(t, "400", purchase.TotalAmount.String())
	assert.Equal(t, "405", purchase.FinalAmount.String())
	assert.Equal(t, "405", customer.TotalSpent.String())
	assert.Equal(t, 1, customer.TotalPurchases)
}
