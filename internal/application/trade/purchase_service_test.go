package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/partner"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
)

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindPurchaseIDByItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*trade.Purchase, error) {
	args := m.Called(ctx, purchaseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ExistsByPurchaseNumber(ctx context.Context, purchaseNumber string) (bool, error) {
	args := m.Called(ctx, purchaseNumber)
	return args.Bool(0), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariantByID(ctx context.Context, variantID uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateVariantStock(ctx context.Context, variantID uuid.UUID, stock int) error {
	args := m.Called(ctx, variantID, stock)
	return args.Error(0)
}

type serviceMocks struct {
	purchases *MockPurchaseRepository
	customers *MockCustomerRepository
	products  *MockProductRepository
}

func newTestPurchaseService(t *testing.T) (*PurchaseService, serviceMocks) {
	t.Helper()
	mocks := serviceMocks{
		purchases: new(MockPurchaseRepository),
		customers: new(MockCustomerRepository),
		products:  new(MockProductRepository),
	}
	scope := NewNoOpTransactionScope(mocks.purchases, mocks.customers, mocks.products)
	return NewPurchaseService(scope, zap.NewNop()), mocks
}

func newTestCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Acme Traders", partner.CustomerTagRegular)
	require.NoError(t, err)
	return customer
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("WID-100", "Widget", decimal.RequireFromString("100"))
	require.NoError(t, err)
	return product
}

// newLedgerPurchase builds a purchase with tax 10, discount 5 and one item
// of 100 x 2 at 10% discount, i.e. totals 180 / final 185.
func newLedgerPurchase(t *testing.T, customerID, productID uuid.UUID) (*trade.Purchase, *trade.PurchaseItem) {
	t.Helper()
	purchase, err := trade.NewPurchase("PUR-20260828-A1B2C3", customerID,
		decimal.RequireFromString("10"), decimal.RequireFromString("5"),
		trade.PaymentMethodCash, time.Now())
	require.NoError(t, err)

	item, err := purchase.AddItem(productID, nil, 2, decimal.RequireFromString("100"), decimal.RequireFromString("10"))
	require.NoError(t, err)
	return purchase, item
}

func TestPurchaseService_CreatePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates purchase and records it on the customer", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.purchases.On("ExistsByPurchaseNumber", ctx, mock.AnythingOfType("string")).Return(false, nil)
		mocks.purchases.On("Save", ctx, mock.AnythingOfType("*trade.Purchase")).Return(nil)
		mocks.customers.On("Save", ctx, customer).Return(nil)

		response, err := service.CreatePurchase(ctx, CreatePurchaseRequest{
			CustomerID:     customer.ID,
			TaxAmount:      decimal.RequireFromString("10"),
			DiscountAmount: decimal.RequireFromString("5"),
			PaymentMethod:  trade.PaymentMethodCard,
		})
		require.NoError(t, err)

		assert.Regexp(t, `^PUR-\d{8}-[0-9A-F]{6}$`, response.PurchaseNumber)
		assert.Equal(t, "5", response.FinalAmount.String())
		assert.Equal(t, 1, customer.TotalPurchases)
		assert.Equal(t, "5", customer.TotalSpent.String())
		assert.NotNil(t, customer.LastPurchaseDate)
		mocks.purchases.AssertExpectations(t)
		mocks.customers.AssertExpectations(t)
	})

	t.Run("rejects inactive customer", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)
		require.NoError(t, customer.Deactivate())

		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)

		_, err := service.CreatePurchase(ctx, CreatePurchaseRequest{CustomerID: customer.ID})
		require.Error(t, err)
		assert.True(t, shared.HasCode(err, shared.CodeInvalidState))
		mocks.purchases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate explicit purchase number", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.purchases.On("ExistsByPurchaseNumber", ctx, "PUR-DUP").Return(true, nil)

		_, err := service.CreatePurchase(ctx, CreatePurchaseRequest{
			CustomerID:     customer.ID,
			PurchaseNumber: "PUR-DUP",
		})
		require.Error(t, err)
		assert.True(t, shared.HasCode(err, shared.CodeAlreadyExists))
	})

	t.Run("propagates customer lookup failure", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customerID := uuid.New()

		mocks.customers.On("FindByIDForUpdate", ctx, customerID).Return(nil, shared.ErrNotFound)

		_, err := service.CreatePurchase(ctx, CreatePurchaseRequest{CustomerID: customerID})
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestPurchaseService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds item and propagates spend delta", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)
		product := newTestProduct(t)

		purchase, err := trade.NewPurchase("PUR-20260828-A1B2C3", customer.ID,
			decimal.RequireFromString("10"), decimal.RequireFromString("5"),
			trade.PaymentMethodCash, time.Now())
		require.NoError(t, err)
		require.NoError(t, customer.RecordPurchase(purchase.FinalAmount, purchase.PurchaseDate))

		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.products.On("FindByID", ctx, product.ID).Return(product, nil)
		mocks.purchases.On("Save", ctx, purchase).Return(nil)
		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.customers.On("Save", ctx, customer).Return(nil)

		response, err := service.AddItem(ctx, purchase.ID, AddItemRequest{
			ProductID:          product.ID,
			Quantity:           2,
			UnitPrice:          decimal.RequireFromString("100"),
			DiscountPercentage: decimal.RequireFromString("10"),
		})
		require.NoError(t, err)

		assert.Equal(t, "180", response.TotalAmount.String())
		assert.Equal(t, "185", response.FinalAmount.String())
		require.Len(t, response.Items, 1)
		assert.Equal(t, "20", response.Items[0].DiscountAmount.String())
		assert.Equal(t, "180", response.Items[0].Subtotal.String())

		// customer started at 5; delta of +180 lands at 185
		assert.Equal(t, "185", customer.TotalSpent.String())
		assert.Equal(t, 1, customer.TotalPurchases)
	})

	t.Run("missing product surfaces not found", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)
		productID := uuid.New()

		purchase, _ := newLedgerPurchase(t, customer.ID, uuid.New())

		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.products.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := service.AddItem(ctx, purchase.ID, AddItemRequest{
			ProductID: productID,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
		mocks.purchases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		mocks.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("variant of another product is a referential violation", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)
		product := newTestProduct(t)
		foreignVariantID := uuid.New()

		purchase, _ := newLedgerPurchase(t, customer.ID, product.ID)

		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.products.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.AddItem(ctx, purchase.ID, AddItemRequest{
			ProductID: product.ID,
			VariantID: &foreignVariantID,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.True(t, shared.HasCode(err, shared.CodeReferentialViolation))
		mocks.purchases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPurchaseService_UpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity change re-aggregates and propagates the delta", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)
		product := newTestProduct(t)

		purchase, item := newLedgerPurchase(t, customer.ID, product.ID)
		require.NoError(t, customer.RecordPurchase(purchase.FinalAmount, purchase.PurchaseDate))
		require.Equal(t, "185", customer.TotalSpent.String())

		mocks.purchases.On("FindPurchaseIDByItem", ctx, item.ID).Return(purchase.ID, nil)
		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.purchases.On("Save", ctx, purchase).Return(nil)
		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.customers.On("Save", ctx, customer).Return(nil)

		quantity := 3
		response, err := service.UpdateItem(ctx, purchase.ID, item.ID, UpdateItemRequest{Quantity: &quantity})
		require.NoError(t, err)

		assert.Equal(t, "270", response.TotalAmount.String())
		assert.Equal(t, "275", response.FinalAmount.String())
		assert.Equal(t, "275", customer.TotalSpent.String())
		assert.Equal(t, 1, customer.TotalPurchases)
	})

	t.Run("no-op update causes no writes", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, item := newLedgerPurchase(t, customer.ID, uuid.New())

		mocks.purchases.On("FindPurchaseIDByItem", ctx, item.ID).Return(purchase.ID, nil)
		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)

		sameQuantity := 2
		samePrice := decimal.RequireFromString("100.00")
		response, err := service.UpdateItem(ctx, purchase.ID, item.ID, UpdateItemRequest{
			Quantity:  &sameQuantity,
			UnitPrice: &samePrice,
		})
		require.NoError(t, err)

		assert.Equal(t, "185", response.FinalAmount.String())
		mocks.purchases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		mocks.customers.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
		mocks.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown item surfaces not found", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		purchaseID := uuid.New()
		itemID := uuid.New()

		mocks.purchases.On("FindPurchaseIDByItem", ctx, itemID).Return(uuid.Nil, shared.ErrNotFound)

		quantity := 1
		_, err := service.UpdateItem(ctx, purchaseID, itemID, UpdateItemRequest{Quantity: &quantity})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("item of another purchase surfaces not found", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, item := newLedgerPurchase(t, customer.ID, uuid.New())

		mocks.purchases.On("FindPurchaseIDByItem", ctx, item.ID).Return(purchase.ID, nil)

		quantity := 3
		_, err := service.UpdateItem(ctx, uuid.New(), item.ID, UpdateItemRequest{Quantity: &quantity})
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
		mocks.purchases.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
		mocks.purchases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repository failure rolls back through the scope", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, item := newLedgerPurchase(t, customer.ID, uuid.New())
		saveErr := errors.New("connection reset")

		mocks.purchases.On("FindPurchaseIDByItem", ctx, item.ID).Return(purchase.ID, nil)
		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.purchases.On("Save", ctx, purchase).Return(saveErr)

		quantity := 3
		_, err := service.UpdateItem(ctx, purchase.ID, item.ID, UpdateItemRequest{Quantity: &quantity})
		assert.ErrorIs(t, err, saveErr)
		mocks.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPurchaseService_DeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removes item and propagates the negative delta", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, item := newLedgerPurchase(t, customer.ID, uuid.New())
		quantity := 3
		_, err := purchase.UpdateItem(item.ID, &quantity, nil, nil)
		require.NoError(t, err)
		require.NoError(t, customer.RecordPurchase(purchase.FinalAmount, purchase.PurchaseDate))
		require.Equal(t, "275", customer.TotalSpent.String())

		mocks.purchases.On("FindPurchaseIDByItem", ctx, item.ID).Return(purchase.ID, nil)
		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.purchases.On("Save", ctx, purchase).Return(nil)
		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.customers.On("Save", ctx, customer).Return(nil)

		response, err := service.DeleteItem(ctx, purchase.ID, item.ID)
		require.NoError(t, err)

		assert.Empty(t, response.Items)
		assert.Equal(t, "0", response.TotalAmount.String())
		assert.Equal(t, "5", response.FinalAmount.String())
		// spend follows the final amount down: 275 - 270 = 5
		assert.Equal(t, "5", customer.TotalSpent.String())
		assert.Equal(t, 1, customer.TotalPurchases)
	})

	t.Run("clamps inconsistent spend at zero and still saves", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, item := newLedgerPurchase(t, customer.ID, uuid.New())
		// customer statistics drifted below the purchase's contribution
		require.NoError(t, customer.RecordPurchase(decimal.NewFromInt(10), purchase.PurchaseDate))

		mocks.purchases.On("FindPurchaseIDByItem", ctx, item.ID).Return(purchase.ID, nil)
		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.purchases.On("Save", ctx, purchase).Return(nil)
		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.customers.On("Save", ctx, customer).Return(nil)

		_, err := service.DeleteItem(ctx, purchase.ID, item.ID)
		require.NoError(t, err)

		assert.True(t, customer.TotalSpent.IsZero())
		mocks.customers.AssertExpectations(t)
	})
}

func TestPurchaseService_UpdateAmounts(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects discount driving the final amount negative", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, _ := newLedgerPurchase(t, customer.ID, uuid.New())

		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)

		discount := decimal.RequireFromString("500")
		_, err := service.UpdateAmounts(ctx, purchase.ID, UpdatePurchaseAmountsRequest{DiscountAmount: &discount})
		require.Error(t, err)
		assert.True(t, shared.HasCode(err, shared.CodeNegativeAmount))
		assert.Equal(t, "185", purchase.FinalAmount.String())
		mocks.purchases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("tax change propagates to customer spend", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, _ := newLedgerPurchase(t, customer.ID, uuid.New())
		require.NoError(t, customer.RecordPurchase(purchase.FinalAmount, purchase.PurchaseDate))

		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.purchases.On("Save", ctx, purchase).Return(nil)
		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.customers.On("Save", ctx, customer).Return(nil)

		tax := decimal.RequireFromString("20")
		response, err := service.UpdateAmounts(ctx, purchase.ID, UpdatePurchaseAmountsRequest{TaxAmount: &tax})
		require.NoError(t, err)

		assert.Equal(t, "195", response.FinalAmount.String())
		assert.Equal(t, "195", customer.TotalSpent.String())
	})
}

func TestPurchaseService_DeletePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses the customer statistics", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)

		purchase, _ := newLedgerPurchase(t, customer.ID, uuid.New())
		require.NoError(t, customer.RecordPurchase(purchase.FinalAmount, purchase.PurchaseDate))

		mocks.purchases.On("FindByIDForUpdate", ctx, purchase.ID).Return(purchase, nil)
		mocks.purchases.On("Delete", ctx, purchase.ID).Return(nil)
		mocks.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		mocks.customers.On("Save", ctx, customer).Return(nil)

		require.NoError(t, service.DeletePurchase(ctx, purchase.ID))

		assert.Equal(t, 0, customer.TotalPurchases)
		assert.True(t, customer.TotalSpent.IsZero())
		mocks.purchases.AssertExpectations(t)
	})

	t.Run("unknown purchase", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		purchaseID := uuid.New()

		mocks.purchases.On("FindByIDForUpdate", ctx, purchaseID).Return(nil, shared.ErrNotFound)

		err := service.DeletePurchase(ctx, purchaseID)
		assert.True(t, shared.IsNotFound(err))
		mocks.purchases.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPurchaseService_ListPurchases(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by customer when given", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)
		customer := newTestCustomer(t)
		purchase, _ := newLedgerPurchase(t, customer.ID, uuid.New())

		mocks.purchases.On("FindByCustomer", ctx, customer.ID, mock.AnythingOfType("shared.Filter")).Return([]trade.Purchase{*purchase}, nil)
		mocks.purchases.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

		page, err := service.ListPurchases(ctx, PurchaseListFilter{CustomerID: &customer.ID})
		require.NoError(t, err)

		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, purchase.PurchaseNumber, page.Items[0].PurchaseNumber)
	})

	t.Run("lists all otherwise", func(t *testing.T) {
		service, mocks := newTestPurchaseService(t)

		mocks.purchases.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]trade.Purchase{}, nil)
		mocks.purchases.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		page, err := service.ListPurchases(ctx, PurchaseListFilter{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}
