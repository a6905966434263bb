package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

func newMockPurchaseRepository(t *testing.T) (*GormPurchaseRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPurchaseRepository(gormDB), mock, mockDB
}

func purchaseRows(purchaseID, customerID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "purchase_number", "customer_id", "total_amount", "discount_amount",
		"tax_amount", "final_amount", "payment_method", "status", "purchase_date",
	}).AddRow(
		purchaseID, "PUR-20260828-A1B2C3", customerID,
		decimal.RequireFromString("180"), decimal.RequireFromString("5"),
		decimal.RequireFromString("10"), decimal.RequireFromString("185"),
		"cash", "pending", time.Now(),
	)
}

func TestGormPurchaseRepository_FindByID(t *testing.T) {
	t.Run("loads purchase with items", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		purchaseID := uuid.New()
		customerID := uuid.New()
		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "purchases" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(purchaseID, 1).
			WillReturnRows(purchaseRows(purchaseID, customerID))

		itemRows := sqlmock.NewRows([]string{"id", "purchase_id", "product_id", "quantity", "unit_price", "subtotal"}).
			AddRow(itemID, purchaseID, uuid.New(), 2, decimal.RequireFromString("100"), decimal.RequireFromString("180"))
		mock.ExpectQuery(`SELECT \* FROM "purchase_items" WHERE "purchase_items"."purchase_id" = \$1`).
			WithArgs(purchaseID).
			WillReturnRows(itemRows)

		purchase, err := repo.FindByID(context.Background(), purchaseID)

		require.NoError(t, err)
		assert.Equal(t, "PUR-20260828-A1B2C3", purchase.PurchaseNumber)
		require.Len(t, purchase.Items, 1)
		assert.Equal(t, itemID, purchase.Items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing purchase is not found", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		purchaseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "purchases" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(purchaseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), purchaseID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormPurchaseRepository_FindByIDForUpdate(t *testing.T) {
	repo, mock, mockDB := newMockPurchaseRepository(t)
	defer mockDB.Close()

	purchaseID := uuid.New()
	customerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "purchases" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(purchaseID, 1).
		WillReturnRows(purchaseRows(purchaseID, customerID))
	mock.ExpectQuery(`SELECT \* FROM "purchase_items" WHERE purchase_id = \$1 ORDER BY created_at ASC`).
		WithArgs(purchaseID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "purchase_id"}))

	purchase, err := repo.FindByIDForUpdate(context.Background(), purchaseID)

	require.NoError(t, err)
	assert.Equal(t, purchaseID, purchase.ID)
	assert.Empty(t, purchase.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPurchaseRepository_FindPurchaseIDByItem(t *testing.T) {
	t.Run("resolves the owning purchase", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		purchaseID := uuid.New()

		mock.ExpectQuery(`SELECT "purchase_id" FROM "purchase_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"purchase_id"}).AddRow(purchaseID))

		got, err := repo.FindPurchaseIDByItem(context.Background(), itemID)

		require.NoError(t, err)
		assert.Equal(t, purchaseID, got)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT "purchase_id" FROM "purchase_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindPurchaseIDByItem(context.Background(), itemID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormPurchaseRepository_ExistsByPurchaseNumber(t *testing.T) {
	repo, mock, mockDB := newMockPurchaseRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "purchases" WHERE purchase_number = \$1`).
		WithArgs("PUR-20260828-A1B2C3").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByPurchaseNumber(context.Background(), "PUR-20260828-A1B2C3")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
