package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// PurchaseRepository defines the persistence operations for purchases.
// Purchases are always loaded with their items.
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	// FindByIDForUpdate loads the purchase under an exclusive row lock so
	// that concurrent item mutations on the same purchase serialize their
	// read-modify-write of the totals. Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Purchase, error)
	// FindPurchaseIDByItem resolves the purchase owning the given item
	FindPurchaseIDByItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error)
	FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	// Delete removes the purchase and cascades to its items
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByPurchaseNumber(ctx context.Context, purchaseNumber string) (bool, error)
}
