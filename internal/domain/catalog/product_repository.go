package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindVariantByID(ctx context.Context, variantID uuid.UUID) (*ProductVariant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateVariantStock sets a variant's stock in a single atomic UPDATE.
	// Returns shared.ErrNotFound when the variant does not exist.
	UpdateVariantStock(ctx context.Context, variantID uuid.UUID, stock int) error
}
