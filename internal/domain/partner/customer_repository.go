package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// CustomerRepository defines the persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	// FindByIDForUpdate loads the customer under an exclusive row lock.
	// Must be called inside a transaction; the lock is held until commit or
	// rollback. Required for every statistics mutation because the rollup is
	// an additive read-modify-write, not an idempotent overwrite.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, customer *Customer) error
}
