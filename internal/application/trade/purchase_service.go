package trade

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
)

const purchaseNumberAttempts = 5

// PurchaseService orchestrates the purchase ledger: every item mutation runs
// the full propagation chain (item pricing -> purchase totals -> customer
// statistics) inside one transaction, with the purchase and customer rows
// locked for the duration of the read-modify-write.
type PurchaseService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope TransactionScope, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		scope:  scope,
		logger: logger,
	}
}

// CreatePurchase creates an empty purchase for a customer and records it on
// the customer's lifetime statistics. The customer must exist and be active.
func (s *PurchaseService) CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.Customers().FindByIDForUpdate(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsActive() {
			return shared.NewDomainError(shared.CodeInvalidState, "Cannot create a purchase for an inactive customer")
		}

		purchaseNumber := strings.TrimSpace(req.PurchaseNumber)
		if purchaseNumber == "" {
			purchaseNumber, err = s.generatePurchaseNumber(ctx, repos.Purchases())
			if err != nil {
				return err
			}
		} else {
			exists, err := repos.Purchases().ExistsByPurchaseNumber(ctx, purchaseNumber)
			if err != nil {
				return err
			}
			if exists {
				return shared.ErrAlreadyExists
			}
		}

		purchaseDate := time.Now()
		if req.PurchaseDate != nil {
			purchaseDate = *req.PurchaseDate
		}

		purchase, err := trade.NewPurchase(purchaseNumber, req.CustomerID, req.TaxAmount, req.DiscountAmount, req.PaymentMethod, purchaseDate)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			purchase.SetNotes(req.Notes)
		}

		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		if err := customer.RecordPurchase(purchase.FinalAmount, purchase.PurchaseDate); err != nil {
			return err
		}
		if err := repos.Customers().Save(ctx, customer); err != nil {
			return err
		}

		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("purchase_id", response.ID.String()),
		zap.String("purchase_number", response.PurchaseNumber),
		zap.String("customer_id", response.CustomerID.String()))

	return response, nil
}

// GetPurchase loads a purchase with its items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// GetPurchaseByNumber loads a purchase by its human-facing number
func (s *PurchaseService) GetPurchaseByNumber(ctx context.Context, purchaseNumber string) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByPurchaseNumber(ctx, purchaseNumber)
		if err != nil {
			return err
		}
		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// ListPurchases returns a page of purchases matching the filter
func (s *PurchaseService) ListPurchases(ctx context.Context, filter PurchaseListFilter) (*shared.Paginated[PurchaseResponse], error) {
	domainFilter := toDomainFilter(filter)

	var page *shared.Paginated[PurchaseResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var (
			purchases []trade.Purchase
			err       error
		)
		if filter.CustomerID != nil {
			purchases, err = repos.Purchases().FindByCustomer(ctx, *filter.CustomerID, domainFilter)
		} else {
			purchases, err = repos.Purchases().FindAll(ctx, domainFilter)
		}
		if err != nil {
			return err
		}

		total, err := repos.Purchases().Count(ctx, domainFilter)
		if err != nil {
			return err
		}

		result := shared.NewPaginated(ToPurchaseResponses(purchases), total, domainFilter.Page, domainFilter.PageSize)
		page = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// AddItem appends a line item to a purchase and propagates the new totals to
// the customer's lifetime spend. The variant, when given, must belong to the
// item's product.
func (s *PurchaseService) AddItem(ctx context.Context, purchaseID uuid.UUID, req AddItemRequest) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}

		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			if shared.IsNotFound(err) {
				return shared.NewNotFoundError("product_id", "Product does not exist")
			}
			return err
		}
		if req.VariantID != nil && !product.HasVariant(*req.VariantID) {
			return shared.NewReferentialError("variant_id", "Variant does not belong to the product")
		}

		oldFinal := purchase.FinalAmount
		if _, err := purchase.AddItem(req.ProductID, req.VariantID, req.Quantity, req.UnitPrice, req.DiscountPercentage); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		if err := s.propagateSpendDelta(ctx, repos, purchase, oldFinal); err != nil {
			return err
		}

		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// UpdateItem applies changed pricing fields to a line item and propagates the
// total change. The item must belong to the stated purchase. When nothing
// pricing-relevant changes the call is a no-op and causes no writes.
func (s *PurchaseService) UpdateItem(ctx context.Context, purchaseID, itemID uuid.UUID, req UpdateItemRequest) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.verifyItemOwnership(ctx, repos, purchaseID, itemID); err != nil {
			return err
		}

		purchase, err := repos.Purchases().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}

		oldFinal := purchase.FinalAmount
		changed, err := purchase.UpdateItem(itemID, req.Quantity, req.UnitPrice, req.DiscountPercentage)
		if err != nil {
			return err
		}
		if !changed {
			resp := ToPurchaseResponse(purchase)
			response = &resp
			return nil
		}

		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		if err := s.propagateSpendDelta(ctx, repos, purchase, oldFinal); err != nil {
			return err
		}

		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// DeleteItem removes a line item from the stated purchase and propagates the
// total change
func (s *PurchaseService) DeleteItem(ctx context.Context, purchaseID, itemID uuid.UUID) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.verifyItemOwnership(ctx, repos, purchaseID, itemID); err != nil {
			return err
		}

		purchase, err := repos.Purchases().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}

		oldFinal := purchase.FinalAmount
		if err := purchase.RemoveItem(itemID); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		if err := s.propagateSpendDelta(ctx, repos, purchase, oldFinal); err != nil {
			return err
		}

		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// UpdateAmounts applies direct edits to the purchase-level tax/discount and
// propagates the resulting final amount change
func (s *PurchaseService) UpdateAmounts(ctx context.Context, purchaseID uuid.UUID, req UpdatePurchaseAmountsRequest) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}

		oldFinal := purchase.FinalAmount
		if err := purchase.SetAmounts(req.TaxAmount, req.DiscountAmount); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		if err := s.propagateSpendDelta(ctx, repos, purchase, oldFinal); err != nil {
			return err
		}

		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// UpdateStatus transitions the purchase status. Status has no monetary
// effect, so no propagation happens here.
func (s *PurchaseService) UpdateStatus(ctx context.Context, purchaseID uuid.UUID, status trade.PurchaseStatus) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := purchase.SetStatus(status); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		resp := ToPurchaseResponse(purchase)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// DeletePurchase removes a purchase with its items and reverses its
// contribution to the customer's lifetime statistics
func (s *PurchaseService) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := repos.Purchases().Delete(ctx, purchaseID); err != nil {
			return err
		}

		customer, err := repos.Customers().FindByIDForUpdate(ctx, purchase.CustomerID)
		if err != nil {
			return err
		}
		if clamped := customer.ReversePurchase(purchase.FinalAmount); clamped {
			s.logger.Error("customer statistics clamped at zero while reversing a purchase",
				zap.String("customer_id", customer.ID.String()),
				zap.String("purchase_id", purchaseID.String()),
				zap.String("final_amount", purchase.FinalAmount.String()))
		}
		return repos.Customers().Save(ctx, customer)
	})
	if err != nil {
		return err
	}

	s.logger.Info("purchase deleted", zap.String("purchase_id", purchaseID.String()))
	return nil
}

// verifyItemOwnership resolves the purchase owning the item and rejects the
// call when it is not the purchase the caller addressed. Without this check a
// mismatched purchase ID would silently operate on the item's real parent.
func (s *PurchaseService) verifyItemOwnership(ctx context.Context, repos TransactionalRepositories, purchaseID, itemID uuid.UUID) error {
	ownerID, err := repos.Purchases().FindPurchaseIDByItem(ctx, itemID)
	if err != nil {
		return err
	}
	if ownerID != purchaseID {
		return shared.NewNotFoundError("item_id", "Item does not belong to the purchase")
	}
	return nil
}

// propagateSpendDelta pushes a changed purchase final amount into the owning
// customer's lifetime spend. The customer row is locked so concurrent deltas
// for the same customer serialize. A clamp means the stored statistics were
// already inconsistent; it is logged and the write proceeds.
func (s *PurchaseService) propagateSpendDelta(ctx context.Context, repos TransactionalRepositories, purchase *trade.Purchase, oldFinal decimal.Decimal) error {
	delta := purchase.FinalAmount.Sub(oldFinal)
	if delta.IsZero() {
		return nil
	}

	customer, err := repos.Customers().FindByIDForUpdate(ctx, purchase.CustomerID)
	if err != nil {
		return err
	}
	if clamped := customer.ApplySpendDelta(delta); clamped {
		s.logger.Error("customer lifetime spend clamped at zero",
			zap.String("customer_id", customer.ID.String()),
			zap.String("purchase_id", purchase.ID.String()),
			zap.String("delta", delta.String()))
	}

	return repos.Customers().Save(ctx, customer)
}

// generatePurchaseNumber produces a date-prefixed number with a random suffix
// and retries on the (unlikely) collision with an existing purchase.
func (s *PurchaseService) generatePurchaseNumber(ctx context.Context, repo trade.PurchaseRepository) (string, error) {
	for attempt := 0; attempt < purchaseNumberAttempts; attempt++ {
		suffix := make([]byte, 3)
		if _, err := rand.Read(suffix); err != nil {
			return "", fmt.Errorf("generating purchase number: %w", err)
		}
		candidate := fmt.Sprintf("PUR-%s-%s", time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))

		exists, err := repo.ExistsByPurchaseNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError(shared.CodeConsistencyViolation, "Could not generate a unique purchase number")
}

func toDomainFilter(filter PurchaseListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "purchase_date"
	domainFilter.OrderDir = "desc"

	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	return domainFilter
}
