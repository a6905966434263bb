package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// ProductService manages the product catalog and the stock adjustment path.
// Stock changes are absolute set operations; nothing in the purchase ledger
// ever decrements stock implicitly.
type ProductService struct {
	repo   catalog.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(repo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// CreateProduct creates a product, optionally with initial variants
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.repo.FindBySKU(ctx, req.SKU)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := product.Update(req.Name, req.Description, req.UnitPrice); err != nil {
			return nil, err
		}
	}
	for _, variant := range req.Variants {
		if _, err := product.AddVariant(variant.Name, variant.SKU, variant.UnitPrice, variant.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct loads a product with its variants
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateProduct applies partial changes to a product's basic information
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	unitPrice := product.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	if err := product.Update(name, description, unitPrice); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AddVariant adds a variant to an existing product
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, req CreateVariantRequest) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := product.AddVariant(req.Name, req.SKU, req.UnitPrice, req.Stock); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// DeleteProduct removes a product and its variants
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

// ListProducts returns a page of products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductResponses(products), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// SetVariantStock sets one variant's stock to an absolute value
func (s *ProductService) SetVariantStock(ctx context.Context, variantID uuid.UUID, stock int) error {
	if stock < 0 {
		return shared.NewValidationError("stock", "Stock cannot be negative")
	}
	return s.repo.UpdateVariantStock(ctx, variantID, stock)
}

// BulkSetStock applies a batch of absolute stock updates. Each entry is its
// own atomic update; a failed entry is reported in the result and the batch
// moves on to the next one. The batch itself never fails.
func (s *ProductService) BulkSetStock(ctx context.Context, entries []StockEntry) *BulkStockResult {
	result := &BulkStockResult{
		Results: make([]StockEntryResult, 0, len(entries)),
	}

	for _, entry := range entries {
		entryResult := StockEntryResult{
			VariantID: entry.VariantID,
			Stock:     entry.Stock,
		}

		err := s.SetVariantStock(ctx, entry.VariantID, entry.Stock)
		if err != nil {
			entryResult.Error = err.Error()
			result.Failed++
			s.logger.Warn("bulk stock entry failed",
				zap.String("variant_id", entry.VariantID.String()),
				zap.Int("stock", entry.Stock),
				zap.Error(err))
		} else {
			entryResult.Success = true
			result.Updated++
		}

		result.Results = append(result.Results, entryResult)
	}

	s.logger.Info("bulk stock adjustment finished",
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))

	return result
}
