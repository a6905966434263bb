package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/catalog"
)

// CreateProductRequest carries the inputs for creating a product
type CreateProductRequest struct {
	SKU         string
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Variants    []CreateVariantRequest
}

// CreateVariantRequest carries the inputs for one variant of a new product
type CreateVariantRequest struct {
	Name      string
	SKU       string
	UnitPrice *decimal.Decimal
	Stock     int
}

// UpdateProductRequest carries partial changes to a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string
	Description *string
	UnitPrice   *decimal.Decimal
}

// ProductListFilter carries listing options for products
type ProductListFilter struct {
	Page     int
	PageSize int
	Search   string
	Active   *bool
}

// StockEntry is one line of a bulk stock adjustment
type StockEntry struct {
	VariantID uuid.UUID
	Stock     int
}

// StockEntryResult reports the outcome of one bulk stock entry. Failed
// entries carry the error; they never abort the rest of the batch.
type StockEntryResult struct {
	VariantID uuid.UUID `json:"variant_id"`
	Stock     int       `json:"stock"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// BulkStockResult summarizes a bulk stock adjustment
type BulkStockResult struct {
	Updated int                `json:"updated"`
	Failed  int                `json:"failed"`
	Results []StockEntryResult `json:"results"`
}

// VariantResponse is the outward representation of a product variant
type VariantResponse struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"product_id"`
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Stock     int              `json:"stock"`
}

// ProductResponse is the outward representation of a product
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	SKU         string            `json:"sku"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Active      bool              `json:"active"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ToVariantResponse converts a domain variant to its response form
func ToVariantResponse(variant *catalog.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:        variant.ID,
		ProductID: variant.ProductID,
		Name:      variant.Name,
		SKU:       variant.SKU,
		UnitPrice: variant.UnitPrice,
		Stock:     variant.Stock,
	}
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(product *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(product.Variants))
	for idx := range product.Variants {
		variants = append(variants, ToVariantResponse(&product.Variants[idx]))
	}

	return ProductResponse{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		UnitPrice:   product.UnitPrice,
		Active:      product.Active,
		Variants:    variants,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses
}
