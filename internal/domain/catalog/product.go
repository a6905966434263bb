package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// ProductVariant is a sellable variation of a product (size, color, pack).
// Stock lives on the variant; it is adjusted only through the explicit stock
// adjustment path, never as a side effect of purchase creation.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	SKU       string    `gorm:"type:varchar(50)"`
	// UnitPrice overrides the product price when set
	UnitPrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Stock     int              `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// SetStock sets the variant's stock level to an absolute value
func (v *ProductVariant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewValidationError("stock", "Stock cannot be negative")
	}

	v.Stock = stock
	v.UpdatedAt = time.Now()

	return nil
}

// Product is the aggregate root for catalog entries. Products are referenced,
// not owned, by purchase items.
type Product struct {
	shared.BaseAggregateRoot
	SKU         string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string           `gorm:"type:varchar(200);not null"`
	Description string           `gorm:"type:text"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Active      bool             `gorm:"not null;default:true"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields
func NewProduct(sku, name string, unitPrice decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("name", "Product name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("unit_price", "Unit price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		UnitPrice:         unitPrice,
		Active:            true,
		Variants:          make([]ProductVariant, 0),
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string, unitPrice decimal.Decimal) error {
	if name == "" {
		return shared.NewValidationError("name", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Product name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("unit_price", "Unit price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddVariant adds a new variant to the product
func (p *Product) AddVariant(name, sku string, unitPrice *decimal.Decimal, stock int) (*ProductVariant, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "Variant name cannot be empty")
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return nil, shared.NewValidationError("unit_price", "Variant price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewValidationError("stock", "Stock cannot be negative")
	}

	now := time.Now()
	variant := ProductVariant{
		ID:        uuid.New(),
		ProductID: p.ID,
		Name:      name,
		SKU:       strings.ToUpper(sku),
		UnitPrice: unitPrice,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	p.Variants = append(p.Variants, variant)
	p.UpdatedAt = now
	p.IncrementVersion()

	return &p.Variants[len(p.Variants)-1], nil
}

// HasVariant reports whether the variant belongs to this product
func (p *Product) HasVariant(variantID uuid.UUID) bool {
	for idx := range p.Variants {
		if p.Variants[idx].ID == variantID {
			return true
		}
	}
	return false
}

// Variant returns a variant by its ID, or nil
func (p *Product) Variant(variantID uuid.UUID) *ProductVariant {
	for idx := range p.Variants {
		if p.Variants[idx].ID == variantID {
			return &p.Variants[idx]
		}
	}
	return nil
}

// Activate activates the product
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate deactivates the product
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewValidationError("sku", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewValidationError("sku", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewValidationError("sku", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
