package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// PaymentMethod represents how a purchase was paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCredit       PaymentMethod = "credit"
)

// IsValid checks if the value is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodBankTransfer, PaymentMethodCredit:
		return true
	}
	return false
}

// PurchaseStatus represents the status of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// IsValid checks if the value is a known PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusCompleted, PurchaseStatusCancelled:
		return true
	}
	return false
}

// PurchaseItem is one line of a purchase. DiscountAmount and Subtotal are
// derived by the pricing calculator and stored rounded to two decimals.
type PurchaseItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PurchaseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariantID  *uuid.UUID `gorm:"type:uuid"`
	Quantity   int        `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a line item with derived pricing fields computed
func NewPurchaseItem(purchaseID, productID uuid.UUID, variantID *uuid.UUID, quantity int, unitPrice, discountPercentage decimal.Decimal) (*PurchaseItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "Product ID cannot be empty")
	}

	discountAmount, subtotal, err := ComputeItemPricing(unitPrice, quantity, discountPercentage)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &PurchaseItem{
		ID:                 uuid.New(),
		PurchaseID:         purchaseID,
		ProductID:          productID,
		VariantID:          variantID,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		DiscountPercentage: discountPercentage,
		DiscountAmount:     discountAmount,
		Subtotal:           subtotal,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// ApplyPricing recomputes the derived fields from new pricing inputs
func (i *PurchaseItem) ApplyPricing(quantity int, unitPrice, discountPercentage decimal.Decimal) error {
	discountAmount, subtotal, err := ComputeItemPricing(unitPrice, quantity, discountPercentage)
	if err != nil {
		return err
	}

	i.Quantity = quantity
	i.UnitPrice = unitPrice
	i.DiscountPercentage = discountPercentage
	i.DiscountAmount = discountAmount
	i.Subtotal = subtotal
	i.UpdatedAt = time.Now()

	return nil
}

// Purchase is the aggregate root for one customer transaction. It owns its
// line items (cascade delete) and keeps the derived monetary totals:
//
//	TotalAmount == sum of item subtotals
//	FinalAmount == TotalAmount + TaxAmount - DiscountAmount, never negative
type Purchase struct {
	shared.BaseAggregateRoot
	PurchaseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items          []PurchaseItem  `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'"`
	Status         PurchaseStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	PurchaseDate   time.Time       `gorm:"not null"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a purchase with no items yet. The initial final amount
// is derived from a zero total, so tax must cover the purchase-level discount
// or the creation is rejected.
func NewPurchase(purchaseNumber string, customerID uuid.UUID, taxAmount, discountAmount decimal.Decimal, method PaymentMethod, purchaseDate time.Time) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewValidationError("purchase_number", "Purchase number cannot be empty")
	}
	if len(purchaseNumber) > 50 {
		return nil, shared.NewValidationError("purchase_number", "Purchase number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "Customer ID cannot be empty")
	}
	if taxAmount.IsNegative() {
		return nil, shared.NewValidationError("tax_amount", "Tax amount cannot be negative")
	}
	if discountAmount.IsNegative() {
		return nil, shared.NewValidationError("discount_amount", "Discount amount cannot be negative")
	}
	if method == "" {
		method = PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("payment_method", "Invalid payment method")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	final, err := ComputePurchaseFinal(decimal.Zero, taxAmount, discountAmount)
	if err != nil {
		return nil, err
	}

	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseNumber:    purchaseNumber,
		CustomerID:        customerID,
		Items:             make([]PurchaseItem, 0),
		TotalAmount:       decimal.Zero,
		DiscountAmount:    discountAmount,
		TaxAmount:         taxAmount,
		FinalAmount:       final,
		PaymentMethod:     method,
		Status:            PurchaseStatusPending,
		PurchaseDate:      purchaseDate,
	}, nil
}

// AddItem appends a new line item and re-aggregates the purchase totals.
// On failure the purchase is left unchanged.
func (p *Purchase) AddItem(productID uuid.UUID, variantID *uuid.UUID, quantity int, unitPrice, discountPercentage decimal.Decimal) (*PurchaseItem, error) {
	item, err := NewPurchaseItem(p.ID, productID, variantID, quantity, unitPrice, discountPercentage)
	if err != nil {
		return nil, err
	}

	total := p.sumSubtotals().Add(item.Subtotal)
	final, err := ComputePurchaseFinal(total, p.TaxAmount, p.DiscountAmount)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.applyTotals(total, final)

	return &p.Items[len(p.Items)-1], nil
}

// UpdateItem applies changed pricing fields to an existing item and
// re-aggregates. Returns changed=false without touching the purchase when
// none of the pricing-relevant values differ from the stored ones, so
// no-op updates never cause redundant writes upstream.
func (p *Purchase) UpdateItem(itemID uuid.UUID, quantity *int, unitPrice, discountPercentage *decimal.Decimal) (changed bool, err error) {
	idx := p.itemIndex(itemID)
	if idx < 0 {
		return false, shared.NewDomainError(shared.CodeNotFound, "Purchase item not found")
	}
	item := &p.Items[idx]

	newQuantity := item.Quantity
	if quantity != nil {
		newQuantity = *quantity
	}
	newUnitPrice := item.UnitPrice
	if unitPrice != nil {
		newUnitPrice = *unitPrice
	}
	newDiscountPct := item.DiscountPercentage
	if discountPercentage != nil {
		newDiscountPct = *discountPercentage
	}

	if newQuantity == item.Quantity && newUnitPrice.Equal(item.UnitPrice) && newDiscountPct.Equal(item.DiscountPercentage) {
		return false, nil
	}

	discountAmount, subtotal, err := ComputeItemPricing(newUnitPrice, newQuantity, newDiscountPct)
	if err != nil {
		return false, err
	}

	total := p.sumSubtotals().Sub(item.Subtotal).Add(subtotal)
	final, err := ComputePurchaseFinal(total, p.TaxAmount, p.DiscountAmount)
	if err != nil {
		return false, err
	}

	item.Quantity = newQuantity
	item.UnitPrice = newUnitPrice
	item.DiscountPercentage = newDiscountPct
	item.DiscountAmount = discountAmount
	item.Subtotal = subtotal
	item.UpdatedAt = time.Now()
	p.applyTotals(total, final)

	return true, nil
}

// RemoveItem removes a line item and re-aggregates over the remaining set
func (p *Purchase) RemoveItem(itemID uuid.UUID) error {
	idx := p.itemIndex(itemID)
	if idx < 0 {
		return shared.NewDomainError(shared.CodeNotFound, "Purchase item not found")
	}

	total := p.sumSubtotals().Sub(p.Items[idx].Subtotal)
	final, err := ComputePurchaseFinal(total, p.TaxAmount, p.DiscountAmount)
	if err != nil {
		return err
	}

	p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
	p.applyTotals(total, final)

	return nil
}

// SetAmounts applies direct edits to the purchase-level tax/discount and
// re-aggregates. Nil fields keep their current value.
func (p *Purchase) SetAmounts(taxAmount, discountAmount *decimal.Decimal) error {
	newTax := p.TaxAmount
	if taxAmount != nil {
		if taxAmount.IsNegative() {
			return shared.NewValidationError("tax_amount", "Tax amount cannot be negative")
		}
		newTax = *taxAmount
	}
	newDiscount := p.DiscountAmount
	if discountAmount != nil {
		if discountAmount.IsNegative() {
			return shared.NewValidationError("discount_amount", "Discount amount cannot be negative")
		}
		newDiscount = *discountAmount
	}

	total := p.sumSubtotals()
	final, err := ComputePurchaseFinal(total, newTax, newDiscount)
	if err != nil {
		return err
	}

	p.TaxAmount = newTax
	p.DiscountAmount = newDiscount
	p.applyTotals(total, final)

	return nil
}

// RecalculateTotals re-derives TotalAmount and FinalAmount from the current
// item set. Used after the item set was mutated outside the aggregate methods
// (e.g. reloaded from storage).
func (p *Purchase) RecalculateTotals() error {
	total := p.sumSubtotals()
	final, err := ComputePurchaseFinal(total, p.TaxAmount, p.DiscountAmount)
	if err != nil {
		return err
	}
	p.applyTotals(total, final)
	return nil
}

// SetStatus transitions the purchase status
func (p *Purchase) SetStatus(status PurchaseStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Invalid purchase status")
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetNotes sets the purchase notes
func (p *Purchase) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
}

// Item returns an item by its ID, or nil
func (p *Purchase) Item(itemID uuid.UUID) *PurchaseItem {
	idx := p.itemIndex(itemID)
	if idx < 0 {
		return nil
	}
	return &p.Items[idx]
}

// ItemCount returns the number of line items
func (p *Purchase) ItemCount() int {
	return len(p.Items)
}

func (p *Purchase) itemIndex(itemID uuid.UUID) int {
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			return idx
		}
	}
	return -1
}

func (p *Purchase) sumSubtotals() decimal.Decimal {
	total := decimal.Zero
	for idx := range p.Items {
		total = total.Add(p.Items[idx].Subtotal)
	}
	return total
}

func (p *Purchase) applyTotals(total, final decimal.Decimal) {
	p.TotalAmount = total
	p.FinalAmount = final
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
