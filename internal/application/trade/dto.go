package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
)

// CreatePurchaseRequest carries the inputs for creating a purchase.
// Items are added afterwards through AddItem, so the initial total is zero.
type CreatePurchaseRequest struct {
	CustomerID     uuid.UUID
	PurchaseNumber string // optional; generated when empty
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	PaymentMethod  trade.PaymentMethod
	PurchaseDate   *time.Time
	Notes          string
}

// UpdatePurchaseAmountsRequest carries direct edits to purchase-level amounts.
// Nil fields are left unchanged.
type UpdatePurchaseAmountsRequest struct {
	TaxAmount      *decimal.Decimal
	DiscountAmount *decimal.Decimal
}

// AddItemRequest carries the inputs for a new purchase line item
type AddItemRequest struct {
	ProductID          uuid.UUID
	VariantID          *uuid.UUID
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
}

// UpdateItemRequest carries partial changes to a line item.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	Quantity           *int
	UnitPrice          *decimal.Decimal
	DiscountPercentage *decimal.Decimal
}

// PurchaseListFilter carries listing options for purchases
type PurchaseListFilter struct {
	Page       int
	PageSize   int
	CustomerID *uuid.UUID
	Status     *trade.PurchaseStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// PurchaseItemResponse is the outward representation of a line item
type PurchaseItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	PurchaseID         uuid.UUID       `json:"purchase_id"`
	ProductID          uuid.UUID       `json:"product_id"`
	VariantID          *uuid.UUID      `json:"variant_id,omitempty"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse is the outward representation of a purchase
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	CustomerID     uuid.UUID              `json:"customer_id"`
	Items          []PurchaseItemResponse `json:"items"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	FinalAmount    decimal.Decimal        `json:"final_amount"`
	PaymentMethod  trade.PaymentMethod    `json:"payment_method"`
	Status         trade.PurchaseStatus   `json:"status"`
	PurchaseDate   time.Time              `json:"purchase_date"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToPurchaseItemResponse converts a domain item to its response form
func ToPurchaseItemResponse(item *trade.PurchaseItem) PurchaseItemResponse {
	return PurchaseItemResponse{
		ID:                 item.ID,
		PurchaseID:         item.PurchaseID,
		ProductID:          item.ProductID,
		VariantID:          item.VariantID,
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice,
		DiscountPercentage: item.DiscountPercentage,
		DiscountAmount:     item.DiscountAmount,
		Subtotal:           item.Subtotal,
	}
}

// ToPurchaseResponse converts a domain purchase to its response form
func ToPurchaseResponse(purchase *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(purchase.Items))
	for idx := range purchase.Items {
		items = append(items, ToPurchaseItemResponse(&purchase.Items[idx]))
	}

	return PurchaseResponse{
		ID:             purchase.ID,
		PurchaseNumber: purchase.PurchaseNumber,
		CustomerID:     purchase.CustomerID,
		Items:          items,
		TotalAmount:    purchase.TotalAmount,
		DiscountAmount: purchase.DiscountAmount,
		TaxAmount:      purchase.TaxAmount,
		FinalAmount:    purchase.FinalAmount,
		PaymentMethod:  purchase.PaymentMethod,
		Status:         purchase.Status,
		PurchaseDate:   purchase.PurchaseDate,
		Notes:          purchase.Notes,
		CreatedAt:      purchase.CreatedAt,
		UpdatedAt:      purchase.UpdatedAt,
	}
}

// ToPurchaseResponses converts a slice of domain purchases
func ToPurchaseResponses(purchases []trade.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, 0, len(purchases))
	for idx := range purchases {
		responses = append(responses, ToPurchaseResponse(&purchases[idx]))
	}
	return responses
}
