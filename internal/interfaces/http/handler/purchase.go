package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tradeapp "github.com/ayush-nalawade/CRM-backend/internal/application/trade"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/dto"
)

// PurchaseHandler handles purchase-related API endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// CreatePurchaseRequest represents a request to create a new purchase
type CreatePurchaseRequest struct {
	CustomerID     string     `json:"customer_id" binding:"required,uuid"`
	PurchaseNumber string     `json:"purchase_number" binding:"omitempty,max=50"`
	TaxAmount      float64    `json:"tax_amount" binding:"gte=0"`
	DiscountAmount float64    `json:"discount_amount" binding:"gte=0"`
	PaymentMethod  string     `json:"payment_method" binding:"required,oneof=cash card upi bank_transfer credit"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	Notes          string     `json:"notes" binding:"max=2000"`
}

// AddItemRequest represents a request to add a line item to a purchase
type AddItemRequest struct {
	ProductID          string  `json:"product_id" binding:"required,uuid"`
	VariantID          *string `json:"variant_id" binding:"omitempty,uuid"`
	Quantity           int     `json:"quantity" binding:"required,min=1"`
	UnitPrice          float64 `json:"unit_price" binding:"gte=0"`
	DiscountPercentage float64 `json:"discount_percentage" binding:"gte=0,lte=100"`
}

// UpdateItemRequest represents a request to update a line item
type UpdateItemRequest struct {
	Quantity           *int     `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice          *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	DiscountPercentage *float64 `json:"discount_percentage" binding:"omitempty,gte=0,lte=100"`
}

// UpdateAmountsRequest represents a request to update purchase-level amounts
type UpdateAmountsRequest struct {
	TaxAmount      *float64 `json:"tax_amount" binding:"omitempty,gte=0"`
	DiscountAmount *float64 `json:"discount_amount" binding:"omitempty,gte=0"`
}

// UpdateStatusRequest represents a request to change the purchase status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled"`
}

// ListPurchasesRequest represents query parameters for listing purchases
type ListPurchasesRequest struct {
	dto.ListRequest
	CustomerID *string    `form:"customer_id" binding:"omitempty,uuid"`
	Status     *string    `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// Create handles POST /purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), tradeapp.CreatePurchaseRequest{
		CustomerID:     customerID,
		PurchaseNumber: req.PurchaseNumber,
		TaxAmount:      decimal.NewFromFloat(req.TaxAmount),
		DiscountAmount: decimal.NewFromFloat(req.DiscountAmount),
		PaymentMethod:  trade.PaymentMethod(req.PaymentMethod),
		PurchaseDate:   req.PurchaseDate,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, purchase)
}

// GetByID handles GET /purchases/:id
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// GetByNumber handles GET /purchases/number/:number
func (h *PurchaseHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Purchase number is required")
		return
	}

	purchase, err := h.purchaseService.GetPurchaseByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// List handles GET /purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var req ListPurchasesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := tradeapp.PurchaseListFilter{
		Page:      req.Page,
		PageSize:  req.PageSize,
		Search:    req.Search,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		filter.CustomerID = &customerID
	}
	if req.Status != nil {
		status := trade.PurchaseStatus(*req.Status)
		filter.Status = &status
	}

	page, err := h.purchaseService.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AddItem handles POST /purchases/:id/items
func (h *PurchaseHandler) AddItem(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	appReq := tradeapp.AddItemRequest{
		ProductID:          productID,
		Quantity:           req.Quantity,
		UnitPrice:          decimal.NewFromFloat(req.UnitPrice),
		DiscountPercentage: decimal.NewFromFloat(req.DiscountPercentage),
	}
	if req.VariantID != nil {
		variantID, err := uuid.Parse(*req.VariantID)
		if err != nil {
			h.BadRequest(c, "Invalid variant ID format")
			return
		}
		appReq.VariantID = &variantID
	}

	purchase, err := h.purchaseService.AddItem(c.Request.Context(), purchaseID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// UpdateItem handles PUT /purchases/:id/items/:itemId
func (h *PurchaseHandler) UpdateItem(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := tradeapp.UpdateItemRequest{
		Quantity: req.Quantity,
	}
	if req.UnitPrice != nil {
		d := decimal.NewFromFloat(*req.UnitPrice)
		appReq.UnitPrice = &d
	}
	if req.DiscountPercentage != nil {
		d := decimal.NewFromFloat(*req.DiscountPercentage)
		appReq.DiscountPercentage = &d
	}

	purchase, err := h.purchaseService.UpdateItem(c.Request.Context(), purchaseID, itemID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// DeleteItem handles DELETE /purchases/:id/items/:itemId
func (h *PurchaseHandler) DeleteItem(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	purchase, err := h.purchaseService.DeleteItem(c.Request.Context(), purchaseID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// UpdateAmounts handles PUT /purchases/:id/amounts
func (h *PurchaseHandler) UpdateAmounts(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req UpdateAmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := tradeapp.UpdatePurchaseAmountsRequest{}
	if req.TaxAmount != nil {
		d := decimal.NewFromFloat(*req.TaxAmount)
		appReq.TaxAmount = &d
	}
	if req.DiscountAmount != nil {
		d := decimal.NewFromFloat(*req.DiscountAmount)
		appReq.DiscountAmount = &d
	}

	purchase, err := h.purchaseService.UpdateAmounts(c.Request.Context(), purchaseID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// UpdateStatus handles PUT /purchases/:id/status
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	purchase, err := h.purchaseService.UpdateStatus(c.Request.Context(), purchaseID, trade.PurchaseStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Delete handles DELETE /purchases/:id
func (h *PurchaseHandler) Delete(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), purchaseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
