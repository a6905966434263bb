package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/ayush-nalawade/CRM-backend/internal/application/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/dto"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateVariantRequest represents one variant of a new product
type CreateVariantRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=200"`
	SKU       string   `json:"sku" binding:"max=100"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	Stock     int      `json:"stock" binding:"gte=0"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU         string                 `json:"sku" binding:"required,min=1,max=100"`
	Name        string                 `json:"name" binding:"required,min=1,max=200"`
	Description string                 `json:"description" binding:"max=2000"`
	UnitPrice   float64                `json:"unit_price" binding:"gte=0"`
	Variants    []CreateVariantRequest `json:"variants" binding:"omitempty,dive"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	dto.ListRequest
	Active *bool `form:"active"`
}

// SetStockRequest represents a request to set a variant's stock level
type SetStockRequest struct {
	Stock int `json:"stock" binding:"gte=0"`
}

// BulkStockEntryRequest represents one entry of a bulk stock adjustment
type BulkStockEntryRequest struct {
	VariantID string `json:"variant_id" binding:"required,uuid"`
	Stock     int    `json:"stock"`
}

// BulkStockRequest represents a bulk stock adjustment
type BulkStockRequest struct {
	Entries []BulkStockEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

func toVariantAppRequest(req CreateVariantRequest) catalogapp.CreateVariantRequest {
	appReq := catalogapp.CreateVariantRequest{
		Name:  req.Name,
		SKU:   req.SKU,
		Stock: req.Stock,
	}
	if req.UnitPrice != nil {
		d := decimal.NewFromFloat(*req.UnitPrice)
		appReq.UnitPrice = &d
	}
	return appReq
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := catalogapp.CreateProductRequest{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   decimal.NewFromFloat(req.UnitPrice),
	}
	for _, v := range req.Variants {
		appReq.Variants = append(appReq.Variants, toVariantAppRequest(v))
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), catalogapp.ProductListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		Active:   req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := catalogapp.UpdateProductRequest{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.UnitPrice != nil {
		d := decimal.NewFromFloat(*req.UnitPrice)
		appReq.UnitPrice = &d
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddVariant handles POST /products/:id/variants
func (h *ProductHandler) AddVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.AddVariant(c.Request.Context(), productID, toVariantAppRequest(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetStock handles PUT /variants/:id/stock
func (h *ProductHandler) SetStock(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	var req SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.productService.SetVariantStock(c.Request.Context(), variantID, req.Stock); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// BulkSetStock handles POST /variants/stock/bulk. Individual entry failures
// are reported in the result; the batch itself always succeeds.
func (h *ProductHandler) BulkSetStock(c *gin.Context) {
	var req BulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entries := make([]catalogapp.StockEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		variantID, err := uuid.Parse(entry.VariantID)
		if err != nil {
			h.BadRequest(c, "Invalid variant ID format: "+entry.VariantID)
			return
		}
		entries = append(entries, catalogapp.StockEntry{
			VariantID: variantID,
			Stock:     entry.Stock,
		})
	}

	result := h.productService.BulkSetStock(c.Request.Context(), entries)
	h.Success(c, result)
}
