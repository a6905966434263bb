package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/ayush-nalawade/CRM-backend/internal/application/partner"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/partner"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/dto"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=500"`
	Tag         string `json:"tag" binding:"omitempty,oneof=regular vip wholesale"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Tag         *string `json:"tag" binding:"omitempty,oneof=regular vip wholesale"`
}

// ListCustomersRequest represents query parameters for listing customers
type ListCustomersRequest struct {
	dto.ListRequest
	Tag    *string `form:"tag" binding:"omitempty,oneof=regular vip wholesale"`
	Active *bool   `form:"active"`
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tag := partner.CustomerTagRegular
	if req.Tag != "" {
		tag = partner.CustomerTag(req.Tag)
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), partnerapp.CreateCustomerRequest{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Tag:         tag,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// GetByID handles GET /customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	var req ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := partnerapp.CustomerListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		Active:   req.Active,
	}
	if req.Tag != nil {
		tag := partner.CustomerTag(*req.Tag)
		filter.Tag = &tag
	}

	page, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := partnerapp.UpdateCustomerRequest{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	}
	if req.Tag != nil {
		tag := partner.CustomerTag(*req.Tag)
		appReq.Tag = &tag
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Activate handles POST /customers/:id/activate
func (h *CustomerHandler) Activate(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.ActivateCustomer(c.Request.Context(), customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate handles POST /customers/:id/deactivate
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
