package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/partner"
)

// CreateCustomerRequest carries the inputs for creating a customer
type CreateCustomerRequest struct {
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Tag         partner.CustomerTag
}

// UpdateCustomerRequest carries partial changes to a customer.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name        *string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	Tag         *partner.CustomerTag
}

// CustomerListFilter carries listing options for customers
type CustomerListFilter struct {
	Page     int
	PageSize int
	Search   string
	Tag      *partner.CustomerTag
	Active   *bool
}

// CustomerResponse is the outward representation of a customer, statistics
// included
type CustomerResponse struct {
	ID               uuid.UUID           `json:"id"`
	Name             string              `json:"name"`
	ContactName      string              `json:"contact_name,omitempty"`
	Phone            string              `json:"phone,omitempty"`
	Email            string              `json:"email,omitempty"`
	Address          string              `json:"address,omitempty"`
	Tag              partner.CustomerTag `json:"tag"`
	TotalPurchases   int                 `json:"total_purchases"`
	TotalSpent       decimal.Decimal     `json:"total_spent"`
	LastPurchaseDate *time.Time          `json:"last_purchase_date,omitempty"`
	Active           bool                `json:"active"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to its response form
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               customer.ID,
		Name:             customer.Name,
		ContactName:      customer.ContactName,
		Phone:            customer.Phone,
		Email:            customer.Email,
		Address:          customer.Address,
		Tag:              customer.Tag,
		TotalPurchases:   customer.TotalPurchases,
		TotalSpent:       customer.TotalSpent,
		LastPurchaseDate: customer.LastPurchaseDate,
		Active:           customer.Active,
		CreatedAt:        customer.CreatedAt,
		UpdatedAt:        customer.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for idx := range customers {
		responses = append(responses, ToCustomerResponse(&customers[idx]))
	}
	return responses
}
