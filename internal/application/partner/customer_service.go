package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/partner"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// CustomerService manages the customer directory. The lifetime statistics on
// a customer are read-only here: only the purchase ledger mutates them.
type CustomerService struct {
	repo   partner.CustomerRepository
	logger *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logger,
	}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Tag)
	if err != nil {
		return nil, err
	}
	if err := customer.SetContact(req.ContactName, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.Name))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetCustomer loads a customer with its lifetime statistics
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateCustomer applies partial changes to a customer's profile fields.
// Statistics fields are not reachable through this path.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := customer.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Phone != nil || req.Email != nil || req.Address != nil {
		contactName := customer.ContactName
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		phone := customer.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		email := customer.Email
		if req.Email != nil {
			email = *req.Email
		}
		address := customer.Address
		if req.Address != nil {
			address = *req.Address
		}
		if err := customer.SetContact(contactName, phone, email, address); err != nil {
			return nil, err
		}
	}
	if req.Tag != nil {
		if err := customer.SetTag(*req.Tag); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// ActivateCustomer reactivates a deactivated customer
func (s *CustomerService) ActivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := customer.Activate(); err != nil {
		return err
	}
	return s.repo.Save(ctx, customer)
}

// DeactivateCustomer soft-deletes a customer. The record and its statistics
// stay behind because the purchase history references them.
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := customer.Deactivate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return err
	}

	s.logger.Info("customer deactivated", zap.String("customer_id", id.String()))
	return nil
}

// ListCustomers returns a page of customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Tag != nil {
		domainFilter.Filters["tag"] = string(*filter.Tag)
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	customers, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToCustomerResponses(customers), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}
