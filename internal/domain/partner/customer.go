package partner

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// CustomerTag classifies a customer for pricing/marketing purposes
type CustomerTag string

const (
	CustomerTagRegular   CustomerTag = "regular"
	CustomerTagVIP       CustomerTag = "vip"
	CustomerTagWholesale CustomerTag = "wholesale"
)

// IsValid checks if the tag is a known CustomerTag
func (t CustomerTag) IsValid() bool {
	switch t {
	case CustomerTagRegular, CustomerTagVIP, CustomerTagWholesale:
		return true
	}
	return false
}

// Customer is the aggregate root for customer-related operations.
// TotalPurchases, TotalSpent and LastPurchaseDate are lifetime statistics
// maintained incrementally by the purchase ledger; they are never recomputed
// from scratch on read and never mutated through the customer API surface.
type Customer struct {
	shared.BaseAggregateRoot
	Name             string          `gorm:"type:varchar(200);not null"`
	ContactName      string          `gorm:"type:varchar(100)"`
	Phone            string          `gorm:"type:varchar(50);index"`
	Email            string          `gorm:"type:varchar(200);index"`
	Address          string          `gorm:"type:text"`
	Tag              CustomerTag     `gorm:"type:varchar(20);not null;default:'regular'"`
	TotalPurchases   int             `gorm:"not null;default:0"`
	TotalSpent       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	LastPurchaseDate *time.Time
	Active           bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name string, tag CustomerTag) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if tag == "" {
		tag = CustomerTagRegular
	}
	if !tag.IsValid() {
		return nil, shared.NewValidationError("tag", "Customer tag must be regular, vip, or wholesale")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Tag:               tag,
		TotalSpent:        decimal.Zero,
		Active:            true,
	}, nil
}

// Update updates the customer's name
func (c *Customer) Update(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(contactName, phone, email, address string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewValidationError("contact_name", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewValidationError("address", "Address cannot exceed 500 characters")
	}

	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTag sets the customer's classification tag
func (c *Customer) SetTag(tag CustomerTag) error {
	if !tag.IsValid() {
		return shared.NewValidationError("tag", "Customer tag must be regular, vip, or wholesale")
	}

	c.Tag = tag
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate reactivates a deactivated customer
func (c *Customer) Activate() error {
	if c.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "Customer is already active")
	}

	c.Active = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate soft-deletes the customer. Customers are never destroyed because
// their purchase history and statistics must survive.
func (c *Customer) Deactivate() error {
	if !c.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "Customer is already inactive")
	}

	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// RecordPurchase applies a newly created purchase to the lifetime statistics:
// purchase count +1, spend +finalAmount, last purchase date overwritten with
// the new purchase's date (latest create wins).
func (c *Customer) RecordPurchase(finalAmount decimal.Decimal, purchaseDate time.Time) error {
	if finalAmount.IsNegative() {
		return shared.NewValidationError("final_amount", "Final amount cannot be negative")
	}

	c.TotalPurchases++
	c.TotalSpent = c.TotalSpent.Add(finalAmount)
	c.LastPurchaseDate = &purchaseDate
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// ApplySpendDelta adds delta (either sign) to TotalSpent after a purchase's
// final amount changed. Purchase count and last purchase date are untouched.
// A result below zero signals an upstream consistency bug: the value is
// clamped to zero and clamped=true is returned so the caller can log it.
func (c *Customer) ApplySpendDelta(delta decimal.Decimal) (clamped bool) {
	c.TotalSpent = c.TotalSpent.Add(delta)
	if c.TotalSpent.IsNegative() {
		c.TotalSpent = decimal.Zero
		clamped = true
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return clamped
}

// ReversePurchase removes a deleted purchase from the lifetime statistics:
// purchase count -1, spend -finalAmount. Both clamp at zero under the same
// consistency-bug rule as ApplySpendDelta.
func (c *Customer) ReversePurchase(finalAmount decimal.Decimal) (clamped bool) {
	c.TotalPurchases--
	if c.TotalPurchases < 0 {
		c.TotalPurchases = 0
		clamped = true
	}
	c.TotalSpent = c.TotalSpent.Sub(finalAmount)
	if c.TotalSpent.IsNegative() {
		c.TotalSpent = decimal.Zero
		clamped = true
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return clamped
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Active
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("phone", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewValidationError("phone", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("email", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("email", "Invalid email format")
	}
	return nil
}
