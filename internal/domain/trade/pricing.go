package trade

import (
	"github.com/shopspring/decimal"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// Quantity bounds for a purchase line item
const (
	MinQuantity = 1
	MaxQuantity = 999999
)

var oneHundred = decimal.NewFromInt(100)

// ComputeItemPricing computes a line item's discount amount and subtotal.
// Intermediate multiplication is carried at full precision; only the two
// stored values are rounded to two decimals, so repeated recomputation cycles
// do not compound rounding error.
func ComputeItemPricing(unitPrice decimal.Decimal, quantity int, discountPercentage decimal.Decimal) (discountAmount, subtotal decimal.Decimal, err error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, decimal.Zero, shared.NewValidationError("unit_price", "Unit price cannot be negative")
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return decimal.Zero, decimal.Zero, shared.NewValidationError("quantity", "Quantity must be between 1 and 999999")
	}
	if discountPercentage.IsNegative() || discountPercentage.GreaterThan(oneHundred) {
		return decimal.Zero, decimal.Zero, shared.NewValidationError("discount_percentage", "Discount percentage must be between 0 and 100")
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount := gross.Mul(discountPercentage).Div(oneHundred)

	return discount.Round(2), gross.Sub(discount).Round(2), nil
}

// ComputePurchaseFinal computes a purchase's final amount from the summed
// item subtotals and the purchase-level tax and discount. A negative result
// is returned as an error, never clamped; the caller decides whether to
// reject the triggering mutation.
func ComputePurchaseFinal(totalAmount, taxAmount, discountAmount decimal.Decimal) (decimal.Decimal, error) {
	final := totalAmount.Add(taxAmount).Sub(discountAmount)
	if final.IsNegative() {
		return decimal.Zero, shared.NewNegativeAmountError("Final amount cannot be negative")
	}
	return final.Round(2), nil
}
