// Package money provides exact monetary arithmetic on fixed-precision
// decimals. Intermediate results are never rounded; Round is applied once at
// the display boundary.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

// Multiply returns unitPrice * quantity exactly.
func Multiply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, &errors.ErrValidation{
			Message: "unit price must not be negative",
			Fields:  map[string]string{"unit_price": unitPrice.String()},
		}
	}
	if quantity < 1 {
		return decimal.Zero, &errors.ErrValidation{
			Message: "quantity must be at least 1",
			Fields:  map[string]string{"quantity": fmt.Sprintf("%d", quantity)},
		}
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Sum returns the exact sum of amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Round rounds amount to places decimal places, half away from zero.
func Round(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Round(places)
}

// FromString parses a non-negative decimal amount.
func FromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &errors.ErrValidation{
			Message: "invalid amount: " + s,
			Fields:  map[string]string{"amount": s},
		}
	}
	if d.IsNegative() {
		return decimal.Zero, &errors.ErrValidation{
			Message: "amount must not be negative",
			Fields:  map[string]string{"amount": s},
		}
	}
	return d, nil
}
