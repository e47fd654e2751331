// Package pricing computes order totals from line items. It is pure: no
// store access, no clock, no mutation of its inputs.
package pricing

import (
	"math"

	"produce_manager/internal/apperrors"
)

// Line is one priced order line.
type Line struct {
	Quantity        float64
	UnitPrice       float64
	DiscountPercent float64
}

// LineTotal returns quantity * unit_price * (1 - discount/100) for a single
// line. A zero discount leaves the price untouched exactly; there is no
// fallback path that can divide by zero or produce NaN.
func LineTotal(l Line) (float64, error) {
	if err := validate(l); err != nil {
		return 0, err
	}
	return l.Quantity * l.UnitPrice * (1 - l.DiscountPercent/100), nil
}

// OrderTotal sums the line totals and rounds to 2 decimal places. On a bad
// line it fails identifying the offending index instead of silently summing
// a NaN into the total.
func OrderTotal(lines []Line) (float64, error) {
	var total float64
	for i, l := range lines {
		if err := validate(l); err != nil {
			return 0, apperrors.Validationf("item %d: %v", i, err)
		}
		total += l.Quantity * l.UnitPrice * (1 - l.DiscountPercent/100)
	}
	return Round2(total), nil
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validate(l Line) error {
	if math.IsNaN(l.Quantity) || math.IsInf(l.Quantity, 0) || l.Quantity <= 0 {
		return apperrors.Validationf("quantity must be a positive number")
	}
	if math.IsNaN(l.UnitPrice) || math.IsInf(l.UnitPrice, 0) || l.UnitPrice < 0 {
		return apperrors.Validationf("unit price must be a non-negative number")
	}
	if math.IsNaN(l.DiscountPercent) || l.DiscountPercent < 0 || l.DiscountPercent > 100 {
		return apperrors.Validationf("discount percent must be between 0 and 100")
	}
	return nil
}
