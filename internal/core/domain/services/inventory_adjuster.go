package services

import (
	"marketplace/internal/core/domain/model/product"
)

// AdjustmentResult reports what a stock deduction changed.
type AdjustmentResult struct {
	// Adjusted holds the products whose quantity string was rewritten.
	Adjusted []*product.Product
	// Depleted holds the subset of Adjusted that hit zero, so callers can
	// emit the out-of-stock signal.
	Depleted []*product.Product
}

// InventoryAdjuster is a domain service that deducts a delivered order's
// quantity from the stock of its products.
//
// Business rules:
//   - The ordered amount is the first run of digits in the order's free-form
//     quantity descriptor; no digits means nothing to deduct
//   - Stock never goes negative; deduction clamps at zero
//   - A product with a malformed stock string is left untouched
//   - The stock unit survives the rewrite verbatim
type InventoryAdjuster struct{}

// NewInventoryAdjuster creates a new InventoryAdjuster instance.
func NewInventoryAdjuster() InventoryAdjuster {
	return InventoryAdjuster{}
}

// Deduct applies the ordered quantity against every product and returns which
// products changed and which ran out. It mutates the passed products; the
// caller decides what to persist.
func (a InventoryAdjuster) Deduct(quantityDescriptor string, products []*product.Product) AdjustmentResult {
	var result AdjustmentResult

	ordered, ok := product.ParseOrderedQuantity(quantityDescriptor)
	if !ok || ordered <= 0 {
		return result
	}

	for _, p := range products {
		adjusted, depleted := p.DeductStock(ordered)
		if adjusted {
			result.Adjusted = append(result.Adjusted, p)
		}
		if depleted {
			result.Depleted = append(result.Depleted, p)
		}
	}

	return result
}
