// Package product contains the Product aggregate and the StockQuantity value
// object that owns the "N unit" quantity-string arithmetic used for inventory
// deduction on delivery.
package product

import (
	"regexp"
	"strconv"
)

var (
	leadingDigits = regexp.MustCompile(`\d+`)
	stockPattern  = regexp.MustCompile(`(\d+)\s*([a-zA-Z]*)`)
)

// StockQuantity is an immutable parsed form of a product's free-text stock
// string, such as "10 kg" or "25 units". The unit suffix is preserved verbatim
// through deductions; an empty suffix stays empty.
type StockQuantity struct {
	amount int
	unit   string
}

// ParseStockQuantity parses a stock string into its amount and unit suffix.
// The second return value is false when the string carries no digits, which
// callers treat as "nothing to adjust" rather than an error.
func ParseStockQuantity(raw string) (StockQuantity, bool) {
	match := stockPattern.FindStringSubmatch(raw)
	if match == nil {
		return StockQuantity{}, false
	}

	amount, err := strconv.Atoi(match[1])
	if err != nil {
		// Digit runs longer than an int, e.g. "99999999999999999999 kg".
		return StockQuantity{}, false
	}

	return StockQuantity{amount: amount, unit: match[2]}, true
}

// ParseOrderedQuantity extracts the leading integer from an order's quantity
// descriptor. Returns false when the descriptor contains no digits, meaning
// there is nothing to deduct.
func ParseOrderedQuantity(descriptor string) (int, bool) {
	match := leadingDigits.FindString(descriptor)
	if match == "" {
		return 0, false
	}

	amount, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return amount, true
}

// Amount returns the numeric stock amount.
func (q StockQuantity) Amount() int {
	return q.amount
}

// Unit returns the unit suffix, which may be empty.
func (q StockQuantity) Unit() string {
	return q.unit
}

// IsDepleted reports whether the stock amount is zero.
func (q StockQuantity) IsDepleted() bool {
	return q.amount == 0
}

// Deduct returns the stock quantity reduced by n, clamped at zero. The unit
// suffix is carried over unchanged.
func (q StockQuantity) Deduct(n int) StockQuantity {
	remaining := q.amount - n
	if remaining < 0 {
		remaining = 0
	}
	return StockQuantity{amount: remaining, unit: q.unit}
}

// String renders the stock back into its persisted "N unit" form, or just "N"
// when the unit suffix is empty.
func (q StockQuantity) String() string {
	if q.unit == "" {
		return strconv.Itoa(q.amount)
	}
	return strconv.Itoa(q.amount) + " " + q.unit
}
