package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status represents the canonical lifecycle state of an order.
// Its integer value doubles as the rank in the fixed total order
//
//	Pending(1) < Shipped(2) < DriverDelivered(3) < Delivered(4)
//
// so comparing two statuses compares their progress. No write path may move an
// order to a lower-ranked status; equal-ranked proposals are idempotent no-ops.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values and
	// unrecognized status labels from external callers.
	Unknown Status = iota

	// Pending is the initial status when a buyer places an order.
	Pending

	// Shipped indicates the driver has picked the order up and is on route.
	Shipped

	// DriverDelivered indicates the driver marked the order delivered but
	// the buyer has not yet confirmed receipt.
	DriverDelivered

	// Delivered is the final status, reached only through buyer confirmation.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		Pending:         "Pending",
		Shipped:         "Shipped",
		DriverDelivered: "DriverDelivered",
		Delivered:       "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:         "Pending",
		Shipped:         "Shipped",
		DriverDelivered: "DriverDelivered",
		Delivered:       "Delivered",
	}
}

// Validate checks if the Status value is one of the four canonical statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is DriverDelivered or Delivered.
// Reaching either for the first time triggers the delivery side effects.
func (s Status) IsTerminal() bool {
	return s == DriverDelivered || s == Delivered
}

// CanAdvanceTo reports whether a transition from s to target moves the order
// forward in the rank order. Equal or lower-ranked targets are not advances;
// they are rejected by the monotonicity guard rather than re-applied.
func (s Status) CanAdvanceTo(target Status) bool {
	return target.Validate() == nil && target > s
}

// NormalizeTrackingStatus maps the driver-app ping vocabulary onto the
// canonical Status. Matching is case-insensitive.
//
// Mapping:
//   - "picked_up", "on_route" -> Shipped
//   - "delivered"             -> DriverDelivered (buyer confirmation is the
//     only path to Delivered)
//   - "pending"               -> Pending
//
// Any other label yields Unknown; callers treat Unknown as "no status
// proposal", never as an error, so pings with unrecognized labels are still
// acknowledged.
func NormalizeTrackingStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "picked_up", "on_route":
		return Shipped
	case "delivered":
		return DriverDelivered
	case "pending":
		return Pending
	default:
		return Unknown
	}
}

// ParseStatus maps the administrative status vocabulary onto the canonical
// Status. It accepts the canonical names case-insensitively plus the driver
// vocabulary, matching by upper-cased comparison.
//
// An administrative "delivered" resolves to DriverDelivered, not Delivered:
// the final Delivered status is reserved for the buyer confirmation path.
func ParseStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING":
		return Pending
	case "SHIPPED", "PICKED_UP", "ON_ROUTE":
		return Shipped
	case "DRIVER_DELIVERED", "DRIVERDELIVERED", "DELIVERED":
		return DriverDelivered
	default:
		return Unknown
	}
}
