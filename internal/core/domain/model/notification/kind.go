package notification

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Kind classifies a notification by the marketplace event that produced it.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindOrderPlaced tells a seller that a buyer placed an order.
	KindOrderPlaced

	// KindOrderAccepted tells a buyer that a driver accepted their order.
	KindOrderAccepted

	// KindDriverAssigned tells a driver that an order was assigned to them.
	KindDriverAssigned

	// KindOrderShipped tells buyer and seller the order is on the way.
	KindOrderShipped

	// KindOrderDelivered tells order participants the order arrived.
	KindOrderDelivered

	// KindPaymentReceived tells seller and driver their payment cleared.
	KindPaymentReceived

	// KindMessageReceived tells a participant someone messaged them.
	KindMessageReceived

	// KindNewProduct tells followers a seller listed a new product.
	KindNewProduct
)

// getKindStrings returns a map of Kind values to their string representations.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:         "unknown",
		KindOrderPlaced:     "order_placed",
		KindOrderAccepted:   "order_accepted",
		KindDriverAssigned:  "driver_assigned",
		KindOrderShipped:    "order_shipped",
		KindOrderDelivered:  "order_delivered",
		KindPaymentReceived: "payment_received",
		KindMessageReceived: "message_received",
		KindNewProduct:      "new_product",
	}
}

// getValidKindStrings returns a map of only valid Kind values.
func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		KindOrderPlaced:     "order_placed",
		KindOrderAccepted:   "order_accepted",
		KindDriverAssigned:  "driver_assigned",
		KindOrderShipped:    "order_shipped",
		KindOrderDelivered:  "order_delivered",
		KindPaymentReceived: "payment_received",
		KindMessageReceived: "message_received",
		KindNewProduct:      "new_product",
	}
}

// Validate checks if the Kind value is one of the defined notification kinds.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid notification kind", k))
	}
	return nil
}

// String returns the storage label of the kind. Implements fmt.Stringer.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// KindFromString maps a storage label back to its Kind.
// Unrecognized labels yield KindUnknown.
func KindFromString(raw string) Kind {
	for kind, label := range getValidKindStrings() {
		if label == raw {
			return kind
		}
	}
	return KindUnknown
}
