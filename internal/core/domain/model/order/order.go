package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIsFinished is returned when attempting to assign a driver to an
	// order that already reached a terminal status.
	ErrOrderIsFinished = errors.New("order already reached a terminal status")
)

// Order is the aggregate root for a marketplace delivery order. It references
// the buyer, the seller, the optionally assigned driver and the ordered
// products, and owns the canonical lifecycle status.
//
// Invariants:
//   - All identity references are valid UUIDs; at least one product is ordered.
//   - The status only moves forward along Pending < Shipped < DriverDelivered
//     < Delivered (see AdvanceTo).
//   - Delivery side effects run at most once per order, tracked by the
//     delivery-processed claim.
//
// The in-memory aggregate mirrors the persistent state; the authoritative
// monotonicity and claim checks are compare-and-set operations in the order
// repository, so concurrent writers cannot race the aggregate into a
// lower-ranked status.
type Order struct {
	id       kernel.UUID
	buyerID  kernel.UUID
	sellerID kernel.UUID

	// driverID is nil until the seller accepts the order and assigns a driver.
	driverID *kernel.UUID

	productIDs []kernel.UUID

	// quantity is the free-text ordered quantity descriptor ("3 kg", "5 units").
	quantity string

	status Status

	// deliveryProcessed records that the one-time delivery side effects
	// (inventory deduction, delivered fan-out) have been applied.
	deliveryProcessed bool

	isConstructed bool
}

// NewOrder creates a Pending order for a buyer, validating all references.
//
// Parameters:
//   - id: unique order identifier
//   - buyerID, sellerID: the ordering and selling parties
//   - productIDs: the ordered products (at least one)
//   - quantity: the ordered quantity descriptor, free text, required
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	productIDs []kernel.UUID,
	quantity string,
) (*Order, error) {
	newOrder := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		newOrder.setID(id),
		newOrder.setBuyerID(buyerID),
		newOrder.setSellerID(sellerID),
		newOrder.setProductIDs(productIDs),
		newOrder.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// RestoreOrder reconstructs an order from persistence, including its current
// status, driver assignment and delivery-processed claim.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	driverID *kernel.UUID,
	productIDs []kernel.UUID,
	quantity string,
	status Status,
	deliveryProcessed bool,
) (*Order, error) {
	restored, err := NewOrder(id, buyerID, sellerID, productIDs, quantity)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err = driverID.Validate(); err != nil {
			return nil, err
		}
		restored.driverID = driverID
	}

	restored.status = status
	restored.deliveryProcessed = deliveryProcessed
	return restored, nil
}

// Validate ensures the Order was built through one of the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Buyer returns the buyer's identifier.
func (o *Order) Buyer() kernel.UUID {
	return o.buyerID
}

// Seller returns the seller's identifier.
func (o *Order) Seller() kernel.UUID {
	return o.sellerID
}

// Driver returns the assigned driver's identifier, or nil if unassigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// ProductIDs returns the identifiers of the ordered products.
func (o *Order) ProductIDs() []kernel.UUID {
	return o.productIDs
}

// Quantity returns the ordered quantity descriptor.
func (o *Order) Quantity() string {
	return o.quantity
}

// Status returns the current canonical status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryProcessed reports whether the one-time delivery side effects have
// already been applied for this order.
func (o *Order) DeliveryProcessed() bool {
	return o.deliveryProcessed
}

// IsDriver reports whether the given driver is the order's assigned driver.
// An unassigned order matches no driver, so the check fails closed.
func (o *Order) IsDriver(driverID kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driverID)
}

// CanBuyerConfirm reports whether the buyer may promote the order to
// Delivered. Confirmation requires shipment progress: a Pending order cannot
// be confirmed, and a Delivered order has nothing left to confirm.
func (o *Order) CanBuyerConfirm() bool {
	return o.status == Shipped || o.status == DriverDelivered
}

// AssignDriver assigns the order to a driver. Reassignment is allowed while
// the order is still in transit; terminal orders reject assignment.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return ErrOrderIsFinished
	}

	o.driverID = &driverID
	return nil
}

// AdvanceTo applies the monotonicity guard and moves the order to target when
// target outranks the current status.
//
// Returns:
//   - (true, nil) when the transition was applied
//   - (false, nil) when target does not outrank the current status; a
//     rejected proposal, not an error, so stale pings are acknowledged normally
//   - (false, error) when target is not a valid status
func (o *Order) AdvanceTo(target Status) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	if !o.status.CanAdvanceTo(target) {
		return false, nil
	}

	o.status = target
	return true, nil
}

// MarkDeliveryProcessed records that the one-time delivery side effects ran.
func (o *Order) MarkDeliveryProcessed() {
	o.deliveryProcessed = true
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setProductIDs(productIDs []kernel.UUID) error {
	if len(productIDs) == 0 {
		return errs.NewValueIsRequiredError("productIDs")
	}
	for _, productID := range productIDs {
		if err := productID.Validate(); err != nil {
			return err
		}
	}
	o.productIDs = productIDs
	return nil
}

func (o *Order) setQuantity(quantity string) error {
	if quantity == "" {
		return errs.NewValueIsRequiredError("quantity")
	}
	o.quantity = quantity
	return nil
}
