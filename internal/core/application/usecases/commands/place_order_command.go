package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a buyer placing an order for a seller's
// products. The quantity is a free-form descriptor like "3 kg"; inventory
// adjustment parses it after delivery.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	buyerID    kernel.UUID
	sellerID   kernel.UUID
	productIDs []kernel.UUID
	quantity   string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates an order placement command.
// Requires valid identifiers, at least one product and a non-empty quantity.
func NewPlaceOrderCommand(orderID, buyerID, sellerID kernel.UUID,
	productIDs []kernel.UUID, quantity string) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setOrderID(orderID),
		placeCommand.setBuyerID(buyerID),
		placeCommand.setSellerID(sellerID),
		placeCommand.setProductIDs(productIDs),
		placeCommand.setQuantity(quantity),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the ordering party.
func (c PlaceOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SellerID returns the selling party.
func (c PlaceOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// ProductIDs returns the ordered products.
func (c PlaceOrderCommand) ProductIDs() []kernel.UUID {
	return c.productIDs
}

// Quantity returns the free-form quantity descriptor.
func (c PlaceOrderCommand) Quantity() string {
	return c.quantity
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *PlaceOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *PlaceOrderCommand) setProductIDs(productIDs []kernel.UUID) error {
	if len(productIDs) == 0 {
		return errs.NewValueIsRequiredError("productIds")
	}
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.productIDs = productIDs
	return nil
}

func (c *PlaceOrderCommand) setQuantity(quantity string) error {
	if strings.TrimSpace(quantity) == "" {
		return errs.NewValueIsRequiredError("quantity")
	}

	c.quantity = quantity
	return nil
}
