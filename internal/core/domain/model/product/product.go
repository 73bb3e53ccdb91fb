package product

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct or RestoreProduct factory methods.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// Product is a sellable item with a free-text stock quantity of the "N unit"
// shape. The inventory adjuster is the sole mutator of that stock during
// delivery; all other writes go through the seller's product management, which
// is outside this core.
type Product struct {
	id       kernel.UUID
	sellerID kernel.UUID
	name     string
	quantity string

	isConstructed bool
}

// NewProduct creates a product with its initial stock quantity string.
func NewProduct(id, sellerID kernel.UUID, name, quantity string) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSellerID(sellerID),
		p.setName(name),
	); err != nil {
		return nil, err
	}

	p.quantity = quantity
	return p, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(id, sellerID kernel.UUID, name, quantity string) (*Product, error) {
	return NewProduct(id, sellerID, name, quantity)
}

// Validate ensures the Product was built through one of the constructors.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Seller returns the selling party's identifier.
func (p *Product) Seller() kernel.UUID {
	return p.sellerID
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Quantity returns the current stock quantity string.
func (p *Product) Quantity() string {
	return p.quantity
}

// DeductStock reduces the product's stock by the ordered amount, clamped at
// zero, preserving the unit suffix verbatim.
//
// Returns:
//   - adjusted: false when the stock string carries no digits; the product is
//     skipped, never an error
//   - depleted: true when the remaining stock reached zero
func (p *Product) DeductStock(ordered int) (adjusted, depleted bool) {
	stock, ok := ParseStockQuantity(p.quantity)
	if !ok {
		return false, false
	}

	remaining := stock.Deduct(ordered)
	p.quantity = remaining.String()
	return true, remaining.IsDepleted()
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	p.sellerID = sellerID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}
