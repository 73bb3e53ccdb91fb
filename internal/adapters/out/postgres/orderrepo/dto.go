// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and delivery processing state.
type OrderDTO struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey"`
	BuyerID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	SellerID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	DriverID          *uuid.UUID        `gorm:"type:uuid;index"`
	Quantity          string            `gorm:"type:varchar(255);not null"`
	Status            int               `gorm:"type:int;not null;index"`
	DeliveryProcessed bool              `gorm:"not null;default:false"`
	Products          []OrderProductDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderProductDTO links an order to one of its ordered products.
type OrderProductDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for order product links.
// Overrides GORM's default naming convention to use "order_products".
func (OrderProductDTO) TableName() string {
	return "order_products"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional driver assignment and the
// ordered product links.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	products := make([]OrderProductDTO, 0, len(aggregate.ProductIDs()))
	for _, productID := range aggregate.ProductIDs() {
		products = append(products, OrderProductDTO{
			OrderID:   orderID,
			ProductID: productID.Bytes(),
		})
	}

	return OrderDTO{
		ID:                orderID,
		BuyerID:           aggregate.Buyer().Bytes(),
		SellerID:          aggregate.Seller().Bytes(),
		DriverID:          driverID,
		Quantity:          aggregate.Quantity(),
		Status:            int(aggregate.Status()),
		DeliveryProcessed: aggregate.DeliveryProcessed(),
		Products:          products,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, driver assignment and
// the delivery processing flag using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	productIDs := make([]kernel.UUID, 0, len(dto.Products))
	for _, link := range dto.Products {
		productID, productErr := kernel.UUIDFromBytes(link.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}
		productIDs = append(productIDs, productID)
	}

	return order.RestoreOrder(id, buyerID, sellerID, driverID, productIDs,
		dto.Quantity, order.Status(dto.Status), dto.DeliveryProcessed)
}
