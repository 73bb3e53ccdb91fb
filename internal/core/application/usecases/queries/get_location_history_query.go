package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetLocationHistoryQueryIsNotConstructed = errors.New(
	"GetLocationHistoryQuery must be created via NewGetLocationHistoryQuery constructor",
)

// GetLocationHistoryQuery retrieves an order's full tracking history,
// most recent sample first.
type GetLocationHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLocationHistoryQuery creates a history query for the order.
func NewGetLocationHistoryQuery(orderID kernel.UUID) (GetLocationHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetLocationHistoryQuery{}, err
	}

	return GetLocationHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLocationHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetLocationHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}
