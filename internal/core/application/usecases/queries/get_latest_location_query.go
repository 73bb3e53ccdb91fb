// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read from the database directly with raw SQL, bypassing the
// aggregates and the unit of work.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetLatestLocationQueryIsNotConstructed = errors.New(
	"GetLatestLocationQuery must be created via NewGetLatestLocationQuery constructor",
)

// GetLatestLocationQuery retrieves the most recent known location of an order.
type GetLatestLocationQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLatestLocationQuery creates a latest-location query for the order.
func NewGetLatestLocationQuery(orderID kernel.UUID) (GetLatestLocationQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetLatestLocationQuery{}, err
	}

	return GetLatestLocationQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLatestLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestLocationQueryIsNotConstructed)
}

// OrderID returns the order whose location is requested.
func (q GetLatestLocationQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LocationResponse represents one point of an order's tracking history.
type LocationResponse struct {
	OrderID     kernel.UUID
	DriverID    kernel.UUID
	Latitude    float64
	Longitude   float64
	StatusLabel string
	RecordedAt  time.Time
}
