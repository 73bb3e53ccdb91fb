package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for the location log.
// The log is append-only: samples are never updated or deleted.
type TrackingRepository interface {
	// Append persists a new tracking sample.
	Append(ctx context.Context, sample *tracking.Sample) error

	// GetLatest retrieves the most recent sample for an order.
	// Returns an object-not-found error when the order has no samples yet.
	GetLatest(ctx context.Context, orderID kernel.UUID) (*tracking.Sample, error)

	// GetHistory retrieves all samples for an order, most recent first.
	// An order with no samples yields an empty slice, not an error.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]*tracking.Sample, error)
}
