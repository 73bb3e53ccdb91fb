package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
)

// LocationCache is a best-effort cache of the latest tracking sample per
// order. The location log in the database stays the source of truth; cache
// failures must never fail the write path that feeds it.
type LocationCache interface {
	// SetLatest stores the sample as the order's latest known location.
	SetLatest(ctx context.Context, sample *tracking.Sample) error

	// GetLatest retrieves the cached latest sample for an order.
	// A cache miss yields (nil, nil).
	GetLatest(ctx context.Context, orderID kernel.UUID) (*tracking.Sample, error)
}
