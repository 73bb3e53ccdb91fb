// Package ports defines the contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Besides plain CRUD it carries the two compare-and-set primitives the
// status machine relies on for per-order serialization.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AdvanceStatus atomically promotes the order's status to target if and
	// only if its stored status still ranks below target. Returns true when
	// this caller's write was the one applied; false means a concurrent
	// writer got there first or the stored status already ranked at or above
	// target.
	AdvanceStatus(ctx context.Context, id kernel.UUID, target order.Status) (bool, error)

	// ClaimDeliveryEffects atomically flips the order's delivery-processed
	// flag from false to true. Returns true only for the single caller that
	// wins the claim; everyone else gets false. Callers run the one-time
	// delivery side effects only after winning.
	ClaimDeliveryEffects(ctx context.Context, id kernel.UUID) (bool, error)

	// GetTerminalUnprocessed retrieves orders that reached a terminal status
	// but whose delivery effects claim is still open. Used by the sweep job
	// to retry effects after a crash between status commit and effects.
	GetTerminalUnprocessed(ctx context.Context) ([]*order.Order, error)
}
