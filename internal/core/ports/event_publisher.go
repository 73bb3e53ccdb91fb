package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// EventPublisher emits order lifecycle events to the message broker for
// interested downstream consumers. Publishing is fire-and-forget from the
// command handlers' point of view: failures are logged and counted, never
// surfaced to the caller.
type EventPublisher interface {
	// PublishOrderPlaced announces a freshly placed order.
	PublishOrderPlaced(ctx context.Context, aggregate *order.Order) error

	// PublishOrderStatusChanged announces an applied status transition.
	PublishOrderStatusChanged(ctx context.Context, aggregate *order.Order, newStatus order.Status) error
}
