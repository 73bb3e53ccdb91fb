package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/metrics"
)

// PlaceOrderCommandHandler creates new orders in Pending status and notifies
// the seller that something was ordered.
type PlaceOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	publisher  ports.EventPublisher
	fanout     services.NotificationFanout
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory LifecycleUoWFactory, publisher ports.EventPublisher,
	logger *slog.Logger) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		fanout:     services.NewNotificationFanout(),
		logger:     logger.With("component", "place-order"),
	}
}

// Handle creates and persists the order, fans out the placement notification
// and announces the order on the broker. A publish failure is logged, never
// returned: the order is already committed.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.BuyerID(), cmd.SellerID(),
		cmd.ProductIDs(), cmd.Quantity())
	if err != nil {
		return err
	}

	if err = h.persist(ctx, cmd, aggregate); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderPlaced(ctx, aggregate); err != nil {
		metrics.EventPublishFailedTotal.Inc()
		h.logger.Error("order placed event publish failed",
			"orderId", aggregate.ID().String(), "error", err)
	}

	return nil
}

func (h *PlaceOrderCommandHandler) persist(ctx context.Context, cmd PlaceOrderCommand,
	aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	products, err := uow.ProductRepository().GetByIDs(ctx, cmd.ProductIDs())
	if err != nil {
		return err
	}

	parties := resolveParties(ctx, h.logger, uow.ParticipantDirectory(), aggregate)
	batch, err := h.fanout.OnOrderPlaced(aggregate, parties, displayName(products))
	if err != nil {
		return err
	}

	if err = storeNotifications(ctx, uow.NotificationRepository(), batch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
