package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/services"
)

// AcceptOrderCommandHandler assigns a driver to an order and fans out the
// acceptance notifications to the buyer and the driver.
type AcceptOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	fanout     services.NotificationFanout
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory LifecycleUoWFactory, logger *slog.Logger) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		fanout:     services.NewNotificationFanout(),
		logger:     logger.With("component", "accept-order"),
	}
}

// Handle assigns the driver and persists the acceptance notifications in one
// transaction. Accepting a finished order or reassigning a driver fails with
// the order aggregate's assignment errors.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDriver(cmd.DriverID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	products, err := uow.ProductRepository().GetByIDs(ctx, aggregate.ProductIDs())
	if err != nil {
		return err
	}

	parties := resolveParties(ctx, h.logger, uow.ParticipantDirectory(), aggregate)
	batch, err := h.fanout.OnOrderAccepted(aggregate, parties, displayName(products))
	if err != nil {
		return err
	}

	if err = storeNotifications(ctx, uow.NotificationRepository(), batch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
