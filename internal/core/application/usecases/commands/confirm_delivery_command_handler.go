package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// ConfirmDeliveryCommandHandler promotes an order to Delivered on behalf of
// its buyer. Confirming an order that has not shipped yet, or one already
// Delivered, reports promoted=false without an error, so duplicate
// submissions are harmless.
type ConfirmDeliveryCommandHandler struct {
	machine StatusTransitioner
}

// NewConfirmDeliveryCommandHandler creates a handler for buyer confirmations.
func NewConfirmDeliveryCommandHandler(machine StatusTransitioner) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		machine: machine,
	}
}

// Handle processes the confirmation and reports whether the order was
// promoted to Delivered by this call.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	result, err := h.machine.Advance(ctx, cmd.OrderID(), order.Delivered, SourceBuyer)
	if err != nil {
		return false, err
	}

	return result.Applied, nil
}
