package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/pkg/errs"
)

// SetStatusCommandHandler applies explicit status updates. The raw label is
// parsed with the administrative vocabulary; labels that parse to nothing are
// invalid input, unlike ping labels which are merely recorded.
//
// After an applied update the handler appends a synthetic tracking sample at
// the driver's last known location so the location log mirrors every status
// change, not only the ones drivers reported themselves.
type SetStatusCommandHandler struct {
	uowFactory TrackingUoWFactory
	machine    StatusTransitioner
	logger     *slog.Logger
}

// NewSetStatusCommandHandler creates a handler for explicit status updates.
func NewSetStatusCommandHandler(uowFactory TrackingUoWFactory, machine StatusTransitioner,
	logger *slog.Logger) SetStatusCommandHandler {
	return SetStatusCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		logger:     logger.With("component", "set-status"),
	}
}

// Handle parses and applies the proposed status.
func (h *SetStatusCommandHandler) Handle(ctx context.Context, cmd SetStatusCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	target := order.ParseStatus(cmd.RawStatus())
	if target == order.Unknown {
		return TransitionResult{}, errs.NewValueIsInvalidError("status")
	}

	result, err := h.machine.Advance(ctx, cmd.OrderID(), target, SourceAdmin)
	if err != nil {
		return TransitionResult{}, err
	}

	if result.Applied {
		if err = h.appendSyntheticSample(ctx, cmd); err != nil {
			h.logger.Warn("synthetic tracking sample failed",
				"orderId", cmd.OrderID().String(), "status", cmd.RawStatus(), "error", err)
		}
	}

	return result, nil
}

// appendSyntheticSample records the status change in the location log at the
// driver's last known position, or (0, 0) when the driver never reported one.
// Orders without an assigned driver get no sample.
func (h *SetStatusCommandHandler) appendSyntheticSample(ctx context.Context, cmd SetStatusCommand) error {
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

	if aggregate.Driver() == nil {
		return uow.Commit(ctx)
	}

	location := h.lastKnownLocation(ctx, uow, cmd.OrderID())
	sample, err := tracking.NewSample(cmd.OrderID(), *aggregate.Driver(), location, cmd.RawStatus())
	if err != nil {
		return err
	}

	if err = uow.TrackingRepository().Append(ctx, sample); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SetStatusCommandHandler) lastKnownLocation(ctx context.Context, uow TrackingUoW,
	orderID kernel.UUID) kernel.GeoPoint {
	latest, err := uow.TrackingRepository().GetLatest(ctx, orderID)
	if err != nil || latest == nil {
		origin, _ := kernel.NewGeoPoint(0, 0)
		return origin
	}
	return latest.Location()
}
