package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/ports"
	"marketplace/internal/metrics"
)

// ErrDriverNotAssigned is returned when the reporting driver is not the
// order's assigned driver. Orders without an assigned driver reject every
// reporter.
var ErrDriverNotAssigned = errors.New("driver is not assigned to this order")

// RecordPingCommandHandler ingests driver location pings.
//
// A ping always appends to the location log once the driver is authorized,
// no matter what its status label says. When the label normalizes to a
// canonical status the handler additionally proposes that transition, but a
// rejected or failed proposal never turns a recorded ping into an error.
type RecordPingCommandHandler struct {
	uowFactory TrackingUoWFactory
	machine    StatusTransitioner
	cache      ports.LocationCache
	logger     *slog.Logger
}

// NewRecordPingCommandHandler creates a handler for tracking ingest.
func NewRecordPingCommandHandler(uowFactory TrackingUoWFactory, machine StatusTransitioner,
	cache ports.LocationCache, logger *slog.Logger) RecordPingCommandHandler {
	return RecordPingCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		cache:      cache,
		logger:     logger.With("component", "tracking-ingest"),
	}
}

// Handle records the ping and returns the appended sample.
func (h *RecordPingCommandHandler) Handle(ctx context.Context, cmd RecordPingCommand) (*tracking.Sample, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	metrics.TrackingPingsTotal.Inc()

	sample, err := h.appendSample(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if err = h.cache.SetLatest(ctx, sample); err != nil {
		h.logger.Warn("latest location cache write failed",
			"orderId", cmd.OrderID().String(), "error", err)
	}

	if target := order.NormalizeTrackingStatus(cmd.RawStatus()); target != order.Unknown {
		if _, err = h.machine.Advance(ctx, cmd.OrderID(), target, SourceDriver); err != nil {
			h.logger.Error("ping status proposal failed",
				"orderId", cmd.OrderID().String(), "status", cmd.RawStatus(), "error", err)
		}
	}

	return sample, nil
}

func (h *RecordPingCommandHandler) appendSample(ctx context.Context, cmd RecordPingCommand) (*tracking.Sample, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !aggregate.IsDriver(cmd.DriverID()) {
		return nil, ErrDriverNotAssigned
	}

	sample, err := tracking.NewSample(cmd.OrderID(), cmd.DriverID(), cmd.Location(), cmd.RawStatus())
	if err != nil {
		return nil, err
	}

	if err = uow.TrackingRepository().Append(ctx, sample); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sample, nil
}
