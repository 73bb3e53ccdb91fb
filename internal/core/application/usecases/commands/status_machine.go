package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/metrics"
)

// TransitionSource identifies who proposed a status transition. The buyer
// source carries extra rules: buyers may only confirm delivery.
type TransitionSource int

const (
	SourceUnknown TransitionSource = iota
	SourceDriver
	SourceBuyer
	SourceAdmin
)

// String returns the log label of the source. Implements fmt.Stringer.
func (s TransitionSource) String() string {
	switch s {
	case SourceDriver:
		return "driver"
	case SourceBuyer:
		return "buyer"
	case SourceAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// TransitionResult reports what a status proposal did.
type TransitionResult struct {
	// Applied is true when this proposal's write won, false when the
	// proposal was stale, a duplicate, or lost a concurrent race.
	Applied bool
	// Status is the order's status after the proposal was handled.
	Status order.Status
}

// StatusTransitioner proposes status transitions. Implemented by StatusMachine;
// command handlers depend on this to stay testable in isolation.
type StatusTransitioner interface {
	Advance(ctx context.Context, orderID kernel.UUID, target order.Status,
		source TransitionSource) (TransitionResult, error)
}

// StatusMachine is the single write path for order status. Every transition,
// no matter which command proposed it, goes through Advance, which enforces
// the monotonic rank order and runs the per-status side effects exactly once.
//
// Concurrency is handled with two database compare-and-sets instead of
// in-process locks: the status promotion itself, and a separate
// delivery-processed claim that gates the one-time delivery effects. Between
// them, N racing "delivered" proposals produce one status change, one
// inventory deduction and one delivered notification set.
//
// The status change commits on its own before any effects run and is never
// rolled back. Effect failures are logged and counted; the sweep job retries
// them out of band through SweepDeliveryEffects.
type StatusMachine struct {
	uowFactory LifecycleUoWFactory
	publisher  ports.EventPublisher
	fanout     services.NotificationFanout
	adjuster   services.InventoryAdjuster
	logger     *slog.Logger
}

// NewStatusMachine creates the status machine with its transactional factory,
// the broker publisher and a logger.
func NewStatusMachine(uowFactory LifecycleUoWFactory, publisher ports.EventPublisher,
	logger *slog.Logger) *StatusMachine {
	return &StatusMachine{
		uowFactory: uowFactory,
		publisher:  publisher,
		fanout:     services.NewNotificationFanout(),
		adjuster:   services.NewInventoryAdjuster(),
		logger:     logger.With("component", "status-machine"),
	}
}

// Advance proposes moving the order to target on behalf of source.
//
// The proposal is applied only when target ranks strictly above the stored
// status and, for the buyer source, only as a confirmation of an order that
// has at least shipped. Rejected proposals return Applied=false with a nil
// error; unknown orders and invalid targets are errors.
func (sm *StatusMachine) Advance(ctx context.Context, orderID kernel.UUID,
	target order.Status, source TransitionSource) (TransitionResult, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if err := target.Validate(); err != nil {
		return TransitionResult{}, err
	}

	aggregate, applied, err := sm.promote(ctx, orderID, target, source)
	if err != nil {
		return TransitionResult{}, err
	}

	if !applied {
		metrics.StatusTransitionsRejectedTotal.Inc()
		return TransitionResult{Applied: false, Status: aggregate.Status()}, nil
	}

	metrics.StatusTransitionsAppliedTotal.Inc()
	sm.logger.Info("status transition applied",
		"orderId", orderID.String(), "status", target.String(), "source", source.String())

	if err := sm.runStatusEffects(ctx, aggregate, target); err != nil {
		metrics.DeliveryEffectsFailedTotal.Inc()
		sm.logger.Error("status side effects failed",
			"orderId", orderID.String(), "status", target.String(), "error", err)
	}

	if err := sm.publisher.PublishOrderStatusChanged(ctx, aggregate, target); err != nil {
		metrics.EventPublishFailedTotal.Inc()
		sm.logger.Error("order status event publish failed",
			"orderId", orderID.String(), "status", target.String(), "error", err)
	}

	return TransitionResult{Applied: true, Status: target}, nil
}

// promote loads the order, checks the source rules and runs the status
// compare-and-set. The returned order reflects the state read before the CAS.
func (sm *StatusMachine) promote(ctx context.Context, orderID kernel.UUID,
	target order.Status, source TransitionSource) (*order.Order, bool, error) {
	uow := sm.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	if source == SourceBuyer && (target != order.Delivered || !aggregate.CanBuyerConfirm()) {
		return aggregate, false, nil
	}

	if !aggregate.Status().CanAdvanceTo(target) {
		return aggregate, false, nil
	}

	applied, err := uow.OrderRepository().AdvanceStatus(ctx, orderID, target)
	if err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return aggregate, applied, nil
}

// runStatusEffects performs the fan-out for an applied transition and, on the
// first terminal arrival, the claim-gated delivery effects. Everything runs
// in one transaction so a failure reopens the delivery claim for the sweep.
func (sm *StatusMachine) runStatusEffects(ctx context.Context, aggregate *order.Order,
	newStatus order.Status) error {
	uow := sm.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parties := resolveParties(ctx, sm.logger, uow.ParticipantDirectory(), aggregate)
	products, err := uow.ProductRepository().GetByIDs(ctx, aggregate.ProductIDs())
	if err != nil {
		return err
	}

	batch, err := sm.fanout.OnStatusChanged(aggregate, parties, displayName(products), newStatus)
	if err != nil {
		return err
	}
	if err = storeNotifications(ctx, uow.NotificationRepository(), batch); err != nil {
		return err
	}

	if newStatus.IsTerminal() {
		won, claimErr := uow.OrderRepository().ClaimDeliveryEffects(ctx, aggregate.ID())
		if claimErr != nil {
			return claimErr
		}
		if won {
			if err = sm.applyDeliveryEffects(ctx, uow, aggregate, parties, products); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

// SweepDeliveryEffects retries the delivery side effects for terminal orders
// whose claim is still open, the recovery path for crashes between the status
// commit and the effects transaction. Returns how many orders were processed.
func (sm *StatusMachine) SweepDeliveryEffects(ctx context.Context) (int, error) {
	pending, err := sm.pendingDeliveries(ctx)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, aggregate := range pending {
		if err := sm.sweepOne(ctx, aggregate); err != nil {
			metrics.DeliveryEffectsFailedTotal.Inc()
			sm.logger.Error("delivery effects sweep failed",
				"orderId", aggregate.ID().String(), "error", err)
			continue
		}
		processed++
	}

	return processed, nil
}

func (sm *StatusMachine) pendingDeliveries(ctx context.Context) ([]*order.Order, error) {
	uow := sm.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetTerminalUnprocessed(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pending, nil
}

func (sm *StatusMachine) sweepOne(ctx context.Context, aggregate *order.Order) error {
	uow := sm.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	won, err := uow.OrderRepository().ClaimDeliveryEffects(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if !won {
		// a concurrent transition already took the claim
		return uow.Commit(ctx)
	}

	parties := resolveParties(ctx, sm.logger, uow.ParticipantDirectory(), aggregate)
	products, err := uow.ProductRepository().GetByIDs(ctx, aggregate.ProductIDs())
	if err != nil {
		return err
	}

	if err = sm.applyDeliveryEffects(ctx, uow, aggregate, parties, products); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// applyDeliveryEffects runs the one-time delivery block inside the caller's
// transaction: inventory deduction plus the delivered and payment fan-out.
// Callers invoke it only after winning the delivery claim.
func (sm *StatusMachine) applyDeliveryEffects(ctx context.Context, uow LifecycleUoW,
	aggregate *order.Order, parties services.Participants, products []*product.Product) error {
	result := sm.adjuster.Deduct(aggregate.Quantity(), products)
	for _, p := range result.Adjusted {
		if err := uow.ProductRepository().Update(ctx, p); err != nil {
			return err
		}
	}
	for _, p := range result.Depleted {
		metrics.ProductsOutOfStockTotal.Inc()
		sm.logger.Warn("product out of stock",
			"productId", p.ID().String(), "orderId", aggregate.ID().String())
	}

	batch, err := sm.fanout.OnOrderDelivered(aggregate, parties, displayName(products))
	if err != nil {
		return err
	}

	return storeNotifications(ctx, uow.NotificationRepository(), batch)
}

