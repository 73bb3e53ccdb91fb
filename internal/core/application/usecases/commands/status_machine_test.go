package commands_test

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/participant"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type machineFixture struct {
	orderID   kernel.UUID
	buyerID   kernel.UUID
	sellerID  kernel.UUID
	driverID  kernel.UUID
	productID kernel.UUID
	aggregate *order.Order
	product   *product.Product
}

func newMachineFixture(t *testing.T, status order.Status) machineFixture {
	t.Helper()

	f := machineFixture{
		orderID:   kernel.NewUUID(),
		buyerID:   kernel.NewUUID(),
		sellerID:  kernel.NewUUID(),
		driverID:  kernel.NewUUID(),
		productID: kernel.NewUUID(),
	}

	aggregate, err := order.RestoreOrder(f.orderID, f.buyerID, f.sellerID, &f.driverID,
		[]kernel.UUID{f.productID}, "3 kg", status, false)
	require.NoError(t, err)
	f.aggregate = aggregate

	p, err := product.RestoreProduct(f.productID, f.sellerID, "Arabica Coffee", "10 kg")
	require.NoError(t, err)
	f.product = p

	return f
}

// expectParties wires the participant directory lookups for all three parties.
func (f machineFixture) expectParties(ctx context.Context, dir *MockParticipantDirectory, t *testing.T) {
	t.Helper()

	buyer, err := participant.RestoreParticipant(f.buyerID, "alice", participant.RoleBuyer)
	require.NoError(t, err)
	seller, err := participant.RestoreParticipant(f.sellerID, "bob", participant.RoleSeller)
	require.NoError(t, err)
	driver, err := participant.RestoreParticipant(f.driverID, "courier-7", participant.RoleDriver)
	require.NoError(t, err)

	dir.On("Get", ctx, f.buyerID).Return(buyer, nil)
	dir.On("Get", ctx, f.sellerID).Return(seller, nil)
	dir.On("Get", ctx, f.driverID).Return(driver, nil)
}

func TestStatusMachine_Advance_AppliesShipped(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Pending)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)
	repo.On("AdvanceStatus", ctx, f.orderID, order.Shipped).Return(true, nil)

	promoteUow := new(MockLifecycleUoW)
	promoteUow.On("Begin", ctx).Return(nil).Once()
	promoteUow.On("OrderRepository").Return(repo)
	promoteUow.On("Commit", ctx).Return(nil).Once()
	promoteUow.On("Rollback", ctx).Return(nil).Once()

	dir := new(MockParticipantDirectory)
	f.expectParties(ctx, dir, t)

	prodRepo := new(MockProductRepository)
	prodRepo.On("GetByIDs", ctx, []kernel.UUID{f.productID}).Return([]*product.Product{f.product}, nil)

	notifRepo := new(MockNotificationRepository)
	notifRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Twice()

	effectsUow := new(MockLifecycleUoW)
	effectsUow.On("Begin", ctx).Return(nil).Once()
	effectsUow.On("ParticipantDirectory").Return(dir)
	effectsUow.On("ProductRepository").Return(prodRepo)
	effectsUow.On("NotificationRepository").Return(notifRepo)
	effectsUow.On("Commit", ctx).Return(nil).Once()
	effectsUow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(promoteUow).Once()
	factory.On("Create").Return(effectsUow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderStatusChanged", ctx, f.aggregate, order.Shipped).Return(nil).Once()

	machine := commands.NewStatusMachine(factory, publisher, testLogger())
	result, err := machine.Advance(ctx, f.orderID, order.Shipped, commands.SourceDriver)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, order.Shipped, result.Status)

	repo.AssertExpectations(t)
	notifRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	// quantity untouched until a terminal transition
	assert.Equal(t, "10 kg", f.product.Quantity())
}

func TestStatusMachine_Advance_RejectsStaleProposal(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.DriverDelivered)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	uow := new(MockLifecycleUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	machine := commands.NewStatusMachine(factory, publisher, testLogger())
	result, err := machine.Advance(ctx, f.orderID, order.Shipped, commands.SourceDriver)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, order.DriverDelivered, result.Status)

	repo.AssertNotCalled(t, "AdvanceStatus", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatusMachine_Advance_BuyerCannotConfirmPending(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Pending)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	uow := new(MockLifecycleUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	machine := commands.NewStatusMachine(factory, new(MockEventPublisher), testLogger())
	result, err := machine.Advance(ctx, f.orderID, order.Delivered, commands.SourceBuyer)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, order.Pending, result.Status)
	repo.AssertNotCalled(t, "AdvanceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatusMachine_Advance_LostRace(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Pending)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)
	repo.On("AdvanceStatus", ctx, f.orderID, order.Shipped).Return(false, nil)

	uow := new(MockLifecycleUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	machine := commands.NewStatusMachine(factory, new(MockEventPublisher), testLogger())
	result, err := machine.Advance(ctx, f.orderID, order.Shipped, commands.SourceDriver)
	require.NoError(t, err)
	assert.False(t, result.Applied)
}

func TestStatusMachine_Advance_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderId", orderID))

	uow := new(MockLifecycleUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	machine := commands.NewStatusMachine(factory, new(MockEventPublisher), testLogger())
	_, err := machine.Advance(ctx, orderID, order.Shipped, commands.SourceDriver)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestStatusMachine_Advance_TerminalRunsDeliveryEffectsOnce(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Shipped)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)
	repo.On("AdvanceStatus", ctx, f.orderID, order.DriverDelivered).Return(true, nil)

	promoteUow := new(MockLifecycleUoW)
	promoteUow.On("Begin", ctx).Return(nil).Once()
	promoteUow.On("OrderRepository").Return(repo)
	promoteUow.On("Commit", ctx).Return(nil).Once()
	promoteUow.On("Rollback", ctx).Return(nil).Once()

	dir := new(MockParticipantDirectory)
	f.expectParties(ctx, dir, t)

	prodRepo := new(MockProductRepository)
	prodRepo.On("GetByIDs", ctx, []kernel.UUID{f.productID}).Return([]*product.Product{f.product}, nil)
	prodRepo.On("Update", ctx, f.product).Return(nil).Once()

	notifRepo := new(MockNotificationRepository)
	// buyer delivered, seller delivered+payment, driver delivered+payment
	notifRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Times(5)

	effectsRepo := new(MockOrderRepository)
	effectsRepo.On("ClaimDeliveryEffects", ctx, f.orderID).Return(true, nil).Once()

	effectsUow := new(MockLifecycleUoW)
	effectsUow.On("Begin", ctx).Return(nil).Once()
	effectsUow.On("OrderRepository").Return(effectsRepo)
	effectsUow.On("ParticipantDirectory").Return(dir)
	effectsUow.On("ProductRepository").Return(prodRepo)
	effectsUow.On("NotificationRepository").Return(notifRepo)
	effectsUow.On("Commit", ctx).Return(nil).Once()
	effectsUow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(promoteUow).Once()
	factory.On("Create").Return(effectsUow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderStatusChanged", ctx, f.aggregate, order.DriverDelivered).Return(nil).Once()

	machine := commands.NewStatusMachine(factory, publisher, testLogger())
	result, err := machine.Advance(ctx, f.orderID, order.DriverDelivered, commands.SourceDriver)
	require.NoError(t, err)
	assert.True(t, result.Applied)

	// "10 kg" stock minus the order's "3 kg"
	assert.Equal(t, "7 kg", f.product.Quantity())
	prodRepo.AssertExpectations(t)
	notifRepo.AssertExpectations(t)
	effectsRepo.AssertExpectations(t)
}

func TestStatusMachine_Advance_ClaimLostSkipsDeliveryEffects(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Shipped)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)
	repo.On("AdvanceStatus", ctx, f.orderID, order.DriverDelivered).Return(true, nil)

	promoteUow := new(MockLifecycleUoW)
	promoteUow.On("Begin", ctx).Return(nil).Once()
	promoteUow.On("OrderRepository").Return(repo)
	promoteUow.On("Commit", ctx).Return(nil).Once()
	promoteUow.On("Rollback", ctx).Return(nil).Once()

	dir := new(MockParticipantDirectory)
	f.expectParties(ctx, dir, t)

	prodRepo := new(MockProductRepository)
	prodRepo.On("GetByIDs", ctx, []kernel.UUID{f.productID}).Return([]*product.Product{f.product}, nil)

	effectsRepo := new(MockOrderRepository)
	effectsRepo.On("ClaimDeliveryEffects", ctx, f.orderID).Return(false, nil).Once()

	notifRepo := new(MockNotificationRepository)

	effectsUow := new(MockLifecycleUoW)
	effectsUow.On("Begin", ctx).Return(nil).Once()
	effectsUow.On("OrderRepository").Return(effectsRepo)
	effectsUow.On("ParticipantDirectory").Return(dir)
	effectsUow.On("ProductRepository").Return(prodRepo)
	effectsUow.On("NotificationRepository").Return(notifRepo)
	effectsUow.On("Commit", ctx).Return(nil).Once()
	effectsUow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(promoteUow).Once()
	factory.On("Create").Return(effectsUow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderStatusChanged", ctx, f.aggregate, order.DriverDelivered).Return(nil).Once()

	machine := commands.NewStatusMachine(factory, publisher, testLogger())
	result, err := machine.Advance(ctx, f.orderID, order.DriverDelivered, commands.SourceDriver)
	require.NoError(t, err)
	assert.True(t, result.Applied)

	// the claim loser deducts nothing and notifies nobody
	assert.Equal(t, "10 kg", f.product.Quantity())
	prodRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestStatusMachine_Advance_EffectFailureDoesNotFailTransition(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Pending)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)
	repo.On("AdvanceStatus", ctx, f.orderID, order.Shipped).Return(true, nil)

	promoteUow := new(MockLifecycleUoW)
	promoteUow.On("Begin", ctx).Return(nil).Once()
	promoteUow.On("OrderRepository").Return(repo)
	promoteUow.On("Commit", ctx).Return(nil).Once()
	promoteUow.On("Rollback", ctx).Return(nil).Once()

	effectsUow := new(MockLifecycleUoW)
	effectsUow.On("Begin", ctx).Return(errors.New("connection lost")).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(promoteUow).Once()
	factory.On("Create").Return(effectsUow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderStatusChanged", ctx, f.aggregate, order.Shipped).Return(nil).Once()

	machine := commands.NewStatusMachine(factory, publisher, testLogger())
	result, err := machine.Advance(ctx, f.orderID, order.Shipped, commands.SourceDriver)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	publisher.AssertExpectations(t)
}

func TestStatusMachine_SweepDeliveryEffects(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.DriverDelivered)

	listRepo := new(MockOrderRepository)
	listRepo.On("GetTerminalUnprocessed", ctx).Return([]*order.Order{f.aggregate}, nil).Once()

	listUow := new(MockLifecycleUoW)
	listUow.On("Begin", ctx).Return(nil).Once()
	listUow.On("OrderRepository").Return(listRepo)
	listUow.On("Commit", ctx).Return(nil).Once()
	listUow.On("Rollback", ctx).Return(nil).Once()

	dir := new(MockParticipantDirectory)
	f.expectParties(ctx, dir, t)

	prodRepo := new(MockProductRepository)
	prodRepo.On("GetByIDs", ctx, []kernel.UUID{f.productID}).Return([]*product.Product{f.product}, nil)
	prodRepo.On("Update", ctx, f.product).Return(nil).Once()

	notifRepo := new(MockNotificationRepository)
	notifRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Times(5)

	sweepRepo := new(MockOrderRepository)
	sweepRepo.On("ClaimDeliveryEffects", ctx, f.orderID).Return(true, nil).Once()

	sweepUow := new(MockLifecycleUoW)
	sweepUow.On("Begin", ctx).Return(nil).Once()
	sweepUow.On("OrderRepository").Return(sweepRepo)
	sweepUow.On("ParticipantDirectory").Return(dir)
	sweepUow.On("ProductRepository").Return(prodRepo)
	sweepUow.On("NotificationRepository").Return(notifRepo)
	sweepUow.On("Commit", ctx).Return(nil).Once()
	sweepUow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(sweepUow).Once()

	machine := commands.NewStatusMachine(factory, new(MockEventPublisher), testLogger())
	processed, err := machine.SweepDeliveryEffects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, "7 kg", f.product.Quantity())
	notifRepo.AssertExpectations(t)
}
