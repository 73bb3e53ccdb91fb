package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordPingCommandHandler_Handle_AppendsAndProposes(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Pending)
	cmd, err := commands.NewRecordPingCommand(f.orderID, f.driverID, 55.75, 37.61, "picked_up")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	trackRepo := new(MockTrackingRepository)
	trackRepo.On("Append", ctx, mock.AnythingOfType("*tracking.Sample")).Return(nil).Once()

	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("TrackingRepository").Return(trackRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockLocationCache)
	cache.On("SetLatest", ctx, mock.AnythingOfType("*tracking.Sample")).Return(nil).Once()

	machine := new(MockStatusTransitioner)
	machine.On("Advance", ctx, f.orderID, order.Shipped, commands.SourceDriver).
		Return(commands.TransitionResult{Applied: true, Status: order.Shipped}, nil).Once()

	h := commands.NewRecordPingCommandHandler(factory, machine, cache, testLogger())
	sample, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, sample)
	assert.Equal(t, "picked_up", sample.StatusLabel())
	assert.True(t, sample.DriverID().IsEqual(f.driverID))

	trackRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
	machine.AssertExpectations(t)
}

func TestRecordPingCommandHandler_Handle_UnrecognizedLabelStillRecorded(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Shipped)
	cmd, err := commands.NewRecordPingCommand(f.orderID, f.driverID, 10, 20, "teleported")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	trackRepo := new(MockTrackingRepository)
	trackRepo.On("Append", ctx, mock.AnythingOfType("*tracking.Sample")).Return(nil).Once()

	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("TrackingRepository").Return(trackRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockLocationCache)
	cache.On("SetLatest", ctx, mock.AnythingOfType("*tracking.Sample")).Return(nil).Once()

	machine := new(MockStatusTransitioner)

	h := commands.NewRecordPingCommandHandler(factory, machine, cache, testLogger())
	sample, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "teleported", sample.StatusLabel())
	machine.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPingCommandHandler_Handle_RejectedProposalStillAcknowledged(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Delivered)
	cmd, err := commands.NewRecordPingCommand(f.orderID, f.driverID, 10, 20, "on_route")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	trackRepo := new(MockTrackingRepository)
	trackRepo.On("Append", ctx, mock.AnythingOfType("*tracking.Sample")).Return(nil).Once()

	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("TrackingRepository").Return(trackRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockLocationCache)
	cache.On("SetLatest", ctx, mock.AnythingOfType("*tracking.Sample")).Return(nil).Once()

	machine := new(MockStatusTransitioner)
	machine.On("Advance", ctx, f.orderID, order.Shipped, commands.SourceDriver).
		Return(commands.TransitionResult{Applied: false, Status: order.Delivered}, nil).Once()

	h := commands.NewRecordPingCommandHandler(factory, machine, cache, testLogger())
	sample, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, sample)
}

func TestRecordPingCommandHandler_Handle_WrongDriver(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Shipped)
	stranger := kernel.NewUUID()
	cmd, err := commands.NewRecordPingCommand(f.orderID, stranger, 10, 20, "on_route")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	trackRepo := new(MockTrackingRepository)

	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordPingCommandHandler(factory, new(MockStatusTransitioner),
		new(MockLocationCache), testLogger())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrDriverNotAssigned)
	trackRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRecordPingCommandHandler_Handle_UnassignedOrderFailsClosed(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Pending)

	unassigned, err := order.RestoreOrder(f.orderID, f.buyerID, f.sellerID, nil,
		[]kernel.UUID{f.productID}, "3 kg", order.Pending, false)
	require.NoError(t, err)

	cmd, err := commands.NewRecordPingCommand(f.orderID, f.driverID, 10, 20, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(unassigned, nil)

	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordPingCommandHandler(factory, new(MockStatusTransitioner),
		new(MockLocationCache), testLogger())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrDriverNotAssigned)
}

func TestRecordPingCommandHandler_Handle_CacheFailureIsBestEffort(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Shipped)
	cmd, err := commands.NewRecordPingCommand(f.orderID, f.driverID, 10, 20, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	trackRepo := new(MockTrackingRepository)
	trackRepo.On("Append", ctx, mock.AnythingOfType("*tracking.Sample")).Return(nil).Once()

	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("TrackingRepository").Return(trackRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockLocationCache)
	cache.On("SetLatest", ctx, mock.AnythingOfType("*tracking.Sample")).
		Return(errors.New("redis down")).Once()

	h := commands.NewRecordPingCommandHandler(factory, new(MockStatusTransitioner), cache, testLogger())
	sample, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, sample)
}
