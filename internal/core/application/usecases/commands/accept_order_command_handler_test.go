package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler_Handle_AssignsDriverAndNotifies(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Pending)

	unassigned, err := order.RestoreOrder(f.orderID, f.buyerID, f.sellerID, nil,
		[]kernel.UUID{f.productID}, "3 kg", order.Pending, false)
	require.NoError(t, err)

	cmd, err := commands.NewAcceptOrderCommand(f.orderID, f.driverID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(unassigned, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.Driver() != nil && o.Driver().IsEqual(f.driverID)
	})).Return(nil).Once()

	prodRepo := new(MockProductRepository)
	prodRepo.On("GetByIDs", ctx, []kernel.UUID{f.productID}).Return([]*product.Product{f.product}, nil)

	dir := new(MockParticipantDirectory)
	f.expectParties(ctx, dir, t)

	notifRepo := new(MockNotificationRepository)
	notifRepo.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Kind() == notification.KindOrderAccepted && n.Recipient().IsEqual(f.buyerID)
	})).Return(nil).Once()
	notifRepo.On("Add", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Kind() == notification.KindDriverAssigned && n.Recipient().IsEqual(f.driverID)
	})).Return(nil).Once()

	uow := new(MockLifecycleUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("ProductRepository").Return(prodRepo)
	uow.On("ParticipantDirectory").Return(dir)
	uow.On("NotificationRepository").Return(notifRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOrderCommandHandler(factory, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertExpectations(t)
	notifRepo.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_FinishedOrder(t *testing.T) {
	ctx := t.Context()
	f := newMachineFixture(t, order.Delivered)

	cmd, err := commands.NewAcceptOrderCommand(f.orderID, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, f.orderID).Return(f.aggregate, nil)

	uow := new(MockLifecycleUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOrderCommandHandler(factory, testLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrOrderIsFinished)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkNotificationsReadCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	recipientID := kernel.NewUUID()
	cmd, err := commands.NewMarkNotificationsReadCommand(recipientID)
	require.NoError(t, err)

	notifRepo := new(MockNotificationRepository)

	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notifRepo).Once(),
		notifRepo.On("MarkAllRead", ctx, recipientID).Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkNotificationsReadCommandHandler(factory)
	marked, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)
	uow.AssertExpectations(t)
}
