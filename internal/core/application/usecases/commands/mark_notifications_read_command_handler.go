package commands

import (
	"context"
)

// MarkNotificationsReadCommandHandler clears a recipient's unread counter.
type MarkNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationsReadCommandHandler creates a handler for marking
// notifications read.
func NewMarkNotificationsReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationsReadCommandHandler {
	return MarkNotificationsReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks all of the recipient's notifications read and returns how
// many were flipped. Zero is a normal outcome, not an error.
func (h *MarkNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationsReadCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	marked, err := uow.NotificationRepository().MarkAllRead(ctx, cmd.RecipientID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return marked, nil
}
