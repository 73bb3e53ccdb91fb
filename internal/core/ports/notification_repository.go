package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// MarkAllRead flips the read flag on every unread notification of the
	// recipient. Returns the number of notifications marked.
	MarkAllRead(ctx context.Context, recipientID kernel.UUID) (int64, error)
}
