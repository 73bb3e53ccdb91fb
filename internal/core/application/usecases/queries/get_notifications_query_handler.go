package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler reads a recipient's notifications from the
// database, newest first.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification queries.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle returns the recipient's notifications. A recipient with none yields
// an empty slice.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]NotificationResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			message,
			related_order_id,
			sender_name,
			is_read,
			created_at
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC
	`, query.RecipientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             uuid.UUID
			kind           string
			message        string
			relatedOrderID sql.Null[uuid.UUID]
			senderName     string
			isRead         bool
			createdAt      time.Time
		)

		if err = rows.Scan(&id, &kind, &message, &relatedOrderID,
			&senderName, &isRead, &createdAt); err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		response := NotificationResponse{
			ID:         notificationID,
			Kind:       kind,
			Message:    message,
			SenderName: senderName,
			IsRead:     isRead,
			CreatedAt:  createdAt,
		}

		if relatedOrderID.Valid {
			orderID, orderErr := kernel.UUIDFromBytes(relatedOrderID.V[:])
			if orderErr != nil {
				return nil, orderErr
			}
			response.RelatedOrderID = &orderID
		}

		notifications = append(notifications, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
