package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUnreadCountQueryHandler counts unread notifications for a recipient.
type GetUnreadCountQueryHandler struct {
	db *gorm.DB
}

// NewGetUnreadCountQueryHandler creates a handler for unread count queries.
func NewGetUnreadCountQueryHandler(db *gorm.DB) GetUnreadCountQueryHandler {
	return GetUnreadCountQueryHandler{db: db}
}

// Handle returns how many of the recipient's notifications are unread.
func (h GetUnreadCountQueryHandler) Handle(
	ctx context.Context,
	query GetUnreadCountQuery,
) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	row := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM notifications
		WHERE recipient_id = ? AND is_read = false
	`, query.RecipientID().Bytes()).Row()
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
