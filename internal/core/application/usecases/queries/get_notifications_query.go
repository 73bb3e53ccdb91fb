package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves a recipient's notifications, newest first.
type GetNotificationsQuery struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a notifications query for the recipient.
func NewGetNotificationsQuery(recipientID kernel.UUID) (GetNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return GetNotificationsQuery{}, err
	}

	return GetNotificationsQuery{
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// RecipientID returns the recipient whose notifications are requested.
func (q GetNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

// NotificationResponse represents one notification for rendering.
type NotificationResponse struct {
	ID             kernel.UUID
	Kind           string
	Message        string
	RelatedOrderID *kernel.UUID
	SenderName     string
	IsRead         bool
	CreatedAt      time.Time
}
