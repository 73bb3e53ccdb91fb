package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetUnreadCountQueryIsNotConstructed = errors.New(
	"GetUnreadCountQuery must be created via NewGetUnreadCountQuery constructor",
)

// GetUnreadCountQuery counts a recipient's unread notifications.
type GetUnreadCountQuery struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnreadCountQuery creates an unread count query for the recipient.
func NewGetUnreadCountQuery(recipientID kernel.UUID) (GetUnreadCountQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return GetUnreadCountQuery{}, err
	}

	return GetUnreadCountQuery{
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnreadCountQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadCountQueryIsNotConstructed)
}

// RecipientID returns the recipient whose unread notifications are counted.
func (q GetUnreadCountQuery) RecipientID() kernel.UUID {
	return q.recipientID
}
