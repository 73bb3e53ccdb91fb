package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkNotificationsReadCommand must be created via NewMarkNotificationsReadCommand constructor",
)

// MarkNotificationsReadCommand marks every unread notification of a
// recipient as read.
type MarkNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationsReadCommand creates a mark-read command.
func NewMarkNotificationsReadCommand(recipientID kernel.UUID) (MarkNotificationsReadCommand, error) {
	readCommand := MarkNotificationsReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := readCommand.setRecipientID(recipientID); err != nil {
		return MarkNotificationsReadCommand{}, err
	}

	return readCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationsReadCommandIsNotConstructed)
}

// RecipientID returns the recipient whose notifications are marked.
func (c MarkNotificationsReadCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

func (c *MarkNotificationsReadCommand) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	c.recipientID = recipientID
	return nil
}
