package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSetStatusCommandIsNotConstructed = errors.New(
	"SetStatusCommand must be created via NewSetStatusCommand constructor",
)

// SetStatusCommand represents an explicit status update in the
// administrative vocabulary. The raw label is kept verbatim for the
// synthetic tracking sample the handler appends after an applied update.
type SetStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	rawStatus string

	guard guard.ConstructorGuard
}

// NewSetStatusCommand creates a status update command.
// The label itself is parsed by the handler; only emptiness is rejected here.
func NewSetStatusCommand(orderID kernel.UUID, rawStatus string) (SetStatusCommand, error) {
	statusCommand := SetStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setRawStatus(rawStatus),
	); err != nil {
		return SetStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetStatusCommandIsNotConstructed)
}

// OrderID returns the order being updated.
func (c SetStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RawStatus returns the proposed status label.
func (c SetStatusCommand) RawStatus() string {
	return c.rawStatus
}

func (c *SetStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetStatusCommand) setRawStatus(rawStatus string) error {
	if strings.TrimSpace(rawStatus) == "" {
		return errs.NewValueIsRequiredError("status")
	}

	c.rawStatus = rawStatus
	return nil
}
