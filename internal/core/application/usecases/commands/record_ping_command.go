package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRecordPingCommandIsNotConstructed = errors.New(
	"RecordPingCommand must be created via NewRecordPingCommand constructor",
)

// RecordPingCommand represents a driver's location report for an order,
// optionally carrying a raw status label in the driver vocabulary
// (picked_up, on_route, delivered).
type RecordPingCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	driverID  kernel.UUID
	location  kernel.GeoPoint
	rawStatus string

	guard guard.ConstructorGuard
}

// NewRecordPingCommand creates a ping command. Latitude and longitude are
// validated against geographic bounds; rawStatus may be empty and is never
// validated here, since unrecognized labels are still recorded.
func NewRecordPingCommand(orderID, driverID kernel.UUID, latitude, longitude float64,
	rawStatus string) (RecordPingCommand, error) {
	pingCommand := RecordPingCommand{
		guard:     guard.NewConstructorGuard(),
		rawStatus: rawStatus,
	}

	if err := errors.Join(
		pingCommand.setOrderID(orderID),
		pingCommand.setDriverID(driverID),
		pingCommand.setLocation(latitude, longitude),
	); err != nil {
		return RecordPingCommand{}, err
	}

	return pingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPingCommand) Validate() error {
	return c.guard.Validate(ErrRecordPingCommandIsNotConstructed)
}

// OrderID returns the order being tracked.
func (c RecordPingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the reporting driver.
func (c RecordPingCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Location returns the reported position.
func (c RecordPingCommand) Location() kernel.GeoPoint {
	return c.location
}

// RawStatus returns the status label the driver sent, or "" when absent.
func (c RecordPingCommand) RawStatus() string {
	return c.rawStatus
}

func (c *RecordPingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPingCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *RecordPingCommand) setLocation(latitude, longitude float64) error {
	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return err
	}

	c.location = location
	return nil
}
