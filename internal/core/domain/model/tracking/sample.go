package tracking

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrSampleIsNotConstructed is returned when a Sample instance was not
// created through its constructor.
var ErrSampleIsNotConstructed = errors.New("Sample must be created via NewSample or RestoreSample constructor")

// Sample is an immutable tracking record: where a driver reported an order
// to be at a given moment. StatusLabel carries the raw status string that
// accompanied the report, verbatim and possibly empty; normalization into
// the canonical status happens in the application layer, and unrecognized
// labels are still recorded.
type Sample struct {
	id          kernel.UUID
	orderID     kernel.UUID
	driverID    kernel.UUID
	location    kernel.GeoPoint
	statusLabel string
	recordedAt  time.Time

	isConstructed bool
}

// NewSample creates a tracking sample stamped with the current time.
func NewSample(orderID, driverID kernel.UUID, location kernel.GeoPoint, statusLabel string) (*Sample, error) {
	return RestoreSample(kernel.NewUUID(), orderID, driverID, location, statusLabel, time.Now().UTC())
}

// RestoreSample recreates a tracking sample from persisted state.
func RestoreSample(id, orderID, driverID kernel.UUID, location kernel.GeoPoint,
	statusLabel string, recordedAt time.Time) (*Sample, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverID.Validate(),
		location.Validate(),
	); err != nil {
		return nil, err
	}

	return &Sample{
		id:            id,
		orderID:       orderID,
		driverID:      driverID,
		location:      location,
		statusLabel:   statusLabel,
		recordedAt:    recordedAt,
		isConstructed: true,
	}, nil
}

func (s *Sample) Validate() error {
	if !s.isConstructed {
		return ErrSampleIsNotConstructed
	}
	return nil
}

func (s *Sample) ID() kernel.UUID {
	return s.id
}

func (s *Sample) OrderID() kernel.UUID {
	return s.orderID
}

func (s *Sample) DriverID() kernel.UUID {
	return s.driverID
}

func (s *Sample) Location() kernel.GeoPoint {
	return s.location
}

// StatusLabel returns the raw status string the driver sent, or "" when the
// ping carried none.
func (s *Sample) StatusLabel() string {
	return s.statusLabel
}

func (s *Sample) RecordedAt() time.Time {
	return s.recordedAt
}
