package queries

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// trackingSampleRow is the raw shape of a tracking_samples row.
type trackingSampleRow struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	DriverID    uuid.UUID
	Latitude    float64
	Longitude   float64
	StatusLabel string
	RecordedAt  time.Time
}

func (r *trackingSampleRow) toResponse() (LocationResponse, error) {
	orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
	if err != nil {
		return LocationResponse{}, err
	}
	driverID, err := kernel.UUIDFromBytes(r.DriverID[:])
	if err != nil {
		return LocationResponse{}, err
	}

	return LocationResponse{
		OrderID:     orderID,
		DriverID:    driverID,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		StatusLabel: r.StatusLabel,
		RecordedAt:  r.RecordedAt,
	}, nil
}

func (r *trackingSampleRow) toSample() (*tracking.Sample, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(r.DriverID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPoint(r.Latitude, r.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreSample(id, orderID, driverID, location, r.StatusLabel, r.RecordedAt)
}
