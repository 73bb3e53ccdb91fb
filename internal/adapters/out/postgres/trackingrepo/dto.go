// Package trackingrepo provides data transfer objects and mapping functions for
// the append-only tracking location log.
package trackingrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingSampleDTO represents the database structure for persisting tracking
// samples. The status label is stored verbatim as the driver app sent it,
// recognized or not.
type TrackingSampleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index:idx_tracking_order_recorded,priority:1"`
	DriverID    uuid.UUID `gorm:"type:uuid;not null"`
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	StatusLabel string    `gorm:"type:varchar(255);not null"`
	RecordedAt  time.Time `gorm:"not null;index:idx_tracking_order_recorded,priority:2,sort:desc"`
}

// TableName specifies the database table name for tracking samples.
// Overrides GORM's default naming convention to use "tracking_samples".
func (TrackingSampleDTO) TableName() string {
	return "tracking_samples"
}

// fromDomain converts a tracking sample to its database representation.
func fromDomain(sample *tracking.Sample) TrackingSampleDTO {
	return TrackingSampleDTO{
		ID:          sample.ID().Bytes(),
		OrderID:     sample.OrderID().Bytes(),
		DriverID:    sample.DriverID().Bytes(),
		Latitude:    sample.Location().Latitude(),
		Longitude:   sample.Location().Longitude(),
		StatusLabel: sample.StatusLabel(),
		RecordedAt:  sample.RecordedAt(),
	}
}

// toDomain converts a database DTO to a tracking sample.
func toDomain(dto TrackingSampleDTO) (*tracking.Sample, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreSample(id, orderID, driverID, location, dto.StatusLabel, dto.RecordedAt)
}
