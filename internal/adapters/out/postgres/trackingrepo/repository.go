package trackingrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingRepository implements TrackingRepository using GORM.
// Samples are append-only: no update or delete paths exist.
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// Append saves a new tracking sample to the location log.
func (r *GormTrackingRepository) Append(ctx context.Context, sample *tracking.Sample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	dto := fromDomain(sample)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatest retrieves the most recent sample for an order.
func (r *GormTrackingRepository) GetLatest(ctx context.Context, orderID kernel.UUID) (*tracking.Sample, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingSampleDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("recorded_at DESC").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetHistory retrieves all samples for an order, most recent first. An order
// with no samples yields an empty slice.
func (r *GormTrackingRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]*tracking.Sample, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingSampleDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("recorded_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	samples := make([]*tracking.Sample, 0, len(dtos))
	for _, dto := range dtos {
		sample, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
