package queries

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetLatestLocationQueryHandler serves the latest known location of an order.
// It reads the cache first; on a miss it falls back to the location log and
// backfills the cache so the next read is cheap.
type GetLatestLocationQueryHandler struct {
	db     *gorm.DB
	cache  ports.LocationCache
	logger *slog.Logger
}

// NewGetLatestLocationQueryHandler creates a handler for latest-location queries.
func NewGetLatestLocationQueryHandler(db *gorm.DB, cache ports.LocationCache,
	logger *slog.Logger) GetLatestLocationQueryHandler {
	return GetLatestLocationQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "latest-location-query"),
	}
}

// Handle returns the most recent sample for the order, or an
// object-not-found error when the order has never been tracked.
func (h GetLatestLocationQueryHandler) Handle(
	ctx context.Context,
	query GetLatestLocationQuery,
) (LocationResponse, error) {
	if err := query.Validate(); err != nil {
		return LocationResponse{}, err
	}

	if cached, err := h.cache.GetLatest(ctx, query.OrderID()); err == nil && cached != nil {
		return LocationResponse{
			OrderID:     cached.OrderID(),
			DriverID:    cached.DriverID(),
			Latitude:    cached.Location().Latitude(),
			Longitude:   cached.Location().Longitude(),
			StatusLabel: cached.StatusLabel(),
			RecordedAt:  cached.RecordedAt(),
		}, nil
	} else if err != nil {
		h.logger.Warn("latest location cache read failed",
			"orderId", query.OrderID().String(), "error", err)
	}

	row, err := h.readLatestFromLog(ctx, query.OrderID())
	if err != nil {
		return LocationResponse{}, err
	}

	if sample, restoreErr := row.toSample(); restoreErr == nil {
		if err = h.cache.SetLatest(ctx, sample); err != nil {
			h.logger.Warn("latest location cache backfill failed",
				"orderId", query.OrderID().String(), "error", err)
		}
	}

	return row.toResponse()
}

func (h GetLatestLocationQueryHandler) readLatestFromLog(ctx context.Context,
	orderID kernel.UUID) (*trackingSampleRow, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			driver_id,
			latitude,
			longitude,
			status_label,
			recorded_at
		FROM tracking_samples
		WHERE order_id = ?
		ORDER BY recorded_at DESC
		LIMIT 1
	`, orderID.Bytes()).Row()

	sample := &trackingSampleRow{}
	if err := row.Scan(&sample.ID, &sample.OrderID, &sample.DriverID,
		&sample.Latitude, &sample.Longitude, &sample.StatusLabel, &sample.RecordedAt); err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("orderId", orderID, err)
	}

	return sample, nil
}
