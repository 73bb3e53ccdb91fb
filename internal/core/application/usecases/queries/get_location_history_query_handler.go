package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetLocationHistoryQueryHandler reads an order's tracking log from the
// database. An order that was never tracked yields an empty slice, not an
// error: callers render it as an empty history.
type GetLocationHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetLocationHistoryQueryHandler creates a handler for history queries.
func NewGetLocationHistoryQueryHandler(db *gorm.DB) GetLocationHistoryQueryHandler {
	return GetLocationHistoryQueryHandler{db: db}
}

// Handle returns all samples for the order, most recent first.
func (h GetLocationHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetLocationHistoryQuery,
) ([]LocationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]LocationResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
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
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sample trackingSampleRow

		if err = rows.Scan(&sample.ID, &sample.OrderID, &sample.DriverID,
			&sample.Latitude, &sample.Longitude, &sample.StatusLabel, &sample.RecordedAt); err != nil {
			return nil, err
		}

		response, respErr := sample.toResponse()
		if respErr != nil {
			return nil, respErr
		}
		history = append(history, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
