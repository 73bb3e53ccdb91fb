// Package rediscache caches the latest tracking sample per order in Redis.
// The location log in Postgres stays the source of truth; everything here is
// best effort and callers must tolerate misses and failures.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"

	"github.com/redis/go-redis/v9"
)

const latestKeyPrefix = "tracking:latest:"

// DefaultTTL bounds how long a stale latest-location entry can outlive its
// order. Reads repopulate the entry from the database on a miss.
const DefaultTTL = 24 * time.Hour

// LocationCache implements ports.LocationCache on a Redis client.
type LocationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocationCache creates a location cache with the given entry TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewLocationCache(client *redis.Client, ttl time.Duration) *LocationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LocationCache{client: client, ttl: ttl}
}

// cachedSample is the JSON shape of a cache entry.
type cachedSample struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	DriverID    string    `json:"driver_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	StatusLabel string    `json:"status_label"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// SetLatest stores the sample as the order's latest known location.
func (c *LocationCache) SetLatest(ctx context.Context, sample *tracking.Sample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(cachedSample{
		ID:          sample.ID().String(),
		OrderID:     sample.OrderID().String(),
		DriverID:    sample.DriverID().String(),
		Latitude:    sample.Location().Latitude(),
		Longitude:   sample.Location().Longitude(),
		StatusLabel: sample.StatusLabel(),
		RecordedAt:  sample.RecordedAt(),
	})
	if err != nil {
		return fmt.Errorf("marshal cached sample: %w", err)
	}

	return c.client.Set(ctx, latestKey(sample.OrderID()), payload, c.ttl).Err()
}

// GetLatest retrieves the cached latest sample for an order.
// A cache miss yields (nil, nil).
func (c *LocationCache) GetLatest(ctx context.Context, orderID kernel.UUID) (*tracking.Sample, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, latestKey(orderID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var entry cachedSample
	if err = json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal cached sample: %w", err)
	}

	return entry.toSample()
}

func (e cachedSample) toSample() (*tracking.Sample, error) {
	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromString(e.OrderID)
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromString(e.DriverID)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(e.Latitude, e.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreSample(id, orderID, driverID, location, e.StatusLabel, e.RecordedAt)
}

func latestKey(orderID kernel.UUID) string {
	return latestKeyPrefix + orderID.String()
}
