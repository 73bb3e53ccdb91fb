package tracking_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSample(t *testing.T) {
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)

	t.Run("valid sample", func(t *testing.T) {
		orderID := kernel.NewUUID()
		driverID := kernel.NewUUID()

		s, err := tracking.NewSample(orderID, driverID, location, "on_route")
		require.NoError(t, err)

		assert.True(t, s.OrderID().IsEqual(orderID))
		assert.True(t, s.DriverID().IsEqual(driverID))
		assert.True(t, s.Location().IsEqual(location))
		assert.Equal(t, "on_route", s.StatusLabel())
		assert.WithinDuration(t, time.Now().UTC(), s.RecordedAt(), time.Minute)
	})

	t.Run("empty status label is allowed", func(t *testing.T) {
		s, err := tracking.NewSample(kernel.NewUUID(), kernel.NewUUID(), location, "")
		require.NoError(t, err)
		assert.Empty(t, s.StatusLabel())
	})

	t.Run("unrecognized label is recorded verbatim", func(t *testing.T) {
		s, err := tracking.NewSample(kernel.NewUUID(), kernel.NewUUID(), location, "teleported")
		require.NoError(t, err)
		assert.Equal(t, "teleported", s.StatusLabel())
	})

	t.Run("empty driver fails", func(t *testing.T) {
		_, err := tracking.NewSample(kernel.NewUUID(), kernel.UUID{}, location, "on_route")
		require.Error(t, err)
	})
}

func TestRestoreSample(t *testing.T) {
	location, err := kernel.NewGeoPoint(-12.05, -77.04)
	require.NoError(t, err)
	recordedAt := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	s, err := tracking.RestoreSample(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		location, "delivered", recordedAt)
	require.NoError(t, err)

	assert.Equal(t, recordedAt, s.RecordedAt())
	require.NoError(t, s.Validate())
}

func TestSample_Validate(t *testing.T) {
	var s tracking.Sample
	require.ErrorIs(t, s.Validate(), tracking.ErrSampleIsNotConstructed)
}
