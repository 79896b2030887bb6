package kernel_test

import (
	"math"
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   string
	}{
		{name: "incheon", latitude: 37.4563, longitude: 126.7052},
		{name: "boundary corners", latitude: -90, longitude: 180},
		{name: "latitude too high", latitude: 90.1, longitude: 0, wantErr: "latitude"},
		{name: "longitude too low", latitude: 0, longitude: -180.5, wantErr: "longitude"},
		{name: "nan latitude", latitude: math.NaN(), longitude: 0, wantErr: "latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.latitude, tt.longitude)

			if tt.wantErr != "" {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.latitude, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.longitude, loc.Longitude(), 1e-9)
		})
	}
}

func TestLocation_Validate(t *testing.T) {
	var zero kernel.Location

	require.ErrorIs(t, zero.Validate(), kernel.ErrLocationIsNotConstructed)
}

func TestLocation_DistanceKm(t *testing.T) {
	incheon, _ := kernel.NewLocation(37.4563, 126.7052)
	busan, _ := kernel.NewLocation(35.1796, 129.0756)

	t.Run("incheon to busan", func(t *testing.T) {
		d, err := incheon.DistanceKm(busan)

		require.NoError(t, err)
		assert.InDelta(t, 330, d, 10)
	})

	t.Run("symmetric", func(t *testing.T) {
		there, _ := incheon.DistanceKm(busan)
		back, _ := busan.DistanceKm(incheon)

		assert.InDelta(t, there, back, 1e-9)
	})

	t.Run("identity", func(t *testing.T) {
		d, err := busan.DistanceKm(busan)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("unconstructed operand", func(t *testing.T) {
		_, err := incheon.DistanceKm(kernel.Location{})

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}
