package schedule_test

import (
	"math"
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/schedule"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feb20 = time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

func at(t *testing.T, hour, minute int) kernel.TimeOfDay {
	t.Helper()
	tod, err := kernel.NewTimeOfDay(hour, minute)
	require.NoError(t, err)
	return tod
}

func TestWindowOf(t *testing.T) {
	t.Run("fractional hours", func(t *testing.T) {
		w, err := schedule.WindowOf(feb20, at(t, 14, 30), 1.5)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 20, 14, 30, 0, 0, time.UTC), w.Start())
		assert.Equal(t, time.Date(2024, 2, 20, 16, 0, 0, 0, time.UTC), w.End())
		assert.Equal(t, feb20, w.Date())
		assert.False(t, w.SpansMidnight())
	})

	t.Run("spans midnight", func(t *testing.T) {
		w, err := schedule.WindowOf(feb20, at(t, 22, 0), 3)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 21, 1, 0, 0, 0, time.UTC), w.End())
		assert.Equal(t, time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC), w.EndDate())
		assert.True(t, w.SpansMidnight())
	})

	t.Run("ending exactly at midnight stays on its date", func(t *testing.T) {
		w, err := schedule.WindowOf(feb20, at(t, 21, 0), 3)

		require.NoError(t, err)
		assert.Equal(t, feb20, w.EndDate())
		assert.False(t, w.SpansMidnight())
	})

	t.Run("date is normalized", func(t *testing.T) {
		w, err := schedule.WindowOf(feb20.Add(13*time.Hour), at(t, 9, 0), 1)

		require.NoError(t, err)
		assert.Equal(t, feb20, w.Date())
		assert.Equal(t, 9, w.Start().Hour())
	})
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		hours   float64
		minutes int64
	}{
		{3.0, 180},
		{1.5, 90},
		{0.1, 6},
		{2.0 / 3.0, 40},
		{0.0125, 1}, // 0.75 min rounds up
	}
	for _, tt := range tests {
		got, err := schedule.DurationMinutes(tt.hours)
		require.NoError(t, err)
		assert.Equal(t, tt.minutes, got, "hours=%v", tt.hours)
	}

	invalid := []float64{0, -1, math.NaN(), math.Inf(1), 0.008}
	for _, hours := range invalid {
		_, err := schedule.DurationMinutes(hours)
		require.ErrorIs(t, err, errs.ErrInvalidDuration, "hours=%v", hours)
	}
}

func TestWindowOf_InvalidDuration(t *testing.T) {
	_, err := schedule.WindowOf(feb20, at(t, 9, 0), 0)

	var durationErr *errs.InvalidDurationError
	require.ErrorAs(t, err, &durationErr)
	assert.Zero(t, durationErr.Hours)
}

func TestWindow_Overlaps(t *testing.T) {
	morning, _ := schedule.WindowOf(feb20, at(t, 8, 30), 1.5) // 08:30-10:00

	tests := []struct {
		name    string
		start   kernel.TimeOfDay
		hours   float64
		buffer  time.Duration
		overlap bool
	}{
		{"touching end", at(t, 10, 0), 1, 0, false},
		{"touching start", at(t, 7, 30), 1, 0, false},
		{"inside", at(t, 9, 0), 0.5, 0, true},
		{"covering", at(t, 8, 0), 3, 0, true},
		{"tail overlap", at(t, 9, 59), 1, 0, true},
		{"touching end within buffer", at(t, 10, 0), 1, 30 * time.Minute, true},
		{"clear of buffer", at(t, 10, 30), 1, 30 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := schedule.WindowOf(feb20, tt.start, tt.hours)
			require.NoError(t, err)

			assert.Equal(t, tt.overlap, morning.Overlaps(other, tt.buffer))
			assert.Equal(t, tt.overlap, other.Overlaps(morning, tt.buffer))
		})
	}
}

func TestWindow_OverlapsAcrossMidnight(t *testing.T) {
	lateNight, _ := schedule.WindowOf(feb20, at(t, 23, 0), 2) // 23:00-01:00 next day
	earlyNext, _ := schedule.WindowOf(feb20.AddDate(0, 0, 1), at(t, 0, 30), 1)
	afterwards, _ := schedule.WindowOf(feb20.AddDate(0, 0, 1), at(t, 1, 0), 1)

	assert.True(t, lateNight.Overlaps(earlyNext, 0))
	assert.False(t, lateNight.Overlaps(afterwards, 0))
}
