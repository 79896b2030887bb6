package schedule

import (
	"fmt"
	"math"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Window is the interval [Start, End) a reservation occupies.
type Window struct {
	date  time.Time
	start time.Time
	end   time.Time
}

// WindowOf computes the window of a reservation starting at startTime on date and
// lasting requiredHours.
//
// Hours are converted to whole minutes with math.Round (half away from zero), so
// 1.5h is 90 minutes and 0.0083h (~29.9s) is 0 minutes. A duration that is not
// positive, not finite, or rounds to zero minutes fails with InvalidDurationError.
func WindowOf(date time.Time, startTime kernel.TimeOfDay, requiredHours float64) (Window, error) {
	minutes, err := DurationMinutes(requiredHours)
	if err != nil {
		return Window{}, err
	}
	if err = startTime.Validate(); err != nil {
		return Window{}, err
	}

	day := kernel.DateOf(date)
	start := day.Add(startTime.SinceMidnight())
	return Window{
		date:  day,
		start: start,
		end:   start.Add(time.Duration(minutes) * time.Minute),
	}, nil
}

// DurationMinutes converts fractional hours to whole minutes.
func DurationMinutes(hours float64) (int64, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return 0, errs.NewInvalidDurationError(hours)
	}
	minutes := math.Round(hours * 60)
	if minutes < 1 {
		return 0, errs.NewInvalidDurationError(hours)
	}
	return int64(minutes), nil
}

// Date is the civil date the window starts on.
func (w Window) Date() time.Time {
	return w.date
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// EndDate is the civil date of the last minute the window occupies.
func (w Window) EndDate() time.Time {
	return kernel.DateOf(w.end.Add(-time.Nanosecond))
}

// SpansMidnight reports whether the window runs into a following day.
func (w Window) SpansMidnight() bool {
	return w.EndDate().After(w.date)
}

// Overlaps applies the half-open rule with an extra gap required between windows:
// w.start < o.end+buffer && o.start < w.end+buffer. A zero buffer lets
// windows touch end-to-start.
func (w Window) Overlaps(o Window, buffer time.Duration) bool {
	return w.start.Before(o.end.Add(buffer)) && o.start.Before(w.end.Add(buffer))
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.start.Format("2006-01-02 15:04"), w.end.Format("2006-01-02 15:04"))
}
