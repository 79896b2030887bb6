package kernel

import (
	"fmt"
	"time"

	"freight/internal/pkg/errs"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock start time with minute precision, stored as minutes after midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return 0, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return 0, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts "HH:mm".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("time of day", err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Validate() error {
	if t < 0 || t >= minutesPerDay {
		return errs.NewValueIsOutOfRangeError("time of day", int(t), 0, minutesPerDay-1)
	}
	return nil
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// SinceMidnight returns the offset from the start of the day.
func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DateOf returns the civil date of t as midnight UTC. Reservation dates carry no zone:
// normalizing to UTC keeps date arithmetic free of DST gaps.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts "2006-01-02".
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return t, nil
}

// AddDays shifts a civil date by n days.
func AddDays(date time.Time, n int) time.Time {
	return DateOf(date).AddDate(0, 0, n)
}
