package services

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/domain/model/schedule"
	"freight/internal/pkg/errs"
)

// ConflictDetector checks schedule windows for overlap.
//
// Two windows conflict iff candidate.start < existing.end+buffer and
// existing.start < candidate.end+buffer. With a zero buffer intervals are half-open,
// so a window ending at 10:00 and one starting at 10:00 do not conflict. The detector
// works on instants only; which windows it is given is the caller's business.
//
// Example usage:
//
//	detector, _ := services.NewConflictDetector(0)
//	if err := detector.Approve(candidate, drv, schedule); err != nil {
//	    // *errs.ScheduleConflictError or *errs.InvalidStateError
//	}
type ConflictDetector struct {
	buffer time.Duration
}

// NewConflictDetector returns a detector that requires buffer of free time between
// two reservations of the same driver.
func NewConflictDetector(buffer time.Duration) (ConflictDetector, error) {
	if buffer < 0 {
		return ConflictDetector{}, errs.NewValueIsInvalidErrorWithCause(
			"schedule buffer", fmt.Errorf("%s is negative", buffer))
	}
	return ConflictDetector{buffer: buffer}, nil
}

func (d ConflictDetector) Buffer() time.Duration {
	return d.buffer
}

// HasConflict reports whether candidate overlaps any of existing.
func (d ConflictDetector) HasConflict(candidate schedule.Window, existing []schedule.Window) bool {
	_, found := d.FindConflict(candidate, existing)
	return found
}

// FindConflict returns the index of the first window in existing that overlaps candidate.
func (d ConflictDetector) FindConflict(candidate schedule.Window, existing []schedule.Window) (int, bool) {
	for i, w := range existing {
		if candidate.Overlaps(w, d.buffer) {
			return i, true
		}
	}
	return -1, false
}

// ScheduleRange returns the inclusive range of civil dates whose reservations can
// overlap a candidate window: the day before the candidate's date through the later
// of the following day and the day the candidate ends on.
func ScheduleRange(candidate schedule.Window) (from, to time.Time) {
	from = kernel.AddDays(candidate.Date(), -1)
	to = kernel.AddDays(candidate.Date(), 1)
	if end := candidate.EndDate(); end.After(to) {
		to = end
	}
	return from, to
}

// Approve assigns candidate to drv if it fits drv's schedule.
//
// Reservations in scheduled that are cancelled, or that are the candidate itself,
// are ignored. On conflict a *errs.ScheduleConflictError naming the first overlapping
// reservation is returned and candidate is left unchanged. Otherwise the state machine
// decides: anything but a Pending candidate fails with *errs.InvalidStateError.
func (d ConflictDetector) Approve(
	candidate *reservation.Reservation,
	drv *driver.Driver,
	scheduled []*reservation.Reservation,
) error {
	if err := errors.Join(candidate.Validate(), drv.Validate()); err != nil {
		return err
	}

	window, err := candidate.Window()
	if err != nil {
		return err
	}

	owners := make([]*reservation.Reservation, 0, len(scheduled))
	windows := make([]schedule.Window, 0, len(scheduled))
	for _, r := range scheduled {
		if r.IsEqual(candidate) || r.Status() == reservation.Cancelled {
			continue
		}
		w, err := r.Window()
		if err != nil {
			return err
		}
		owners = append(owners, r)
		windows = append(windows, w)
	}

	if i, found := d.FindConflict(window, windows); found {
		return errs.NewScheduleConflictError(candidate.ID(), owners[i].ID())
	}

	return candidate.Approve(drv.ID())
}
