package reservation

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a reservation's transport.
//
// State transitions:
//
//	Pending ──approve──> NotStarted ──start──> InProgress ──complete──> Completed
//	   │                     │                     │
//	   └─────────────────────┴─────────cancel──────┴──────────> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	NotStarted
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		NotStarted: "NOT_STARTED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus accepts the upper-case names produced by String.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateApprove checks the approval guard without transitioning:
// only a Pending reservation can be approved.
func (s Status) ValidateApprove() error {
	if s != Pending {
		return errs.NewInvalidStateError("reservation", s, "approve")
	}
	return nil
}

// ValidateCanHaveDriver enforces consistency between status and driver assignment.
//
//   - Pending reservations must not have a driver
//   - NotStarted, InProgress and Completed reservations must have a driver
//   - Cancelled reservations may have been cancelled before or after approval
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	switch {
	case s == Pending && hasDriver:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	case (s == NotStarted || s == InProgress || s == Completed) && !hasDriver:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}
	return nil
}

// Approve transitions Pending -> NotStarted.
func (s Status) Approve() (Status, error) {
	if err := s.ValidateApprove(); err != nil {
		return Unknown, err
	}
	return NotStarted, nil
}

// Start transitions NotStarted -> InProgress.
func (s Status) Start() (Status, error) {
	if s != NotStarted {
		return Unknown, errs.NewInvalidStateError("reservation", s, "start")
	}
	return InProgress, nil
}

// Complete transitions InProgress -> Completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return Unknown, errs.NewInvalidStateError("reservation", s, "complete")
	}
	return Completed, nil
}

// Cancel transitions any pre-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != NotStarted && s != InProgress {
		return Unknown, errs.NewInvalidStateError("reservation", s, "cancel")
	}
	return Cancelled, nil
}
