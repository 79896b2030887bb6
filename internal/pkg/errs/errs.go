package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrScheduleConflict  = errors.New("schedule conflict")
	ErrInvalidState      = errors.New("invalid state")
	ErrLockTimeout       = errors.New("lock wait timed out")
	ErrInvalidDuration   = errors.New("duration is invalid")
	ErrUnknownFilterKey  = errors.New("unknown filter key")
)

// ObjectNotFoundError reports a missing aggregate, e.g. a driver profile or a reservation.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitizeValue(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ScheduleConflictError is returned when a candidate reservation overlaps a reservation
// already on the driver's schedule. The conflict is a property of the data:
// retrying the same request yields the same result.
type ScheduleConflictError struct {
	ReservationID any
	ConflictingID any
}

func NewScheduleConflictError(reservationID, conflictingID any) *ScheduleConflictError {
	return &ScheduleConflictError{
		ReservationID: reservationID,
		ConflictingID: conflictingID,
	}
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("%s: reservation %s overlaps reservation %s",
		ErrScheduleConflict, sanitize(e.ReservationID), sanitize(e.ConflictingID))
}

func (e *ScheduleConflictError) Unwrap() error {
	return ErrScheduleConflict
}

// InvalidStateError is returned when a lifecycle transition is not allowed from the current status.
type InvalidStateError struct {
	ParamName  string
	State      any
	Transition string
}

func NewInvalidStateError(paramName string, state any, transition string) *InvalidStateError {
	return &InvalidStateError{
		ParamName:  paramName,
		State:      state,
		Transition: transition,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in %v state", ErrInvalidState, e.Transition, e.ParamName, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// LockTimeoutError is returned when an exclusive lock could not be acquired within the wait bound.
// It is transient; callers may retry with backoff.
type LockTimeoutError struct {
	Resource string
	ID       any
	Wait     time.Duration
	Cause    error
}

func NewLockTimeoutError(resource string, id any, wait time.Duration, cause error) *LockTimeoutError {
	return &LockTimeoutError{
		Resource: resource,
		ID:       id,
		Wait:     wait,
		Cause:    cause,
	}
}

func (e *LockTimeoutError) Error() string {
	msg := fmt.Sprintf("%s: %s %s after %s", ErrLockTimeout, e.Resource, sanitize(e.ID), e.Wait)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *LockTimeoutError) Unwrap() error {
	return ErrLockTimeout
}

type InvalidDurationError struct {
	Hours float64
}

func NewInvalidDurationError(hours float64) *InvalidDurationError {
	return &InvalidDurationError{Hours: hours}
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("%s: %v hours is not a positive duration", ErrInvalidDuration, e.Hours)
}

func (e *InvalidDurationError) Unwrap() error {
	return ErrInvalidDuration
}

type UnknownFilterKeyError struct {
	Key any
}

func NewUnknownFilterKeyError(key any) *UnknownFilterKeyError {
	return &UnknownFilterKeyError{Key: key}
}

func (e *UnknownFilterKeyError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnknownFilterKey, sanitizeValue(e.Key))
}

func (e *UnknownFilterKeyError) Unwrap() error {
	return ErrUnknownFilterKey
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitize formats identifiers with %s and flattens newlines.
func sanitize(v any) string {
	return newlines.Replace(fmt.Sprintf("%s", v))
}

func sanitizeValue(v any) string {
	return newlines.Replace(fmt.Sprintf("%v", v))
}
