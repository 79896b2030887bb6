package errs

import "errors"

// Kind classifies an error for callers that must pick a remediation:
// report a missing object, reject a conflicting request, or retry later.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindLockTimeout
	KindInvalidDuration
	KindUnknownFilterKey
	KindInvalidValue
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindLockTimeout:
		return "lock_timeout"
	case KindInvalidDuration:
		return "invalid_duration"
	case KindUnknownFilterKey:
		return "unknown_filter_key"
	case KindInvalidValue:
		return "invalid_value"
	case KindInternal:
		return "internal"
	}
	return "internal"
}

// Retryable reports whether the same request may succeed if repeated later.
// Only lock timeouts are transient.
func (k Kind) Retryable() bool {
	return k == KindLockTimeout
}

// KindOf returns the Kind of the first sentinel found in err's chain.
// A nil error has no kind and reports KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrScheduleConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrLockTimeout):
		return KindLockTimeout
	case errors.Is(err, ErrInvalidDuration):
		return KindInvalidDuration
	case errors.Is(err, ErrUnknownFilterKey):
		return KindUnknownFilterKey
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindInvalidValue
	}
	return KindInternal
}
