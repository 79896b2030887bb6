// Package errs provides standardized error types for the freight application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: a driver profile or reservation does not exist
//   - ScheduleConflictError: a reservation overlaps the driver's schedule
//   - InvalidStateError: a lifecycle transition is not allowed from the current status
//   - LockTimeoutError: an exclusive lock was not acquired within its wait bound
//   - InvalidDurationError, UnknownFilterKeyError: input validation failures
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: field validation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrScheduleConflict)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across wrapping
//
// KindOf maps any error in the chain to an explicit Kind, which adapters use to
// choose a response code and callers use to decide whether a retry makes sense.
package errs
