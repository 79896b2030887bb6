// Package reservation contains the Reservation aggregate: a customer's request to move
// freight on a given date and start time, which a driver takes on by approving it.
//
// A reservation is created Pending and unassigned. Approve assigns a driver and moves
// it to NotStarted; from there the transport is started, completed or cancelled.
// Transitions that the current status does not allow fail with errs.InvalidStateError
// and leave the aggregate untouched.
package reservation
