// Package schedule models the time a reservation occupies on a driver's calendar.
//
// A Window is derived, never persisted: it is computed from the reservation's
// civil date, its start time and the transport's required duration in hours.
// Windows are half-open intervals [start, end) on a single UTC time line, so two
// windows on different dates are compared like any others and a window that runs
// past midnight occupies the head of the following day.
package schedule
