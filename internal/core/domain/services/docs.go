// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - ConflictDetector: decides whether a candidate reservation fits a driver's
//     schedule and, if it does, approves it for that driver
package services
