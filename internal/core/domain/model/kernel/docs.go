// Package kernel provides the shared value objects of the freight domain.
//
// The package includes:
//   - UUID: identifiers for drivers, vehicles and reservations
//   - Location: WGS84 coordinates with great-circle distance
//   - Address: free-text street addresses and their simplified display form
//   - TimeOfDay and civil-date helpers used to schedule reservations
//
// Values are immutable once constructed; constructors validate their input and
// zero values fail Validate.
package kernel
