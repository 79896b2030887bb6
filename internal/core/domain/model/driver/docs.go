// Package driver contains the Driver aggregate: the owner-operator profile linked to a
// platform user and to the vehicle class the driver hauls with.
//
// A driver only sees open reservations booked for its vehicle class, and approved
// reservations form the driver's schedule.
package driver
