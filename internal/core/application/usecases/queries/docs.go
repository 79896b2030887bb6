// Package queries contains read-only operations over reservations and drivers.
package queries
