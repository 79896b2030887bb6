package ports

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/pkg/paging"
)

// SortKey orders open reservations. Every ordering falls back to reservation id
// ascending so that pages are stable.
type SortKey int

const (
	SortByFee SortKey = iota + 1
	SortByDistance
	SortBySchedule
)

func (k SortKey) String() string {
	switch k {
	case SortByFee:
		return "fee"
	case SortByDistance:
		return "distance"
	case SortBySchedule:
		return "schedule"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ReservationRepository defines the persistence contract for reservation aggregates.
type ReservationRepository interface {
	Add(ctx context.Context, aggregate *reservation.Reservation) error

	Update(ctx context.Context, aggregate *reservation.Reservation) error

	// Get reads a reservation without locking it.
	Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error)

	// GetForUpdate reads a reservation and holds an exclusive lock on it until the
	// unit of work ends. Only one unit of work at a time holds the lock of a given id;
	// waiting is bounded by the adapter's lock wait and a timeout fails with
	// *errs.LockTimeoutError. A missing reservation fails with *errs.ObjectNotFoundError.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error)

	// FindScheduleOfDriver returns the reservations assigned to driverID whose date
	// lies in [from, to] (civil dates, both inclusive), cancelled ones excluded,
	// ordered by date and start time.
	FindScheduleOfDriver(
		ctx context.Context,
		driverID kernel.UUID,
		from, to time.Time,
	) ([]*reservation.Reservation, error)

	// FindOpen pages through unassigned Pending reservations booked for vehicleID.
	FindOpen(
		ctx context.Context,
		vehicleID kernel.UUID,
		sort SortKey,
		page paging.Request,
	) (paging.Page[*reservation.Reservation], error)

	// FindPendingStartingBefore returns up to limit Pending reservations that start
	// before t, earliest first.
	FindPendingStartingBefore(ctx context.Context, t time.Time, limit int) ([]*reservation.Reservation, error)
}
