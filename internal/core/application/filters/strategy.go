package filters

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/ports"
	"freight/internal/pkg/paging"
)

// OpenReservationSource is the part of ports.ReservationRepository a strategy reads from.
type OpenReservationSource interface {
	FindOpen(
		ctx context.Context,
		vehicleID kernel.UUID,
		sort ports.SortKey,
		page paging.Request,
	) (paging.Page[*reservation.Reservation], error)
}

// Strategy fetches one page of unassigned, Pending reservations booked for a vehicle,
// in the strategy's order with reservation id as tie-break.
type Strategy interface {
	Key() Key
	Execute(
		ctx context.Context,
		source OpenReservationSource,
		vehicleID kernel.UUID,
		page paging.Request,
	) (paging.Page[*reservation.Reservation], error)
}

// FeeStrategy orders by fee, lowest first.
type FeeStrategy struct{}

func (FeeStrategy) Key() Key { return Fee }

func (FeeStrategy) Execute(
	ctx context.Context,
	source OpenReservationSource,
	vehicleID kernel.UUID,
	page paging.Request,
) (paging.Page[*reservation.Reservation], error) {
	return source.FindOpen(ctx, vehicleID, ports.SortByFee, page)
}

// DistanceStrategy orders by haul distance, shortest first.
type DistanceStrategy struct{}

func (DistanceStrategy) Key() Key { return Distance }

func (DistanceStrategy) Execute(
	ctx context.Context,
	source OpenReservationSource,
	vehicleID kernel.UUID,
	page paging.Request,
) (paging.Page[*reservation.Reservation], error) {
	return source.FindOpen(ctx, vehicleID, ports.SortByDistance, page)
}

// TimeStrategy orders by date then start time, earliest first.
type TimeStrategy struct{}

func (TimeStrategy) Key() Key { return Time }

func (TimeStrategy) Execute(
	ctx context.Context,
	source OpenReservationSource,
	vehicleID kernel.UUID,
	page paging.Request,
) (paging.Page[*reservation.Reservation], error) {
	return source.FindOpen(ctx, vehicleID, ports.SortBySchedule, page)
}
