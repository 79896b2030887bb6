package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/paging"
)

type reservationRepository struct {
	uow *UnitOfWork
}

func (r *reservationRepository) Add(_ context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.findReservation(aggregate.ID()); exists {
		return errs.NewValueIsInvalidError("reservation id already exists")
	}
	return r.uow.stageReservation(aggregate)
}

func (r *reservationRepository) Update(_ context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.findReservation(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("reservation", aggregate.ID())
	}
	return r.uow.stageReservation(aggregate)
}

func (r *reservationRepository) Get(_ context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	found, ok := r.uow.findReservation(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("reservation", id)
	}
	return &found, nil
}

func (r *reservationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	if !r.uow.isActive() {
		return nil, ErrNoActiveTransaction
	}

	if !r.uow.holds(id) {
		locks := r.uow.store.locks
		if err := locks.acquire(ctx, id, r.uow.store.lockWait); err != nil {
			return nil, err
		}
		if !r.uow.hold(id) {
			locks.release(id)
			return nil, ErrNoActiveTransaction
		}
	}

	return r.Get(ctx, id)
}

func (r *reservationRepository) FindScheduleOfDriver(
	_ context.Context,
	driverID kernel.UUID,
	from, to time.Time,
) ([]*reservation.Reservation, error) {
	from, to = kernel.DateOf(from), kernel.DateOf(to)

	out := r.filter(func(res *reservation.Reservation) bool {
		return res.Driver() != nil &&
			res.Driver().IsEqual(driverID) &&
			res.Status() != reservation.Cancelled &&
			!res.Date().Before(from) &&
			!res.Date().After(to)
	})
	slices.SortFunc(out, bySchedule)
	return out, nil
}

func (r *reservationRepository) FindOpen(
	_ context.Context,
	vehicleID kernel.UUID,
	sort ports.SortKey,
	page paging.Request,
) (paging.Page[*reservation.Reservation], error) {
	compare, err := comparatorFor(sort)
	if err != nil {
		return paging.Page[*reservation.Reservation]{}, err
	}

	out := r.filter(func(res *reservation.Reservation) bool {
		return res.Driver() == nil &&
			res.Status() == reservation.Pending &&
			res.VehicleID().IsEqual(vehicleID)
	})
	slices.SortFunc(out, compare)
	return paging.Slice(out, page), nil
}

func (r *reservationRepository) FindPendingStartingBefore(
	_ context.Context,
	t time.Time,
	limit int,
) ([]*reservation.Reservation, error) {
	out := r.filter(func(res *reservation.Reservation) bool {
		return res.Status() == reservation.Pending && res.StartsAt().Before(t)
	})
	slices.SortFunc(out, bySchedule)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reservationRepository) filter(keep func(*reservation.Reservation) bool) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, res := range r.uow.snapshotReservations() {
		if keep(&res) {
			out = append(out, &res)
		}
	}
	return out
}

func comparatorFor(sort ports.SortKey) (func(a, b *reservation.Reservation) int, error) {
	switch sort {
	case ports.SortByFee:
		return func(a, b *reservation.Reservation) int {
			return cmp.Or(cmp.Compare(a.Fee(), b.Fee()), a.ID().Compare(b.ID()))
		}, nil
	case ports.SortByDistance:
		return func(a, b *reservation.Reservation) int {
			return cmp.Or(cmp.Compare(a.DistanceKm(), b.DistanceKm()), a.ID().Compare(b.ID()))
		}, nil
	case ports.SortBySchedule:
		return bySchedule, nil
	default:
		return nil, errs.NewUnknownFilterKeyError(sort.String())
	}
}

func bySchedule(a, b *reservation.Reservation) int {
	return cmp.Or(a.StartsAt().Compare(b.StartsAt()), a.ID().Compare(b.ID()))
}
