package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/pkg/errs"
)

// ExpirePendingReservationsCommandHandler cancels Pending reservations that start
// before the command's time. Each one is re-read under its lock, in a unit of work
// of its own, so that an approval that won the race is never overwritten and a busy
// row does not hold back the rest of the batch.
type ExpirePendingReservationsCommandHandler struct {
	uowFactory ReservationUoWFactory
}

func NewExpirePendingReservationsCommandHandler(
	uowFactory ReservationUoWFactory,
) ExpirePendingReservationsCommandHandler {
	return ExpirePendingReservationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns how many reservations were cancelled. Rows whose lock cannot be
// taken in time are skipped and picked up by a later pass.
func (h ExpirePendingReservationsCommandHandler) Handle(
	ctx context.Context,
	cmd ExpirePendingReservationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stale, err := h.uowFactory.Create().ReservationRepository().
		FindPendingStartingBefore(ctx, cmd.Now(), cmd.Batch())
	if err != nil {
		return 0, err
	}

	cancelled := 0
	defer func() {
		expiredReservations.Add(float64(cancelled))
	}()

	for _, candidate := range stale {
		ok, err := h.expireOne(ctx, candidate.ID())
		switch {
		case errors.Is(err, errs.ErrLockTimeout):
			expirySkippedLocked.Inc()
			continue
		case err != nil:
			return cancelled, err
		case ok:
			cancelled++
		}
	}
	return cancelled, nil
}

func (h ExpirePendingReservationsCommandHandler) expireOne(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ReservationRepository()
	r, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}
	if r.Status() != reservation.Pending {
		return false, nil
	}
	if err = r.Cancel(); err != nil {
		return false, err
	}
	if err = repo.Update(ctx, r); err != nil {
		return false, err
	}

	return true, uow.Commit(ctx)
}
