package commands

import (
	"context"
	"math"

	"freight/internal/core/domain/model/reservation"
)

// CreateReservationCommandHandler stores a new open order: Pending and unassigned.
type CreateReservationCommandHandler struct {
	uowFactory ReservationUoWFactory
}

func NewCreateReservationCommandHandler(uowFactory ReservationUoWFactory) CreateReservationCommandHandler {
	return CreateReservationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateReservationCommandHandler) Handle(ctx context.Context, cmd CreateReservationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	distance, err := haulDistance(cmd)
	if err != nil {
		return err
	}

	transport, err := reservation.NewTransport(cmd.Fee(), cmd.RequiredHours(), distance)
	if err != nil {
		return err
	}

	r, err := reservation.NewReservation(
		cmd.ReservationID(),
		cmd.VehicleID(),
		cmd.Date(),
		cmd.StartTime(),
		transport,
		cmd.Source(),
		cmd.Destination(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ReservationRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// haulDistance prefers the submitted distance and otherwise estimates it as the
// great-circle distance, rounded to 100 m.
func haulDistance(cmd CreateReservationCommand) (float64, error) {
	if d := cmd.DistanceKm(); d != nil {
		return *d, nil
	}
	km, err := cmd.Source().Location().DistanceKm(cmd.Destination().Location())
	if err != nil {
		return 0, err
	}
	return math.Round(km*10) / 10, nil
}
