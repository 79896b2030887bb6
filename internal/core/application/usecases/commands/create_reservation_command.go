package commands

import (
	"errors"
	"math"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/domain/model/schedule"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateReservationCommandIsNotConstructed = errors.New(
	"CreateReservationCommand must be created via NewCreateReservationCommand constructor",
)

// PlaceInput is a pickup or drop-off point as submitted at intake.
type PlaceInput struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// CreateReservationCommand registers a customer's transport request as an open order.
//
// Example:
//
//	cmd, err := NewCreateReservationCommand(kernel.NewUUID(), vehicleID, date, start,
//	    120000, 2.5, nil,
//	    PlaceInput{Address: "서울특별시 강남구 테헤란로 152", Latitude: 37.5003, Longitude: 127.0364},
//	    PlaceInput{Address: "경기도 수원시 팔달구 효원로 1", Latitude: 37.2636, Longitude: 127.0286},
//	)
type CreateReservationCommand struct { //nolint:recvcheck //using for validation
	reservationID kernel.UUID
	vehicleID     kernel.UUID
	date          time.Time
	startTime     kernel.TimeOfDay
	fee           int64
	requiredHours float64
	distanceKm    *float64
	source        reservation.Place
	destination   reservation.Place

	guard guard.ConstructorGuard
}

// NewCreateReservationCommand validates the request. A nil distanceKm is filled in
// by the handler from the great-circle distance between the two places.
func NewCreateReservationCommand(
	reservationID kernel.UUID,
	vehicleID kernel.UUID,
	date time.Time,
	startTime kernel.TimeOfDay,
	fee int64,
	requiredHours float64,
	distanceKm *float64,
	source PlaceInput,
	destination PlaceInput,
) (CreateReservationCommand, error) {
	cmd := CreateReservationCommand{
		date:  kernel.DateOf(date),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(reservationID, vehicleID),
		cmd.setStartTime(startTime),
		cmd.setFee(fee),
		cmd.setRequiredHours(requiredHours),
		cmd.setDistanceKm(distanceKm),
		cmd.setPlaces(source, destination),
	); err != nil {
		return CreateReservationCommand{}, err
	}

	return cmd, nil
}

func (c CreateReservationCommand) Validate() error {
	return c.guard.Validate(ErrCreateReservationCommandIsNotConstructed)
}

func (c CreateReservationCommand) ReservationID() kernel.UUID {
	return c.reservationID
}

func (c CreateReservationCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c CreateReservationCommand) Date() time.Time {
	return c.date
}

func (c CreateReservationCommand) StartTime() kernel.TimeOfDay {
	return c.startTime
}

func (c CreateReservationCommand) Fee() int64 {
	return c.fee
}

func (c CreateReservationCommand) RequiredHours() float64 {
	return c.requiredHours
}

// DistanceKm returns the submitted distance, or nil when none was given.
func (c CreateReservationCommand) DistanceKm() *float64 {
	return c.distanceKm
}

func (c CreateReservationCommand) Source() reservation.Place {
	return c.source
}

func (c CreateReservationCommand) Destination() reservation.Place {
	return c.destination
}

func (c *CreateReservationCommand) setIDs(reservationID, vehicleID kernel.UUID) error {
	if err := errors.Join(reservationID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}
	c.reservationID = reservationID
	c.vehicleID = vehicleID
	return nil
}

func (c *CreateReservationCommand) setStartTime(startTime kernel.TimeOfDay) error {
	if err := startTime.Validate(); err != nil {
		return err
	}
	c.startTime = startTime
	return nil
}

func (c *CreateReservationCommand) setFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsOutOfRangeError("fee", fee, 0, int64(math.MaxInt64))
	}
	c.fee = fee
	return nil
}

func (c *CreateReservationCommand) setRequiredHours(hours float64) error {
	if _, err := schedule.DurationMinutes(hours); err != nil {
		return err
	}
	c.requiredHours = hours
	return nil
}

func (c *CreateReservationCommand) setDistanceKm(km *float64) error {
	if km == nil {
		return nil
	}
	if math.IsNaN(*km) || math.IsInf(*km, 0) || *km < 0 {
		return errs.NewValueIsOutOfRangeError("distance", *km, 0, math.Inf(1))
	}
	v := *km
	c.distanceKm = &v
	return nil
}

func (c *CreateReservationCommand) setPlaces(source, destination PlaceInput) error {
	src, srcErr := toPlace("source", source)
	dst, dstErr := toPlace("destination", destination)
	if err := errors.Join(srcErr, dstErr); err != nil {
		return err
	}
	c.source = src
	c.destination = dst
	return nil
}

func toPlace(name string, in PlaceInput) (reservation.Place, error) {
	address, addrErr := kernel.NewAddress(in.Address)
	location, locErr := kernel.NewLocation(in.Latitude, in.Longitude)
	if err := errors.Join(addrErr, locErr); err != nil {
		return reservation.Place{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return reservation.NewPlace(address, location)
}
