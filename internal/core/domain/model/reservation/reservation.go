package reservation

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/schedule"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation constructor")

// Reservation is the aggregate root of a freight order.
//
// Invariants:
//   - a Pending reservation has no driver
//   - an approved (NotStarted, InProgress, Completed) reservation has a driver
//   - required hours convert to at least one whole minute, so Window never fails
type Reservation struct {
	id          kernel.UUID
	driverID    *kernel.UUID
	vehicleID   kernel.UUID
	date        time.Time
	startTime   kernel.TimeOfDay
	transport   Transport
	source      Place
	destination Place
	guard       guard.ConstructorGuard
}

// NewReservation creates an unassigned reservation. The transport must be Pending.
//
// Example:
//
//	transport, _ := reservation.NewTransport(120000, 2.5, 38.4)
//	r, err := reservation.NewReservation(kernel.NewUUID(), vehicleID, date, startTime, transport, src, dst)
func NewReservation(
	id kernel.UUID,
	vehicleID kernel.UUID,
	date time.Time,
	startTime kernel.TimeOfDay,
	transport Transport,
	source Place,
	destination Place,
) (*Reservation, error) {
	if err := transport.Validate(); err == nil && transport.Status() != Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause("transport",
			fmt.Errorf("new reservation must be %s, got %s", Pending, transport.Status()))
	}
	return RestoreReservation(id, nil, vehicleID, date, startTime, transport, source, destination)
}

// RestoreReservation rebuilds a reservation read back from storage.
func RestoreReservation(
	id kernel.UUID,
	driverID *kernel.UUID,
	vehicleID kernel.UUID,
	date time.Time,
	startTime kernel.TimeOfDay,
	transport Transport,
	source Place,
	destination Place,
) (*Reservation, error) {
	r := &Reservation{
		date:  kernel.DateOf(date),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDriver(driverID, transport.Status()),
		r.setVehicleID(vehicleID),
		r.setStartTime(startTime),
		r.setTransport(transport),
		r.setPlaces(source, destination),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reservation) Validate() error {
	if r == nil {
		return ErrReservationIsNotConstructed
	}
	return r.guard.Validate(ErrReservationIsNotConstructed)
}

func (r *Reservation) IsEqual(other *Reservation) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Reservation) ID() kernel.UUID {
	return r.id
}

// Driver returns the assigned driver, or nil while the reservation is Pending.
func (r *Reservation) Driver() *kernel.UUID {
	return r.driverID
}

func (r *Reservation) VehicleID() kernel.UUID {
	return r.vehicleID
}

// Date is the civil date as UTC midnight.
func (r *Reservation) Date() time.Time {
	return r.date
}

func (r *Reservation) StartTime() kernel.TimeOfDay {
	return r.startTime
}

// StartsAt combines date and start time.
func (r *Reservation) StartsAt() time.Time {
	return r.date.Add(r.startTime.SinceMidnight())
}

func (r *Reservation) Transport() Transport {
	return r.transport
}

func (r *Reservation) Status() Status {
	return r.transport.status
}

func (r *Reservation) Fee() int64 {
	return r.transport.fee
}

func (r *Reservation) DistanceKm() float64 {
	return r.transport.distanceKm
}

func (r *Reservation) Source() Place {
	return r.source
}

func (r *Reservation) Destination() Place {
	return r.destination
}

// Window is the interval the transport occupies on its driver's schedule.
func (r *Reservation) Window() (schedule.Window, error) {
	return schedule.WindowOf(r.date, r.startTime, r.transport.requiredHours)
}

// Approve assigns driverID and moves the reservation to NotStarted.
// On error nothing is changed.
func (r *Reservation) Approve(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	next, err := r.transport.status.Approve()
	if err != nil {
		return err
	}

	r.driverID = &driverID
	r.transport = r.transport.withStatus(next)
	return nil
}

// Start moves a NotStarted reservation to InProgress.
func (r *Reservation) Start() error {
	next, err := r.transport.status.Start()
	if err != nil {
		return err
	}
	r.transport = r.transport.withStatus(next)
	return nil
}

// Complete moves an InProgress reservation to Completed.
func (r *Reservation) Complete() error {
	next, err := r.transport.status.Complete()
	if err != nil {
		return err
	}
	r.transport = r.transport.withStatus(next)
	return nil
}

// Cancel moves a non-terminal reservation to Cancelled. The driver, if any, is kept
// for history.
func (r *Reservation) Cancel() error {
	next, err := r.transport.status.Cancel()
	if err != nil {
		return err
	}
	r.transport = r.transport.withStatus(next)
	return nil
}

func (r *Reservation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Reservation) setDriver(driverID *kernel.UUID, status Status) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return err
	}
	r.driverID = driverID
	return nil
}

func (r *Reservation) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	r.vehicleID = vehicleID
	return nil
}

func (r *Reservation) setStartTime(startTime kernel.TimeOfDay) error {
	if err := startTime.Validate(); err != nil {
		return err
	}
	r.startTime = startTime
	return nil
}

func (r *Reservation) setTransport(transport Transport) error {
	if err := transport.Validate(); err != nil {
		return err
	}
	r.transport = transport
	return nil
}

func (r *Reservation) setPlaces(source, destination Place) error {
	if err := errors.Join(source.Validate(), destination.Validate()); err != nil {
		return err
	}
	r.source = source
	r.destination = destination
	return nil
}
