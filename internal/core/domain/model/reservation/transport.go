package reservation

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/core/domain/model/schedule"
	"freight/internal/pkg/errs"
)

// Transport is the haulage part of a reservation: what the driver is paid, how long
// the job takes, how far it goes, and where it is in its lifecycle.
type Transport struct {
	fee           int64
	requiredHours float64
	distanceKm    float64
	status        Status
}

// NewTransport creates a Pending transport.
func NewTransport(fee int64, requiredHours, distanceKm float64) (Transport, error) {
	return RestoreTransport(fee, requiredHours, distanceKm, Pending)
}

// RestoreTransport rebuilds a transport read back from storage.
func RestoreTransport(fee int64, requiredHours, distanceKm float64, status Status) (Transport, error) {
	t := Transport{}
	if err := errors.Join(
		t.setFee(fee),
		t.setRequiredHours(requiredHours),
		t.setDistanceKm(distanceKm),
		t.setStatus(status),
	); err != nil {
		return Transport{}, err
	}
	return t, nil
}

func (t Transport) Fee() int64 {
	return t.fee
}

func (t Transport) RequiredHours() float64 {
	return t.requiredHours
}

func (t Transport) DistanceKm() float64 {
	return t.distanceKm
}

func (t Transport) Status() Status {
	return t.status
}

func (t *Transport) setFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fee", fmt.Errorf("%d is negative", fee))
	}
	t.fee = fee
	return nil
}

func (t *Transport) setRequiredHours(hours float64) error {
	if _, err := schedule.DurationMinutes(hours); err != nil {
		return err
	}
	t.requiredHours = hours
	return nil
}

func (t *Transport) setDistanceKm(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v is not a non-negative distance", km))
	}
	t.distanceKm = km
	return nil
}

func (t *Transport) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

// Validate fails for a zero Transport.
func (t Transport) Validate() error {
	return t.status.Validate()
}

func (t Transport) withStatus(status Status) Transport {
	t.status = status
	return t
}
