package driver

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is identified by its own id and, one-to-one, by the user id of the account
// that owns it.
type Driver struct {
	id        kernel.UUID
	userID    kernel.UUID
	vehicleID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewDriver creates a driver profile for a user.
func NewDriver(id, userID, vehicleID kernel.UUID) (*Driver, error) {
	return RestoreDriver(id, userID, vehicleID)
}

// RestoreDriver rebuilds a driver read back from storage.
func RestoreDriver(id, userID, vehicleID kernel.UUID) (*Driver, error) {
	d := &Driver{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) UserID() kernel.UUID {
	return d.userID
}

func (d *Driver) VehicleID() kernel.UUID {
	return d.vehicleID
}

// CanHaul reports whether the driver's vehicle matches the booked vehicle class.
func (d *Driver) CanHaul(vehicleID kernel.UUID) bool {
	return d.vehicleID.IsEqual(vehicleID)
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	d.userID = userID
	return nil
}

func (d *Driver) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	d.vehicleID = vehicleID
	return nil
}
