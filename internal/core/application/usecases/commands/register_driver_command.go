package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand creates the driver profile of a platform user.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	userID    kernel.UUID
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRegisterDriverCommand(driverID, userID, vehicleID kernel.UUID) (RegisterDriverCommand, error) {
	if err := errors.Join(driverID.Validate(), userID.Validate(), vehicleID.Validate()); err != nil {
		return RegisterDriverCommand{}, err
	}

	return RegisterDriverCommand{
		driverID:  driverID,
		userID:    userID,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c RegisterDriverCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterDriverCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}
