package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand asks to assign a reservation to the driver profile of a user.
//
// Example:
//
//	cmd, err := NewApproveOrderCommand(userID, reservationID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	userID        kernel.UUID
	reservationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveOrderCommand(userID, reservationID kernel.UUID) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setReservationID(reservationID),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	return cmd, nil
}

func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

func (c ApproveOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c ApproveOrderCommand) ReservationID() kernel.UUID {
	return c.reservationID
}

func (c *ApproveOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *ApproveOrderCommand) setReservationID(reservationID kernel.UUID) error {
	if err := reservationID.Validate(); err != nil {
		return err
	}
	c.reservationID = reservationID
	return nil
}
