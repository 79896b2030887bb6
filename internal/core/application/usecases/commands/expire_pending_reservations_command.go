package commands

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrExpirePendingReservationsCommandIsNotConstructed = errors.New(
	"ExpirePendingReservationsCommand must be created via NewExpirePendingReservationsCommand constructor",
)

// DefaultExpiryBatch bounds how many reservations one run cancels.
const DefaultExpiryBatch = 100

// ExpirePendingReservationsCommand cancels open orders whose start time has passed
// without a driver approving them.
type ExpirePendingReservationsCommand struct {
	now   time.Time
	batch int

	guard guard.ConstructorGuard
}

func NewExpirePendingReservationsCommand(now time.Time, batch int) (ExpirePendingReservationsCommand, error) {
	if now.IsZero() {
		return ExpirePendingReservationsCommand{}, errs.NewValueIsRequiredError("now")
	}
	if batch <= 0 {
		return ExpirePendingReservationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch", fmt.Errorf("%d is not greater than 0", batch))
	}

	return ExpirePendingReservationsCommand{
		now:   now,
		batch: batch,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingReservationsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingReservationsCommandIsNotConstructed)
}

func (c ExpirePendingReservationsCommand) Now() time.Time {
	return c.now
}

func (c ExpirePendingReservationsCommand) Batch() int {
	return c.batch
}
