package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/driver"
	"freight/internal/pkg/errs"
)

// RegisterDriverCommandHandler creates driver profiles. A user has at most one.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with *errs.ValueIsInvalidError when the user already has a profile.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := driver.NewDriver(cmd.DriverID(), cmd.UserID(), cmd.VehicleID())
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

	repo := uow.DriverRepository()
	existing, err := repo.GetByUserID(ctx, cmd.UserID())
	switch {
	case err == nil:
		return errs.NewValueIsInvalidErrorWithCause("user",
			fmt.Errorf("user %s already has driver profile %s", cmd.UserID(), existing.ID()))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = repo.Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
