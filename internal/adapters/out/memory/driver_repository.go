package memory

import (
	"context"

	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

type driverRepository struct {
	uow *UnitOfWork
}

func (r *driverRepository) Add(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	for id, d := range r.uow.snapshotDrivers() {
		if id == aggregate.ID() {
			return errs.NewValueIsInvalidError("driver id already exists")
		}
		if d.UserID().IsEqual(aggregate.UserID()) {
			return duplicateUserError(aggregate.UserID())
		}
	}
	return r.uow.stageDriver(aggregate)
}

func (r *driverRepository) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	d, ok := r.uow.snapshotDrivers()[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return &d, nil
}

func (r *driverRepository) GetByUserID(_ context.Context, userID kernel.UUID) (*driver.Driver, error) {
	for _, d := range r.uow.snapshotDrivers() {
		if d.UserID().IsEqual(userID) {
			return &d, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("driver", userID)
}
