// Package postgres provides the GORM implementation of the unit of work.
//
// A unit of work opens one database transaction. Repositories taken from it
// while the transaction is active run inside it, so row locks acquired through
// ReservationRepository().GetForUpdate are held until Commit or Rollback:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	res, err := uow.ReservationRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// mutate res
//	if err := uow.ReservationRepository().Update(ctx, res); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Without Begin the repositories read and write through the plain connection pool.
package postgres

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/driverrepo"
	"freight/internal/adapters/out/postgres/reservationrepo"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// Migrate creates or alters the drivers and reservations tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&driverrepo.DriverDTO{}, &reservationrepo.ReservationDTO{})
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	lockWait time.Duration
}

// NewGormUnitOfWorkFactory creates a factory whose units of work wait at most
// lockWait for a reservation row lock.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, 3*time.Second)
func NewGormUnitOfWorkFactory(db *gorm.DB, lockWait time.Duration) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:       db,
		lockWait: lockWait,
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		lockWait: f.lockWait,
	}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	lockWait time.Duration
}

// Begin starts the transaction. Calling Begin again while it is active does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReservationRepository() ports.ReservationRepository {
	return reservationrepo.NewGormReservationRepository(uow.conn(), uow.lockWait)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
