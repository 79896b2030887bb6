// Package commands contains the operations that change reservations and drivers.
// Every handler validates its command, opens a unit of work, and commits only when
// every step succeeded; the deferred rollback releases locks on all other paths.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ReservationRepoFactory interface {
		ReservationRepository() ports.ReservationRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// ReservationUoW is enough for commands that touch reservations only.
	ReservationUoW interface {
		TxManager
		ReservationRepoFactory
	}

	ReservationUoWFactory interface {
		Create() ReservationUoW
	}

	// DriverUoW is enough for commands that touch drivers only.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW spans both aggregates.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   drv, err := uow.DriverRepository().GetByUserID(ctx, userID)
	//   r, err := uow.ReservationRepository().GetForUpdate(ctx, reservationID)
	//   // ... decide and mutate
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		ReservationRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
