package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Locks taken through its
// repositories are released by Commit or Rollback; Rollback after Commit changes nothing.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	// DriverRepository returns a repository bound to the current transaction.
	DriverRepository() DriverRepository

	// ReservationRepository returns a repository bound to the current transaction.
	ReservationRepository() ReservationRepository
}
