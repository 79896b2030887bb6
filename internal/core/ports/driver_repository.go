// Package ports defines the contracts between the freight core and its storage,
// lock and transaction adapters.
package ports

import (
	"context"

	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver. A second driver for the same user id fails with
	// *errs.ValueIsInvalidError.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Get fails with *errs.ObjectNotFoundError when no driver has the id.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByUserID resolves the driver profile of a platform user.
	// Fails with *errs.ObjectNotFoundError when the user has no driver profile.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)
}
