package queries

import (
	"freight/internal/core/ports"
)

type (
	// Repositories gives read access to both aggregates. Queries never begin a
	// transaction, so the repositories read committed state.
	Repositories interface {
		DriverRepository() ports.DriverRepository
		ReservationRepository() ports.ReservationRepository
	}

	RepositoriesFactory interface {
		Create() Repositories
	}
)
