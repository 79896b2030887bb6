package memory

import (
	"context"
	"sync"

	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/ports"
)

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes until Commit. Reads see committed state overlaid with the
// unit's own staged writes. Locks taken by GetForUpdate are held until Commit or Rollback.
type UnitOfWork struct {
	store *Store

	mu           sync.Mutex
	active       bool
	held         map[kernel.UUID]struct{}
	drivers      map[kernel.UUID]driver.Driver
	reservations map[kernel.UUID]reservation.Reservation
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if uow.active {
		return nil
	}
	uow.active = true
	uow.held = make(map[kernel.UUID]struct{})
	uow.drivers = make(map[kernel.UUID]driver.Driver)
	uow.reservations = make(map[kernel.UUID]reservation.Reservation)
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return ErrNoActiveTransaction
	}
	defer uow.end()

	return uow.store.apply(uow.drivers, uow.reservations)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.end()
	return nil
}

func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &driverRepository{uow: uow}
}

func (uow *UnitOfWork) ReservationRepository() ports.ReservationRepository {
	return &reservationRepository{uow: uow}
}

// end releases held locks and drops staged writes. Callers hold uow.mu.
func (uow *UnitOfWork) end() {
	for id := range uow.held {
		uow.store.locks.release(id)
	}
	uow.active = false
	uow.held = nil
	uow.drivers = nil
	uow.reservations = nil
}

func (uow *UnitOfWork) isActive() bool {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	return uow.active
}

func (uow *UnitOfWork) holds(id kernel.UUID) bool {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	_, ok := uow.held[id]
	return ok
}

// hold records a lock acquired for id. It reports false when the unit of work ended
// while the lock was being acquired; the caller then releases it.
func (uow *UnitOfWork) hold(id kernel.UUID) bool {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	if !uow.active {
		return false
	}
	uow.held[id] = struct{}{}
	return true
}

func (uow *UnitOfWork) stageDriver(d *driver.Driver) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.drivers[d.ID()] = *d
	return nil
}

func (uow *UnitOfWork) stageReservation(r *reservation.Reservation) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.reservations[r.ID()] = *r
	return nil
}

// snapshotDrivers returns committed drivers overlaid with staged ones.
func (uow *UnitOfWork) snapshotDrivers() map[kernel.UUID]driver.Driver {
	uow.store.mu.RLock()
	out := make(map[kernel.UUID]driver.Driver, len(uow.store.drivers))
	for id, d := range uow.store.drivers {
		out[id] = d
	}
	uow.store.mu.RUnlock()

	uow.mu.Lock()
	for id, d := range uow.drivers {
		out[id] = d
	}
	uow.mu.Unlock()
	return out
}

// snapshotReservations returns committed reservations overlaid with staged ones.
func (uow *UnitOfWork) snapshotReservations() map[kernel.UUID]reservation.Reservation {
	uow.store.mu.RLock()
	out := make(map[kernel.UUID]reservation.Reservation, len(uow.store.reservations))
	for id, r := range uow.store.reservations {
		out[id] = r
	}
	uow.store.mu.RUnlock()

	uow.mu.Lock()
	for id, r := range uow.reservations {
		out[id] = r
	}
	uow.mu.Unlock()
	return out
}

func (uow *UnitOfWork) findReservation(id kernel.UUID) (reservation.Reservation, bool) {
	uow.mu.Lock()
	r, ok := uow.reservations[id]
	uow.mu.Unlock()
	if ok {
		return r, true
	}

	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	r, ok = uow.store.reservations[id]
	return r, ok
}
