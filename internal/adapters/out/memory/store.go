// Package memory is an in-process storage adapter. It keeps reservations and drivers
// in maps, stages writes per unit of work and applies them on commit, and serializes
// GetForUpdate per reservation with a weighted semaphore.
//
// It backs STORAGE=memory and the application tests; data does not survive a restart.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/pkg/errs"

	"golang.org/x/sync/semaphore"
)

// DefaultLockWait bounds GetForUpdate when no wait is configured.
const DefaultLockWait = 3 * time.Second

var ErrNoActiveTransaction = errors.New("no active transaction")

// Store holds committed state shared by all units of work.
type Store struct {
	mu           sync.RWMutex
	drivers      map[kernel.UUID]driver.Driver
	reservations map[kernel.UUID]reservation.Reservation

	locks    *lockTable
	lockWait time.Duration
}

func NewStore(lockWait time.Duration) *Store {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	return &Store{
		drivers:      make(map[kernel.UUID]driver.Driver),
		reservations: make(map[kernel.UUID]reservation.Reservation),
		locks:        newLockTable(),
		lockWait:     lockWait,
	}
}

func (s *Store) LockWait() time.Duration {
	return s.lockWait
}

// apply writes a committed unit of work. Driver user ids stay unique across
// concurrent units of work.
func (s *Store) apply(drivers map[kernel.UUID]driver.Driver, reservations map[kernel.UUID]reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, d := range drivers {
		for otherID, other := range s.drivers {
			if otherID != id && other.UserID().IsEqual(d.UserID()) {
				return duplicateUserError(d.UserID())
			}
		}
	}

	for id, d := range drivers {
		s.drivers[id] = d
	}
	for id, r := range reservations {
		s.reservations[id] = r
	}
	return nil
}

func duplicateUserError(userID kernel.UUID) error {
	return errs.NewValueIsInvalidErrorWithCause("user", fmt.Errorf("user %s already has a driver profile", userID))
}

// lockTable hands out one binary semaphore per reservation id.
type lockTable struct {
	mu   sync.Mutex
	sems map[kernel.UUID]*semaphore.Weighted
}

func newLockTable() *lockTable {
	return &lockTable{sems: make(map[kernel.UUID]*semaphore.Weighted)}
}

func (t *lockTable) get(id kernel.UUID) *semaphore.Weighted {
	t.mu.Lock()
	defer t.mu.Unlock()

	sem, ok := t.sems[id]
	if !ok {
		sem = semaphore.NewWeighted(1)
		t.sems[id] = sem
	}
	return sem
}

// acquire waits at most wait for the lock of id. Running out of wait yields
// *errs.LockTimeoutError; cancellation of ctx itself is returned as is.
func (t *lockTable) acquire(ctx context.Context, id kernel.UUID, wait time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	if err := t.get(id).Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.NewLockTimeoutError("reservation", id, wait, err)
	}
	return nil
}

func (t *lockTable) release(id kernel.UUID) {
	t.get(id).Release(1)
}
