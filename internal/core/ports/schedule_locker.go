package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// ScheduleLocker serializes approvals per driver across processes. Lock blocks up to
// the locker's wait bound and fails with *errs.LockTimeoutError after it. The returned
// release function must be called exactly once.
type ScheduleLocker interface {
	Lock(ctx context.Context, driverID kernel.UUID) (release func(context.Context) error, err error)
}
