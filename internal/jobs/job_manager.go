package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	pendingExpiryJob *PendingExpiryJob
}

func NewJobManager(expirer PendingExpirer, expirySchedule string, location *time.Location, logger *slog.Logger) *JobManager {
	return &JobManager{
		pendingExpiryJob: NewPendingExpiryJob(expirer, expirySchedule, location, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.pendingExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending expiry job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.pendingExpiryJob.Stop()
}
