package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultPendingExpirySchedule runs the expiry once a minute.
const DefaultPendingExpirySchedule = "@every 1m"

// PendingExpirer is satisfied by commands.ExpirePendingReservationsCommandHandler.
type PendingExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingReservationsCommand) (int, error)
}

// PendingExpiryJob cancels Pending reservations whose start time has passed.
// Reservation start times are civil times of the business location, so the
// job reads the wall clock there.
type PendingExpiryJob struct {
	handler  PendingExpirer
	schedule string
	location *time.Location
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewPendingExpiryJob builds the job. A nil location means UTC.
func NewPendingExpiryJob(handler PendingExpirer, schedule string, location *time.Location, logger *slog.Logger) *PendingExpiryJob {
	if schedule == "" {
		schedule = DefaultPendingExpirySchedule
	}
	if location == nil {
		location = time.UTC
	}
	return &PendingExpiryJob{
		handler:  handler,
		schedule: schedule,
		location: location,
		cron:     cron.New(cron.WithLocation(location)),
		logger:   logger.With("component", "pending_expiry_job", "location", location.String()),
		now:      time.Now,
	}
}

// Start registers the job with its cron schedule. An unparsable schedule is returned as is.
func (j *PendingExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Pending expiry job started", "schedule", j.schedule)
	return nil
}

// Run performs one expiry pass.
func (j *PendingExpiryJob) Run(ctx context.Context) {
	cmd, err := commands.NewExpirePendingReservationsCommand(j.civilNow(), commands.DefaultExpiryBatch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending expiry command is invalid", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending expiry job failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired pending reservations", "count", expired)
	}
}

// civilNow is the wall clock of the business location labelled as UTC, the
// form in which reservation start times are stored.
func (j *PendingExpiryJob) civilNow() time.Time {
	n := j.now().In(j.location)
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), n.Nanosecond(), time.UTC)
}

// Stop waits for a running pass to finish.
func (j *PendingExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Pending expiry job stopped")
}
