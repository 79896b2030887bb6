package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPendingExpirer struct{ mock.Mock }

func (m *MockPendingExpirer) Handle(ctx context.Context, cmd commands.ExpirePendingReservationsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func newTestJob(expirer PendingExpirer, schedule string) (*PendingExpiryJob, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	job := NewPendingExpiryJob(expirer, schedule, nil, logger)
	job.now = func() time.Time { return time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC) }
	return job, &buf
}

func TestPendingExpiryJob_Run(t *testing.T) {
	ctx := t.Context()
	expirer := new(MockPendingExpirer)
	job, logs := newTestJob(expirer, "")

	expirer.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ExpirePendingReservationsCommand) bool {
		return cmd.Now().Equal(time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)) &&
			cmd.Batch() == commands.DefaultExpiryBatch
	})).Return(3, nil).Once()

	job.Run(ctx)

	expirer.AssertExpectations(t)
	assert.Contains(t, logs.String(), "Expired pending reservations")
	assert.Contains(t, logs.String(), "count=3")
	assert.Contains(t, logs.String(), "component=pending_expiry_job")
}

func TestPendingExpiryJob_RunUsesBusinessWallClock(t *testing.T) {
	ctx := t.Context()
	expirer := new(MockPendingExpirer)
	kst := time.FixedZone("KST", 9*60*60)
	job := NewPendingExpiryJob(expirer, "", kst, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	job.now = func() time.Time { return time.Date(2024, 2, 20, 0, 30, 0, 0, time.UTC) }

	// 00:30 UTC is 09:30 in Seoul; a 09:00 KST reservation has started.
	expirer.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ExpirePendingReservationsCommand) bool {
		return cmd.Now().Equal(time.Date(2024, 2, 20, 9, 30, 0, 0, time.UTC))
	})).Return(1, nil).Once()

	job.Run(ctx)

	expirer.AssertExpectations(t)
}

func TestPendingExpiryJob_RunLogsFailure(t *testing.T) {
	ctx := t.Context()
	expirer := new(MockPendingExpirer)
	job, logs := newTestJob(expirer, "")

	expirer.On("Handle", ctx, mock.Anything).Return(0, errors.New("database is down")).Once()

	job.Run(ctx)

	expirer.AssertExpectations(t)
	assert.Contains(t, logs.String(), "Pending expiry job failed")
	assert.Contains(t, logs.String(), "database is down")
}

func TestPendingExpiryJob_QuietWhenNothingExpired(t *testing.T) {
	ctx := t.Context()
	expirer := new(MockPendingExpirer)
	job, logs := newTestJob(expirer, "")

	expirer.On("Handle", ctx, mock.Anything).Return(0, nil).Once()

	job.Run(ctx)

	assert.NotContains(t, logs.String(), "Expired pending reservations")
}

func TestPendingExpiryJob_Schedule(t *testing.T) {
	job, _ := newTestJob(new(MockPendingExpirer), "")
	assert.Equal(t, DefaultPendingExpirySchedule, job.schedule)

	bad, _ := newTestJob(new(MockPendingExpirer), "every now and then")
	require.Error(t, bad.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	jm := NewJobManager(new(MockPendingExpirer), "@every 1h", time.UTC, logger)

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	broken := NewJobManager(new(MockPendingExpirer), "not a cron schedule", time.UTC, logger)
	assert.ErrorContains(t, broken.StartAll(), "pending expiry job")
}
