// Package redislock serializes work per driver across processes with Redis keys.
package redislock

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "freight:schedule:"

	// DefaultTTL bounds how long a crashed holder can keep a driver locked.
	DefaultTTL = 30 * time.Second
)

var errLockHeld = errors.New("schedule lock is held")

// releaseScript deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ScheduleLocker implements ports.ScheduleLocker with SET NX PX and a
// token-checked release.
type ScheduleLocker struct {
	client redis.UniversalClient
	prefix string
	wait   time.Duration
	ttl    time.Duration
}

type Option func(*ScheduleLocker)

func WithPrefix(prefix string) Option {
	return func(l *ScheduleLocker) {
		if prefix != "" {
			l.prefix = prefix
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(l *ScheduleLocker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// NewScheduleLocker returns a locker that retries for at most wait.
func NewScheduleLocker(client redis.UniversalClient, wait time.Duration, opts ...Option) *ScheduleLocker {
	l := &ScheduleLocker{
		client: client,
		prefix: defaultPrefix,
		wait:   wait,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock fails with *errs.LockTimeoutError when the key stays taken for the whole wait,
// and with ctx.Err() when ctx ends first.
func (l *ScheduleLocker) Lock(ctx context.Context, driverID kernel.UUID) (func(context.Context) error, error) {
	key := l.prefix + driverID.String()
	token := uuid.NewString()

	acquire := func() error {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return errLockHeld
		}
		return nil
	}

	if err := backoff.Retry(acquire, backoff.WithContext(l.newBackOff(), ctx)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, errLockHeld) {
			return nil, errs.NewLockTimeoutError("driver schedule", driverID.String(), l.wait, err)
		}
		return nil, err
	}

	release := func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

func (l *ScheduleLocker) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = l.wait
	return b
}
