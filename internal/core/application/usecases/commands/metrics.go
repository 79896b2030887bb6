package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Approval outcomes used as the result label.
const (
	resultApproved     = "approved"
	resultConflict     = "conflict"
	resultInvalidState = "invalid_state"
	resultLockTimeout  = "lock_timeout"
	resultNotFound     = "not_found"
	resultRejected     = "rejected"
	resultError        = "error"
)

var (
	approvalAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freight",
		Name:      "approval_attempts_total",
		Help:      "Order approval attempts grouped by outcome.",
	}, []string{"result"})

	approvalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "freight",
		Name:      "approval_duration_seconds",
		Help:      "Time spent approving an order, lock wait included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})

	expiredReservations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "freight",
		Name:      "expired_reservations_total",
		Help:      "Pending reservations cancelled because their start time passed.",
	})

	expirySkippedLocked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "freight",
		Name:      "expiry_skipped_locked_total",
		Help:      "Stale reservations left for the next expiry pass because their row lock was busy.",
	})
)
