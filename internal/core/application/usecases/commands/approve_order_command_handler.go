package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ApproveOrderCommandHandler assigns an open reservation to a driver without
// double-booking the driver.
//
// The reservation is locked for the whole unit of work, so two approvals of the same
// reservation are serialized and the loser sees an InvalidStateError. Approvals of
// different reservations for the same driver run concurrently unless a ScheduleLocker
// is configured.
//
// Example:
//
//	detector, _ := services.NewConflictDetector(0)
//	handler := NewApproveOrderCommandHandler(uowFactory, detector, logger)
//	err := handler.Handle(ctx, cmd)
//	switch errs.KindOf(err) {
//	case errs.KindConflict:     // 409, do not retry
//	case errs.KindLockTimeout:  // 503, retry with backoff
//	}
type ApproveOrderCommandHandler struct {
	uowFactory UoWFactory
	detector   services.ConflictDetector
	locker     ports.ScheduleLocker
	logger     *slog.Logger
}

type ApproveOrderOption func(*ApproveOrderCommandHandler)

// WithScheduleLocker serializes approvals per driver with locker.
func WithScheduleLocker(locker ports.ScheduleLocker) ApproveOrderOption {
	return func(h *ApproveOrderCommandHandler) {
		h.locker = locker
	}
}

func NewApproveOrderCommandHandler(
	uowFactory UoWFactory,
	detector services.ConflictDetector,
	logger *slog.Logger,
	opts ...ApproveOrderOption,
) ApproveOrderCommandHandler {
	h := ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		detector:   detector,
		logger:     logger.With("component", "approve_order"),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Handle approves cmd's reservation for the caller's driver profile. It returns
//   - *errs.ObjectNotFoundError when the driver profile or the reservation is missing
//   - *errs.LockTimeoutError when the reservation stays locked past the wait bound
//   - *errs.ScheduleConflictError when the reservation overlaps the driver's schedule
//   - *errs.InvalidStateError when the reservation is no longer Pending
//
// A failed call changes nothing.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
	started := time.Now()
	err := h.approve(ctx, cmd)

	result := approvalResult(err)
	approvalAttempts.WithLabelValues(result).Inc()
	approvalDuration.WithLabelValues(result).Observe(time.Since(started).Seconds())

	attrs := []any{
		"reservation_id", cmd.ReservationID().String(),
		"user_id", cmd.UserID().String(),
		"result", result,
	}
	switch result {
	case resultApproved:
		h.logger.InfoContext(ctx, "Order approved", attrs...)
	case resultError:
		h.logger.ErrorContext(ctx, "Order approval failed", append(attrs, "error", err)...)
	default:
		h.logger.WarnContext(ctx, "Order approval rejected", append(attrs, "error", err)...)
	}

	return err
}

func (h ApproveOrderCommandHandler) approve(ctx context.Context, cmd ApproveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drv, err := uow.DriverRepository().GetByUserID(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	if h.locker != nil {
		release, err := h.locker.Lock(ctx, drv.ID())
		if err != nil {
			return err
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				h.logger.WarnContext(ctx, "Failed to release schedule lock",
					"driver_id", drv.ID().String(), "error", err)
			}
		}()
	}

	reservationRepo := uow.ReservationRepository()
	candidate, err := reservationRepo.GetForUpdate(ctx, cmd.ReservationID())
	if err != nil {
		return err
	}

	if !drv.CanHaul(candidate.VehicleID()) {
		return errs.NewValueIsInvalidErrorWithCause("vehicle", fmt.Errorf(
			"reservation %s is booked for vehicle %s, driver hauls with %s",
			candidate.ID(), candidate.VehicleID(), drv.VehicleID()))
	}

	window, err := candidate.Window()
	if err != nil {
		return err
	}

	from, to := services.ScheduleRange(window)
	scheduled, err := reservationRepo.FindScheduleOfDriver(ctx, drv.ID(), from, to)
	if err != nil {
		return err
	}

	if err = h.detector.Approve(candidate, drv, scheduled); err != nil {
		return err
	}

	if err = reservationRepo.Update(ctx, candidate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func approvalResult(err error) string {
	if err == nil {
		return resultApproved
	}
	switch errs.KindOf(err) {
	case errs.KindConflict:
		return resultConflict
	case errs.KindInvalidState:
		return resultInvalidState
	case errs.KindLockTimeout:
		return resultLockTimeout
	case errs.KindNotFound:
		return resultNotFound
	case errs.KindInvalidValue, errs.KindInvalidDuration:
		return resultRejected
	default:
		return resultError
	}
}
