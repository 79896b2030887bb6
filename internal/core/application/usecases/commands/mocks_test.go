package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/ports"
	"freight/internal/pkg/paging"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) Add(ctx context.Context, r *reservation.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, r *reservation.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindScheduleOfDriver(
	ctx context.Context,
	driverID kernel.UUID,
	from, to time.Time,
) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, driverID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindOpen(
	ctx context.Context,
	vehicleID kernel.UUID,
	sort ports.SortKey,
	page paging.Request,
) (paging.Page[*reservation.Reservation], error) {
	args := m.Called(ctx, vehicleID, sort, page)
	return args.Get(0).(paging.Page[*reservation.Reservation]), args.Error(1)
}

func (m *MockReservationRepository) FindPendingStartingBefore(
	ctx context.Context,
	t time.Time,
	limit int,
) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, t, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) ReservationRepository() ports.ReservationRepository {
	args := m.Called()
	return args.Get(0).(ports.ReservationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockReservationUoWFactory struct{ mock.Mock }

func (m *MockReservationUoWFactory) Create() commands.ReservationUoW {
	args := m.Called()
	return args.Get(0).(commands.ReservationUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockScheduleLocker struct{ mock.Mock }

func (m *MockScheduleLocker) Lock(ctx context.Context, driverID kernel.UUID) (func(context.Context) error, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}

// FuncUoWFactory adapts a ports.UnitOfWorkFactory to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

var feb20 = time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPendingReservation(
	t *testing.T,
	vehicleID kernel.UUID,
	date time.Time,
	hour, minute int,
	hours float64,
) *reservation.Reservation {
	t.Helper()
	tod, err := kernel.NewTimeOfDay(hour, minute)
	require.NoError(t, err)
	transport, err := reservation.NewTransport(150000, hours, 42)
	require.NoError(t, err)
	addr, _ := kernel.NewAddress("부산광역시 연제구 중앙대로 1001")
	loc, _ := kernel.NewLocation(35.1798, 129.0750)
	p, err := reservation.NewPlace(addr, loc)
	require.NoError(t, err)

	r, err := reservation.NewReservation(kernel.NewUUID(), vehicleID, date, tod, transport, p, p)
	require.NoError(t, err)
	return r
}

func newApprovedReservation(
	t *testing.T,
	drv *driver.Driver,
	date time.Time,
	hour, minute int,
	hours float64,
) *reservation.Reservation {
	t.Helper()
	r := newPendingReservation(t, drv.VehicleID(), date, hour, minute, hours)
	require.NoError(t, r.Approve(drv.ID()))
	return r
}

func newDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return d
}

type FuncReservationUoWFactory func() commands.ReservationUoW

func (f FuncReservationUoWFactory) Create() commands.ReservationUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}
