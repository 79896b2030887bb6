package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/reservationrepo"
	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/paging"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const lockWait = 200 * time.Millisecond

var feb20 = time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work and its repositories
// against a PostgreSQL container.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, lockWait)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE reservations, drivers").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newReservation(vehicleID kernel.UUID, hour int, fee int64, km float64) *reservation.Reservation {
	tod, err := kernel.NewTimeOfDay(hour, 15)
	suite.Require().NoError(err)
	transport, err := reservation.NewTransport(fee, 1.5, km)
	suite.Require().NoError(err)

	addr, err := kernel.NewAddress("인천광역시 중구 공항로 272")
	suite.Require().NoError(err)
	loc, err := kernel.NewLocation(37.4602, 126.4407)
	suite.Require().NoError(err)
	place, err := reservation.NewPlace(addr, loc)
	suite.Require().NoError(err)

	r, err := reservation.NewReservation(kernel.NewUUID(), vehicleID, feb20, tod, transport, place, place)
	suite.Require().NoError(err)
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) seed(reservations ...*reservation.Reservation) {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	for _, r := range reservations {
		suite.Require().NoError(uow.ReservationRepository().Add(ctx, r))
	}
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRoundTrip() {
	ctx := suite.T().Context()
	r := suite.newReservation(kernel.NewUUID(), 23, 210000, 87.4)
	suite.seed(r)

	got, err := suite.factory.Create().ReservationRepository().Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(r))
	suite.Equal(r.Date(), got.Date())
	suite.Equal(r.StartTime(), got.StartTime())
	suite.Equal(r.StartsAt().UTC(), got.StartsAt().UTC())
	suite.Equal(r.Transport().RequiredHours(), got.Transport().RequiredHours())
	suite.Equal(r.DistanceKm(), got.DistanceKm())
	suite.Equal(r.Source().Address().String(), got.Source().Address().String())
	suite.Equal(reservation.Pending, got.Status())
	suite.Nil(got.Driver())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsChanges() {
	ctx := suite.T().Context()
	r := suite.newReservation(kernel.NewUUID(), 9, 100000, 10)
	suite.seed(r)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.ReservationRepository().GetForUpdate(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Approve(kernel.NewUUID()))
	suite.Require().NoError(uow.ReservationRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Rollback(ctx))

	got, err := suite.factory.Create().ReservationRepository().Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(reservation.Pending, got.Status())
	suite.Nil(got.Driver())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_LockTimeout() {
	ctx := suite.T().Context()
	r := suite.newReservation(kernel.NewUUID(), 9, 100000, 10)
	suite.seed(r)

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.ReservationRepository().GetForUpdate(ctx, r.ID())
	suite.Require().NoError(err)

	waiter := suite.factory.Create()
	suite.Require().NoError(waiter.Begin(ctx))
	defer func() { _ = waiter.Rollback(ctx) }()

	started := time.Now()
	_, err = waiter.ReservationRepository().GetForUpdate(ctx, r.ID())

	var timeout *errs.LockTimeoutError
	suite.Require().ErrorAs(err, &timeout)
	suite.Equal(lockWait, timeout.Wait)
	suite.GreaterOrEqual(time.Since(started), lockWait)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_Errors() {
	ctx := suite.T().Context()

	_, err := suite.factory.Create().ReservationRepository().GetForUpdate(ctx, kernel.NewUUID())
	suite.ErrorIs(err, reservationrepo.ErrNoActiveTransaction)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	_, err = uow.ReservationRepository().GetForUpdate(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFindOpen() {
	ctx := suite.T().Context()
	vehicleID := kernel.NewUUID()
	r450 := suite.newReservation(vehicleID, 8, 450000, 5)
	r100 := suite.newReservation(vehicleID, 12, 100000, 50)
	r150 := suite.newReservation(vehicleID, 10, 150000, 20)
	taken := suite.newReservation(vehicleID, 7, 1, 1)
	suite.Require().NoError(taken.Approve(kernel.NewUUID()))
	suite.seed(r450, r100, r150, taken, suite.newReservation(kernel.NewUUID(), 6, 2, 2))

	first, err := paging.NewRequest(0)
	suite.Require().NoError(err)
	repo := suite.factory.Create().ReservationRepository()

	cases := map[ports.SortKey][]int64{
		ports.SortByFee:      {100000, 150000, 450000},
		ports.SortByDistance: {450000, 150000, 100000},
		ports.SortBySchedule: {450000, 150000, 100000},
	}
	for sort, want := range cases {
		page, findErr := repo.FindOpen(ctx, vehicleID, sort, first)
		suite.Require().NoError(findErr, sort.String())
		suite.Equal(int64(3), page.Total)
		fees := make([]int64, 0, len(page.Items))
		for _, r := range page.Items {
			fees = append(fees, r.Fee())
		}
		suite.Equal(want, fees, sort.String())
	}

	second, err := paging.NewSizedRequest(1, 2)
	suite.Require().NoError(err)
	page, err := repo.FindOpen(ctx, vehicleID, ports.SortByFee, second)
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal(int64(450000), page.Items[0].Fee())
	suite.True(page.IsLast())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFindScheduleOfDriver() {
	ctx := suite.T().Context()
	driverID := kernel.NewUUID()

	inRange := suite.newReservation(kernel.NewUUID(), 14, 1000, 1)
	suite.Require().NoError(inRange.Approve(driverID))
	cancelled := suite.newReservation(kernel.NewUUID(), 9, 1000, 1)
	suite.Require().NoError(cancelled.Approve(driverID))
	suite.Require().NoError(cancelled.Cancel())
	otherDriver := suite.newReservation(kernel.NewUUID(), 9, 1000, 1)
	suite.Require().NoError(otherDriver.Approve(kernel.NewUUID()))
	suite.seed(inRange, cancelled, otherDriver)

	repo := suite.factory.Create().ReservationRepository()
	got, err := repo.FindScheduleOfDriver(ctx, driverID, kernel.AddDays(feb20, -1), kernel.AddDays(feb20, 1))
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.True(got[0].IsEqual(inRange))

	got, err = repo.FindScheduleOfDriver(ctx, driverID, kernel.AddDays(feb20, 1), kernel.AddDays(feb20, 2))
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFindPendingStartingBefore() {
	ctx := suite.T().Context()
	early := suite.newReservation(kernel.NewUUID(), 6, 1000, 1)
	late := suite.newReservation(kernel.NewUUID(), 18, 1000, 1)
	approved := suite.newReservation(kernel.NewUUID(), 5, 1000, 1)
	suite.Require().NoError(approved.Approve(kernel.NewUUID()))
	suite.seed(early, late, approved)

	got, err := suite.factory.Create().ReservationRepository().
		FindPendingStartingBefore(ctx, feb20.Add(12*time.Hour), 10)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.True(got[0].IsEqual(early))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDriverRepository() {
	ctx := suite.T().Context()
	drv, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, drv))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().DriverRepository()
	got, err := repo.GetByUserID(ctx, drv.UserID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(drv))
	suite.True(got.VehicleID().IsEqual(drv.VehicleID()))

	got, err = repo.Get(ctx, drv.ID())
	suite.Require().NoError(err)
	suite.True(got.UserID().IsEqual(drv.UserID()))

	_, err = repo.GetByUserID(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	duplicate, err := driver.NewDriver(kernel.NewUUID(), drv.UserID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.ErrorIs(repo.Add(ctx, duplicate), errs.ErrValueIsInvalid)
}
