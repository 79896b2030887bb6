package cmd

import (
	"log/slog"

	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/core/application/filters"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	uowFactory ports.UnitOfWorkFactory
	locker     ports.ScheduleLocker
	detector   services.ConflictDetector
	logger     *slog.Logger
}

// NewCompositionRoot wires handlers over uowFactory. locker may be nil, in which case
// approvals rely on the reservation row lock alone.
func NewCompositionRoot(
	config Config,
	uowFactory ports.UnitOfWorkFactory,
	locker ports.ScheduleLocker,
	logger *slog.Logger,
) (CompositionRoot, error) {
	detector, err := services.NewConflictDetector(config.ApprovalScheduleBuffer)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		uowFactory: uowFactory,
		locker:     locker,
		detector:   detector,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	var opts []commands.ApproveOrderOption
	if c.locker != nil {
		opts = append(opts, commands.WithScheduleLocker(c.locker))
	}
	return commands.NewApproveOrderCommandHandler(f, c.detector, c.logger, opts...)
}

func (c *CompositionRoot) CreateCreateReservationCommandHandler() commands.CreateReservationCommandHandler {
	var f commands.ReservationUoWFactory = FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReservationCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateExpirePendingReservationsCommandHandler() commands.ExpirePendingReservationsCommandHandler {
	var f commands.ReservationUoWFactory = FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpirePendingReservationsCommandHandler(f)
}

func (c *CompositionRoot) CreateFindOpenOrdersQueryHandler() queries.FindOpenOrdersQueryHandler {
	var f queries.RepositoriesFactory = FuncRepositoriesFactory(func() queries.Repositories {
		return c.uowFactory.Create()
	})
	return queries.NewFindOpenOrdersQueryHandler(f, filters.NewRegistry())
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateApproveOrderCommandHandler(),
		c.CreateCreateReservationCommandHandler(),
		c.CreateRegisterDriverCommandHandler(),
		c.CreateFindOpenOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpirePendingReservationsCommandHandler(),
		c.config.PendingExpirySchedule,
		c.config.BusinessLocation,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncReservationUoWFactory func() commands.ReservationUoW

func (f FuncReservationUoWFactory) Create() commands.ReservationUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncRepositoriesFactory func() queries.Repositories

func (f FuncRepositoriesFactory) Create() queries.Repositories {
	return f()
}
