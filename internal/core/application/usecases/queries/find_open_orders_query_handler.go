package queries

import (
	"context"

	"freight/internal/core/application/filters"
)

// FindOpenOrdersQueryHandler lists the unassigned orders booked for the caller's
// vehicle class, ordered by the requested filter key.
type FindOpenOrdersQueryHandler struct {
	factory  RepositoriesFactory
	registry filters.Registry
}

func NewFindOpenOrdersQueryHandler(factory RepositoriesFactory, registry filters.Registry) FindOpenOrdersQueryHandler {
	return FindOpenOrdersQueryHandler{
		factory:  factory,
		registry: registry,
	}
}

// Handle fails with *errs.ObjectNotFoundError when the user has no driver profile.
func (h FindOpenOrdersQueryHandler) Handle(ctx context.Context, query FindOpenOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	repos := h.factory.Create()
	drv, err := repos.DriverRepository().GetByUserID(ctx, query.UserID())
	if err != nil {
		return OrderPage{}, err
	}

	strategy, err := h.registry.Lookup(query.Key())
	if err != nil {
		return OrderPage{}, err
	}

	page, err := strategy.Execute(ctx, repos.ReservationRepository(), drv.VehicleID(), query.Page())
	if err != nil {
		return OrderPage{}, err
	}

	openOrdersQueries.WithLabelValues(query.Key().String()).Inc()
	return AssembleOrderPage(page), nil
}
