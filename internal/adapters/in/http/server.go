// Package http exposes the freight use cases over a JSON API served by echo.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"freight/internal/core/application/filters"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserIDHeader carries the authenticated platform user id set by the gateway.
const UserIDHeader = "X-User-Id"

// Server binds HTTP requests to command and query handlers.
type Server struct {
	approveOrderHandler      commands.ApproveOrderCommandHandler
	createReservationHandler commands.CreateReservationCommandHandler
	registerDriverHandler    commands.RegisterDriverCommandHandler
	findOpenOrdersHandler    queries.FindOpenOrdersQueryHandler
	logger                   *slog.Logger
}

func NewServer(
	approveOrderHandler commands.ApproveOrderCommandHandler,
	createReservationHandler commands.CreateReservationCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	findOpenOrdersHandler queries.FindOpenOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		approveOrderHandler:      approveOrderHandler,
		createReservationHandler: createReservationHandler,
		registerDriverHandler:    registerDriverHandler,
		findOpenOrdersHandler:    findOpenOrdersHandler,
		logger:                   logger.With("component", "http"),
	}
}

// NewEcho builds the router with request logging and panic recovery.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.InfoContext(c.Request().Context(), "Request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/orders", s.GetOpenOrders)
	api.POST("/orders/approve", s.ApproveOrder)
	api.POST("/reservations", s.CreateReservation)
	api.POST("/drivers", s.RegisterDriver)
}

// GetOpenOrders handles GET /api/v1/orders?sort=fee|distance|time&page=N.
func (s *Server) GetOpenOrders(c echo.Context) error {
	userID, err := userIDOf(c)
	if err != nil {
		return unauthorized(c)
	}

	key := filters.Fee
	if raw := c.QueryParam("sort"); raw != "" {
		if key, err = filters.ParseKey(raw); err != nil {
			return s.fail(c, err)
		}
	}

	page := 0
	if raw := c.QueryParam("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			return badRequest(c, "page must be an integer")
		}
	}

	query, err := queries.NewFindOpenOrdersQuery(userID, key, page)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.findOpenOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := OrderPage{
		Orders:   make([]Order, len(result.Rows)),
		LastPage: result.LastPage,
	}
	for i, row := range result.Rows {
		response.Orders[i] = Order{
			ID:                row.ID.String(),
			SrcSimpleAddress:  row.SrcSimpleAddress,
			DstSimpleAddress:  row.DstSimpleAddress,
			TransportDatetime: row.TransportDatetime,
			Fee:               row.Fee,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// ApproveOrder handles POST /api/v1/orders/approve.
func (s *Server) ApproveOrder(c echo.Context) error {
	userID, err := userIDOf(c)
	if err != nil {
		return unauthorized(c)
	}

	var req ApproveOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	reservationID, err := kernel.UUIDFromString(req.ReservationID)
	if err != nil {
		return badRequest(c, "reservationId must be a UUID")
	}

	cmd, err := commands.NewApproveOrderCommand(userID, reservationID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.approveOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateReservation handles POST /api/v1/reservations.
func (s *Server) CreateReservation(c echo.Context) error {
	var req NewReservation
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return badRequest(c, "vehicleId must be a UUID")
	}
	date, err := kernel.ParseDate(req.Date)
	if err != nil {
		return s.fail(c, err)
	}
	startTime, err := kernel.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateReservationCommand(
		id,
		vehicleID,
		date,
		startTime,
		req.Fee,
		req.RequiredHours,
		req.DistanceKm,
		commands.PlaceInput(req.Source),
		commands.PlaceInput(req.Destination),
	)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.createReservationHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// RegisterDriver handles POST /api/v1/drivers for the calling user.
func (s *Server) RegisterDriver(c echo.Context) error {
	userID, err := userIDOf(c)
	if err != nil {
		return unauthorized(c)
	}

	var req NewDriver
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return badRequest(c, "vehicleId must be a UUID")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(id, userID, vehicleID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.registerDriverHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

func userIDOf(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Request().Header.Get(UserIDHeader))
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Kind:    "unauthorized",
		Message: UserIDHeader + " header must carry the caller's user id",
	})
}
