// Package http exposes the dispatch core over a JSON API. The server
// coordinates between echo handlers and the application use cases; no
// domain logic lives here.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/relaypoint"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"
)

// Server wires the HTTP endpoints to the command and query handlers.
type Server struct {
	createOrder        commands.CreateOrderCommandHandler
	createDriver       commands.CreateDriverCommandHandler
	createRelayPoint   commands.CreateRelayPointCommandHandler
	markOrderReady     commands.MarkOrderReadyCommandHandler
	advanceOrder       commands.AdvanceOrderCommandHandler
	assignReadyOrders  commands.AssignReadyOrdersCommandHandler
	assignOrder        commands.AssignOrderToDriverCommandHandler
	depositAtRelay     commands.DepositAtRelayCommandHandler
	confirmRelayPickup commands.ConfirmRelayPickupCommandHandler
	updateLocation     commands.UpdateDriverLocationCommandHandler
	setAvailability    commands.SetDriverAvailabilityCommandHandler

	getReadyOrders      queries.GetReadyOrdersQueryHandler
	getAvailableDrivers queries.GetAvailableDriversQueryHandler
	getRelaySaturation  queries.GetRelaySaturationQueryHandler
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	createDriver commands.CreateDriverCommandHandler,
	createRelayPoint commands.CreateRelayPointCommandHandler,
	markOrderReady commands.MarkOrderReadyCommandHandler,
	advanceOrder commands.AdvanceOrderCommandHandler,
	assignReadyOrders commands.AssignReadyOrdersCommandHandler,
	assignOrder commands.AssignOrderToDriverCommandHandler,
	depositAtRelay commands.DepositAtRelayCommandHandler,
	confirmRelayPickup commands.ConfirmRelayPickupCommandHandler,
	updateLocation commands.UpdateDriverLocationCommandHandler,
	setAvailability commands.SetDriverAvailabilityCommandHandler,
	getReadyOrders queries.GetReadyOrdersQueryHandler,
	getAvailableDrivers queries.GetAvailableDriversQueryHandler,
	getRelaySaturation queries.GetRelaySaturationQueryHandler,
) *Server {
	return &Server{
		createOrder:         createOrder,
		createDriver:        createDriver,
		createRelayPoint:    createRelayPoint,
		markOrderReady:      markOrderReady,
		advanceOrder:        advanceOrder,
		assignReadyOrders:   assignReadyOrders,
		assignOrder:         assignOrder,
		depositAtRelay:      depositAtRelay,
		confirmRelayPickup:  confirmRelayPickup,
		updateLocation:      updateLocation,
		setAvailability:     setAvailability,
		getReadyOrders:      getReadyOrders,
		getAvailableDrivers: getAvailableDrivers,
		getRelaySaturation:  getRelaySaturation,
	}
}

// RegisterRoutes attaches every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/ready", s.GetReadyOrders)
	v1.POST("/orders/:id/ready", s.MarkOrderReady)
	v1.POST("/orders/:id/advance", s.AdvanceOrder)
	v1.POST("/orders/:id/assign", s.AssignOrder)
	v1.POST("/orders/:id/relay/deposit", s.DepositAtRelay)
	v1.POST("/orders/:id/relay/pickup", s.ConfirmRelayPickup)

	v1.POST("/drivers", s.CreateDriver)
	v1.GET("/drivers/available", s.GetAvailableDrivers)
	v1.PUT("/drivers/:id/location", s.UpdateDriverLocation)
	v1.PUT("/drivers/:id/availability", s.SetDriverAvailability)

	v1.POST("/relay-points", s.CreateRelayPoint)
	v1.GET("/relay-points/saturation", s.GetRelaySaturation)

	v1.POST("/dispatch/run", s.RunDispatch)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryType, err := order.DeliveryTypeFromString(body.DeliveryType)
	if err != nil {
		return writeError(ctx, err)
	}
	origin, err := kernel.NewGeoPoint(body.Origin.Lat, body.Origin.Lon)
	if err != nil {
		return writeError(ctx, err)
	}
	destination, err := kernel.NewGeoPoint(body.Destination.Lat, body.Destination.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, itemBody := range body.Items {
		item, itemErr := order.NewItem(itemBody.Name, itemBody.Quantity, itemBody.RequiresColdChain)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, deliveryType, origin,
		destination, items, body.TotalAmountCents)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body NewDriver
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleType, err := driver.VehicleTypeFromString(body.VehicleType)
	if err != nil {
		return writeError(ctx, err)
	}
	location, err := kernel.NewGeoPoint(body.Location.Lat, body.Location.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	maxActiveOrders := body.MaxActiveOrders
	if maxActiveOrders == 0 {
		maxActiveOrders = driver.DefaultMaxActiveOrders
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, body.Name, vehicleType,
		body.HasColdBox, location, maxActiveOrders)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: driverID.String()})
}

// CreateRelayPoint handles POST /api/v1/relay-points.
func (s *Server) CreateRelayPoint(ctx echo.Context) error {
	var body NewRelayPoint
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoPoint(body.Location.Lat, body.Location.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	windows := make(map[time.Weekday]relaypoint.TimeWindow, len(body.Schedule))
	for _, windowBody := range body.Schedule {
		window, windowErr := relaypoint.NewTimeWindow(windowBody.OpenMinute, windowBody.CloseMinute)
		if windowErr != nil {
			return writeError(ctx, windowErr)
		}
		windows[time.Weekday(windowBody.Weekday)] = window
	}
	schedule, err := relaypoint.NewSchedule(windows)
	if err != nil {
		return writeError(ctx, err)
	}

	capacities := make([]relaypoint.StorageCapacity, 0, len(body.Capacities))
	for _, poolBody := range body.Capacities {
		storageType, stErr := relaypoint.StorageTypeFromString(poolBody.StorageType)
		if stErr != nil {
			return writeError(ctx, stErr)
		}
		capacity, capErr := relaypoint.NewStorageCapacity(storageType, poolBody.TotalSlots)
		if capErr != nil {
			return writeError(ctx, capErr)
		}
		capacities = append(capacities, capacity)
	}

	relayPointID := kernel.NewUUID()
	cmd, err := commands.NewCreateRelayPointCommand(relayPointID, body.Name,
		location, schedule, capacities)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createRelayPoint.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: relayPointID.String()})
}

// MarkOrderReady handles POST /api/v1/orders/:id/ready.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markOrderReady.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body AdvanceOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := commands.OrderActionFromString(body.Action)
	if err != nil {
		return writeError(ctx, err)
	}
	actorRole, err := commands.ActorFromString(body.ActorRole)
	if err != nil {
		return writeError(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, action, actorRole, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.advanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles POST /api/v1/orders/:id/assign, the manual
// dispatch override.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body AssignOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewAssignOrderToDriverCommand(orderID, driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DepositAtRelay handles POST /api/v1/orders/:id/relay/deposit.
func (s *Server) DepositAtRelay(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body RelayDeposit
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewDepositAtRelayCommand(orderID, driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.depositAtRelay.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmRelayPickup handles POST /api/v1/orders/:id/relay/pickup.
func (s *Server) ConfirmRelayPickup(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewConfirmRelayPickupCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.confirmRelayPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDriverLocation handles PUT /api/v1/drivers/:id/location.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var body DriverLocation
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	location, err := kernel.NewGeoPoint(body.Lat, body.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDriverAvailability handles PUT /api/v1/drivers/:id/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var body DriverAvailability
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(driverID, body.Available)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.setAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RunDispatch handles POST /api/v1/dispatch/run - triggers one batch
// dispatch run outside the scheduled cadence.
func (s *Server) RunDispatch(ctx echo.Context) error {
	result, err := s.assignReadyOrders.Handle(ctx.Request().Context(),
		commands.NewAssignReadyOrdersCommand())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DispatchRunResult{
		AssignedCount:      result.AssignedCount,
		UnassignedCount:    result.UnassignedCount,
		AvgOrdersPerDriver: result.AvgOrdersPerDriver,
	})
}

// GetReadyOrders handles GET /api/v1/orders/ready.
func (s *Server) GetReadyOrders(ctx echo.Context) error {
	backlog, err := s.getReadyOrders.Handle(ctx.Request().Context(),
		queries.NewGetReadyOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ReadyOrder, len(backlog))
	for i, entry := range backlog {
		response[i] = ReadyOrder{
			ID:           entry.ID.String(),
			DeliveryType: entry.DeliveryType,
			Destination: GeoPoint{
				Lat: entry.Destination.Latitude(),
				Lon: entry.Destination.Longitude(),
			},
			ReadyAt: entry.ReadyAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAvailableDrivers handles GET /api/v1/drivers/available.
func (s *Server) GetAvailableDrivers(ctx echo.Context) error {
	fleet, err := s.getAvailableDrivers.Handle(ctx.Request().Context(),
		queries.NewGetAvailableDriversQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AvailableDriver, len(fleet))
	for i, entry := range fleet {
		response[i] = AvailableDriver{
			ID:          entry.ID.String(),
			Name:        entry.Name,
			VehicleType: entry.VehicleType,
			HasColdBox:  entry.HasColdBox,
			Location: GeoPoint{
				Lat: entry.Location.Latitude(),
				Lon: entry.Location.Longitude(),
			},
			ActiveOrders:    entry.ActiveOrders,
			MaxActiveOrders: entry.MaxActiveOrders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRelaySaturation handles GET /api/v1/relay-points/saturation.
func (s *Server) GetRelaySaturation(ctx echo.Context) error {
	pools, err := s.getRelaySaturation.Handle(ctx.Request().Context(),
		queries.NewGetRelaySaturationQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RelaySaturation, len(pools))
	for i, entry := range pools {
		response[i] = RelaySaturation{
			RelayPointID:  entry.RelayPointID.String(),
			RelayName:     entry.RelayName,
			StorageType:   entry.StorageType,
			TotalSlots:    entry.Total,
			UsedSlots:     entry.Used,
			Saturation:    entry.Saturation,
			NearSaturated: entry.NearSaturated,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// badRequest writes a 400 with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes: validation
// problems are the client's fault, missing aggregates are 404, dispatch
// and lifecycle conflicts are 409, and the actor table maps to 403.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	var notFound *errs.ObjectNotFoundError
	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError
	var stale *errs.StaleStateError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &required), errors.As(err, &outOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, commands.ErrActorNotAllowed):
		status = http.StatusForbidden
	case errors.As(err, &stale),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, services.ErrNoEligibleDriver),
		errors.Is(err, services.ErrNoRelayAvailable),
		errors.Is(err, relaypoint.ErrCapacityExceeded),
		errors.Is(err, driver.ErrDriverAtCapacity),
		errors.Is(err, driver.ErrDriverUnavailable):
		status = http.StatusConflict
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
