// Package http exposes the driver and operator boundaries of the engine
// over echo. Driver endpoints feed the state machine and the tracker;
// operator endpoints cover the cancel override and the read models.
package http

import (
	"errors"
	"net/http"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/metrics"
	"consignment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	registerDriverHandler    commands.RegisterDriverCommandHandler
	reportLocationHandler    commands.ReportLocationCommandHandler
	confirmPickupHandler     commands.ConfirmPickupCommandHandler
	confirmDeliveryHandler   commands.ConfirmDeliveryCommandHandler
	reportFailureHandler     commands.ReportFailureCommandHandler
	cancelConsignmentHandler commands.CancelConsignmentCommandHandler

	getActiveConsignmentsHandler queries.GetActiveConsignmentsQueryHandler
	getConsignmentTrackHandler   queries.GetConsignmentTrackQueryHandler

	metrics *metrics.Set
}

// NewServer creates the HTTP server with all command and query handlers.
func NewServer(
	registerDriverHandler commands.RegisterDriverCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	confirmPickupHandler commands.ConfirmPickupCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	reportFailureHandler commands.ReportFailureCommandHandler,
	cancelConsignmentHandler commands.CancelConsignmentCommandHandler,
	getActiveConsignmentsHandler queries.GetActiveConsignmentsQueryHandler,
	getConsignmentTrackHandler queries.GetConsignmentTrackQueryHandler,
	set *metrics.Set,
) *Server {
	return &Server{
		registerDriverHandler:        registerDriverHandler,
		reportLocationHandler:        reportLocationHandler,
		confirmPickupHandler:         confirmPickupHandler,
		confirmDeliveryHandler:       confirmDeliveryHandler,
		reportFailureHandler:         reportFailureHandler,
		cancelConsignmentHandler:     cancelConsignmentHandler,
		getActiveConsignmentsHandler: getActiveConsignmentsHandler,
		getConsignmentTrackHandler:   getConsignmentTrackHandler,
		metrics:                      set,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance. The metrics
// handler is passed in so the adapter stays independent of the registry.
func (s *Server) RegisterRoutes(e *echo.Echo, metricsHandler http.Handler) {
	api := e.Group("/api/v1")

	api.POST("/drivers", s.RegisterDriver)
	api.POST("/drivers/:driverId/location", s.ReportLocation)

	api.POST("/consignments/:consignmentId/pickup", s.ConfirmPickup)
	api.POST("/consignments/:consignmentId/stops/:stopId/delivery", s.ConfirmDelivery)
	api.POST("/consignments/:consignmentId/failure", s.ReportFailure)
	api.POST("/consignments/:consignmentId/cancel", s.CancelConsignment)

	api.GET("/consignments/active", s.GetActiveConsignments)
	api.GET("/consignments/:consignmentId/track", s.GetConsignmentTrack)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Error is the JSON error body shared by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterDriver handles POST /api/v1/drivers.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterDriverCommand(body.Name)
	if err != nil {
		return commandError(ctx, err)
	}

	driverID, err := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": driverID.String()})
}

// ReportLocation handles POST /api/v1/drivers/:driverId/location. A stale
// sample is acknowledged with 202 and dropped rather than treated as a
// client error: mobile networks reorder delivery routinely.
func (s *Server) ReportLocation(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driverId"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var body struct {
		Latitude   float64   `json:"latitude"`
		Longitude  float64   `json:"longitude"`
		Speed      *float64  `json:"speed"`
		Heading    *float64  `json:"heading"`
		ReportedAt time.Time `json:"reportedAt"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportLocationCommand(
		driverID, body.Latitude, body.Longitude, body.Speed, body.Heading, body.ReportedAt)
	if err != nil {
		return commandError(ctx, err)
	}

	if err := s.reportLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrStaleSample) {
			s.metrics.StaleSamplesDropped.Inc()
			return ctx.JSON(http.StatusAccepted, map[string]string{"status": "dropped"})
		}
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmPickup handles POST /api/v1/consignments/:consignmentId/pickup.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	consignmentID, err := kernel.UUIDFromString(ctx.Param("consignmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid consignment id")
	}

	var body struct {
		DriverID string `json:"driverId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewConfirmPickupCommand(consignmentID, driverID, time.Now().UTC())
	if err != nil {
		return commandError(ctx, err)
	}

	if err := s.confirmPickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles
// POST /api/v1/consignments/:consignmentId/stops/:stopId/delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	consignmentID, err := kernel.UUIDFromString(ctx.Param("consignmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid consignment id")
	}

	stopID, err := kernel.UUIDFromString(ctx.Param("stopId"))
	if err != nil {
		return badRequest(ctx, "Invalid stop id")
	}

	var body struct {
		DriverID     string  `json:"driverId"`
		CODCollected bool    `json:"codCollected"`
		ProofRef     *string `json:"proofRef"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(
		consignmentID, driverID, stopID, body.CODCollected, body.ProofRef, time.Now().UTC())
	if err != nil {
		return commandError(ctx, err)
	}

	if err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportFailure handles POST /api/v1/consignments/:consignmentId/failure.
func (s *Server) ReportFailure(ctx echo.Context) error {
	consignmentID, err := kernel.UUIDFromString(ctx.Param("consignmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid consignment id")
	}

	var body struct {
		DriverID     string `json:"driverId"`
		Reason       string `json:"reason"`
		CODCollected int64  `json:"codCollected"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewReportFailureCommand(
		consignmentID, driverID, body.Reason, body.CODCollected, time.Now().UTC())
	if err != nil {
		return commandError(ctx, err)
	}

	if err := s.reportFailureHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelConsignment handles POST /api/v1/consignments/:consignmentId/cancel.
func (s *Server) CancelConsignment(ctx echo.Context) error {
	consignmentID, err := kernel.UUIDFromString(ctx.Param("consignmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid consignment id")
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelConsignmentCommand(consignmentID, body.Reason, time.Now().UTC())
	if err != nil {
		return commandError(ctx, err)
	}

	if err := s.cancelConsignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// activeConsignmentDTO is the operator list row.
type activeConsignmentDTO struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	PickupAddress  string    `json:"pickupAddress"`
	DriverID       *string   `json:"driverId,omitempty"`
	TotalStops     int       `json:"totalStops"`
	CompletedStops int       `json:"completedStops"`
	CODAmount      int64     `json:"codAmount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// GetActiveConsignments handles GET /api/v1/consignments/active.
func (s *Server) GetActiveConsignments(ctx echo.Context) error {
	query := queries.NewGetActiveConsignmentsQuery()

	rows, err := s.getActiveConsignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve consignments",
		})
	}

	response := make([]activeConsignmentDTO, len(rows))
	for i, row := range rows {
		dto := activeConsignmentDTO{
			ID:             row.ID.String(),
			Status:         row.Status,
			PickupAddress:  row.PickupAddress,
			TotalStops:     row.TotalStops,
			CompletedStops: row.CompletedStops,
			CODAmount:      row.CODAmount,
			CreatedAt:      row.CreatedAt,
		}
		if row.DriverID != nil {
			id := row.DriverID.String()
			dto.DriverID = &id
		}
		response[i] = dto
	}

	return ctx.JSON(http.StatusOK, response)
}

// trackPointDTO is one replayed location sample.
type trackPointDTO struct {
	DriverID   string    `json:"driverId"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Speed      *float64  `json:"speed,omitempty"`
	Heading    *float64  `json:"heading,omitempty"`
	ReportedAt time.Time `json:"reportedAt"`
}

// GetConsignmentTrack handles GET /api/v1/consignments/:consignmentId/track.
func (s *Server) GetConsignmentTrack(ctx echo.Context) error {
	consignmentID, err := kernel.UUIDFromString(ctx.Param("consignmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid consignment id")
	}

	query, err := queries.NewGetConsignmentTrackQuery(consignmentID)
	if err != nil {
		return commandError(ctx, err)
	}

	rows, err := s.getConsignmentTrackHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve track",
		})
	}

	response := make([]trackPointDTO, len(rows))
	for i, row := range rows {
		response[i] = trackPointDTO{
			DriverID:   row.DriverID.String(),
			Latitude:   row.Latitude,
			Longitude:  row.Longitude,
			Speed:      row.Speed,
			Heading:    row.Heading,
			ReportedAt: row.ReportedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// commandError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, unknown aggregates 404, illegal transitions and
// driver mismatches 409.
func commandError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}
