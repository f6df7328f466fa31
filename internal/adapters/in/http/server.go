package http

import (
	"context"
	"net/http"

	"logistics/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// HealthCheck describes the store behind the ledger for GET /health.
type HealthCheck struct {
	Storage  string
	LedgerID string
	Ping     func(ctx context.Context) error
}

// Server implements ServerInterface over a ledger, local or remote.
type Server struct {
	ledger ports.TripLedger
	health HealthCheck
}

// NewServer creates the gateway handlers.
func NewServer(ledger ports.TripLedger, health HealthCheck) *Server {
	return &Server{
		ledger: ledger,
		health: health,
	}
}

// Root handles GET /.
func (s *Server) Root(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "API is running!")
}

// Health handles GET /health. It answers 503 when the store does not
// respond to a ping.
func (s *Server) Health(ctx echo.Context) error {
	body := Health{
		Status:   "healthy",
		Storage:  s.health.Storage,
		LedgerID: s.health.LedgerID,
	}
	if s.health.Ping != nil {
		if err := s.health.Ping(ctx.Request().Context()); err != nil {
			body.Status = "unhealthy"
			body.Error = err.Error()
			return ctx.JSON(http.StatusServiceUnavailable, body)
		}
	}
	return ctx.JSON(http.StatusOK, body)
}

// CreateTrip handles POST /api/v1/trips.
func (s *Server) CreateTrip(ctx echo.Context) error {
	var newTrip NewTrip
	if err := ctx.Bind(&newTrip); err != nil {
		return writeInvalidRequest(ctx, "invalid request body")
	}

	if err := s.ledger.Create(ctx.Request().Context(), newTrip.TripID); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AdvanceToMidpoint handles POST /api/v1/trips/{tripId}/midpoint.
func (s *Server) AdvanceToMidpoint(ctx echo.Context, tripID string) error {
	if err := s.ledger.AdvanceToMidpoint(ctx.Request().Context(), tripID); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceToDelivered handles POST /api/v1/trips/{tripId}/delivered.
func (s *Server) AdvanceToDelivered(ctx echo.Context, tripID string) error {
	if err := s.ledger.AdvanceToDelivered(ctx.Request().Context(), tripID); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetTripStatus handles GET /api/v1/trips/{tripId}/status.
func (s *Server) GetTripStatus(ctx echo.Context, tripID string) error {
	return s.writeStatus(ctx, tripID, "Trip status retrieved")
}

// ViewContract handles GET /contract/{tripId}, the route older clients poll.
func (s *Server) ViewContract(ctx echo.Context, tripID string) error {
	return s.writeStatus(ctx, tripID, "Contract status retrieved")
}

func (s *Server) writeStatus(ctx echo.Context, tripID, message string) error {
	status, err := s.ledger.GetStatus(ctx.Request().Context(), tripID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusResponse{
		Message: message,
		Data: TripStatus{
			TripID: tripID,
			Status: status.String(),
		},
	})
}
