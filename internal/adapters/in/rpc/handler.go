// Package rpc exposes a ledger over JSON-RPC 2.0 on an echo route.
//
// Methods take {"trip_id": "..."} and answer {"ok": true}, except get_status
// which answers {"trip_id": "...", "status": "..."}. Ledger failures use the
// codes below with the failure kind in the error data member. Calls without
// an id are notifications and get 204 with no body; batches are rejected.
package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"logistics/internal/core/application/tripledger"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/jsonrpc"
	"logistics/internal/pkg/ratelimiter"

	"github.com/labstack/echo/v4"
)

// Ledger error codes.
const (
	CodeInternal           = -32000
	CodeNoActiveTrip       = -32001
	CodeIdentifierMismatch = -32002
	CodeInvalidTransition  = -32003
	CodeRateLimited        = -32005
)

const (
	MethodHealthCheck = "health_check"

	maxBodyBytes int64 = 64 << 10
)

// TripParams are the params of every ledger method.
type TripParams struct {
	TripID string `json:"trip_id"`
}

// StatusResult is the result of get_status.
type StatusResult struct {
	TripID string `json:"trip_id"`
	Status string `json:"status"`
}

// OKResult is the result of methods without a value.
type OKResult struct {
	OK bool `json:"ok"`
}

// Option configures a Handler.
type Option func(*Handler)

// WithRateLimiter limits calls per client address.
func WithRateLimiter(l *ratelimiter.MapLimiter) Option {
	return func(h *Handler) {
		h.limiter = l
	}
}

// WithLogger replaces slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// Handler serves JSON-RPC calls against a ledger.
type Handler struct {
	ledger  ports.TripLedger
	limiter *ratelimiter.MapLimiter
	logger  *slog.Logger
}

// NewHandler serves ledger over JSON-RPC. Without WithRateLimiter every call
// is allowed.
func NewHandler(ledger ports.TripLedger, opts ...Option) *Handler {
	h := &Handler{ledger: ledger, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "rpc")
	return h
}

// Register mounts the endpoint on path.
func (h *Handler) Register(e *echo.Echo, path string) {
	e.POST(path, h.Handle)
}

// Handle serves one JSON-RPC request. Transport level problems still answer
// 200 with an error envelope, except rate limiting and oversized bodies.
func (h *Handler) Handle(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), time.Now()) {
		return c.JSON(http.StatusTooManyRequests, jsonrpc.NewError(nil, &jsonrpc.Error{
			Code:    CodeRateLimited,
			Message: "rate limit exceeded",
		}))
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return c.JSON(http.StatusRequestEntityTooLarge, jsonrpc.NewError(nil, &jsonrpc.Error{
				Code:    jsonrpc.CodeInvalidRequest,
				Message: "request body too large",
			}))
		}
		return err
	}

	if trimmed := bytes.TrimLeft(body, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		return c.JSON(http.StatusOK, jsonrpc.NewError(nil, &jsonrpc.Error{
			Code:    jsonrpc.CodeInvalidRequest,
			Message: "batch requests are not supported",
		}))
	}

	var req jsonrpc.Request
	dec := json.NewDecoder(bytes.NewReader(body))
	if err = dec.Decode(&req); err != nil {
		return c.JSON(http.StatusOK, jsonrpc.NewError(nil, &jsonrpc.Error{
			Code:    jsonrpc.CodeParseError,
			Message: "parse error",
		}))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return c.JSON(http.StatusOK, invalidRequest(req.ID))
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusOK, invalidRequest(req.ID))
	}

	started := time.Now()
	result, rpcErr := h.dispatch(c, req)
	elapsed := time.Since(started)

	if req.IsNotification() {
		h.logger.DebugContext(c.Request().Context(), "rpc notification served",
			"method", req.Method, "failed", rpcErr != nil, "elapsed", elapsed)
		return c.NoContent(http.StatusNoContent)
	}

	if rpcErr != nil {
		h.logger.InfoContext(c.Request().Context(), "rpc failed",
			"method", req.Method, "rpc_code", rpcErr.Code, "elapsed", elapsed)
		return c.JSON(http.StatusOK, jsonrpc.NewError(req.ID, rpcErr))
	}

	resp, err := jsonrpc.NewResult(req.ID, result)
	if err != nil {
		return c.JSON(http.StatusOK, jsonrpc.NewError(req.ID, &jsonrpc.Error{
			Code:    jsonrpc.CodeInternalError,
			Message: err.Error(),
		}))
	}
	h.logger.DebugContext(c.Request().Context(), "rpc served", "method", req.Method, "elapsed", elapsed)
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) dispatch(c echo.Context, req jsonrpc.Request) (any, *jsonrpc.Error) {
	ctx := c.Request().Context()

	if req.Method == MethodHealthCheck {
		return map[string]string{"status": "ok"}, nil
	}

	var call func(params TripParams) (any, error)
	switch req.Method {
	case tripledger.OperationCreate:
		call = func(p TripParams) (any, error) { return OKResult{OK: true}, h.ledger.Create(ctx, p.TripID) }
	case tripledger.OperationAdvanceToMidpoint:
		call = func(p TripParams) (any, error) { return OKResult{OK: true}, h.ledger.AdvanceToMidpoint(ctx, p.TripID) }
	case tripledger.OperationAdvanceToDelivered:
		call = func(p TripParams) (any, error) { return OKResult{OK: true}, h.ledger.AdvanceToDelivered(ctx, p.TripID) }
	case tripledger.OperationGetStatus:
		call = func(p TripParams) (any, error) {
			status, err := h.ledger.GetStatus(ctx, p.TripID)
			return StatusResult{TripID: p.TripID, Status: status.String()}, err
		}
	default:
		return nil, &jsonrpc.Error{Code: jsonrpc.CodeMethodNotFound, Message: "method not found"}
	}

	var params TripParams
	if len(req.Params) == 0 || json.Unmarshal(req.Params, &params) != nil {
		return nil, &jsonrpc.Error{
			Code:    jsonrpc.CodeInvalidParams,
			Message: `params must be {"trip_id": "..."}`,
			Data:    string(trip.KindInvalidRequest),
		}
	}

	result, err := call(params)
	if err != nil {
		return nil, ledgerError(err)
	}
	return result, nil
}

// ledgerError maps a ledger failure onto a JSON-RPC error.
func ledgerError(err error) *jsonrpc.Error {
	kind := trip.KindOf(err)
	rpcErr := &jsonrpc.Error{Message: err.Error(), Data: string(kind)}

	switch kind {
	case trip.KindNoActiveTrip:
		rpcErr.Code = CodeNoActiveTrip
	case trip.KindIdentifierMismatch:
		rpcErr.Code = CodeIdentifierMismatch
	case trip.KindInvalidTransition:
		rpcErr.Code = CodeInvalidTransition
	case trip.KindInvalidRequest:
		rpcErr.Code = jsonrpc.CodeInvalidParams
	default:
		rpcErr.Code = CodeInternal
		rpcErr.Message = "internal error"
	}
	return rpcErr
}

func invalidRequest(id json.RawMessage) jsonrpc.Response {
	return jsonrpc.NewError(id, &jsonrpc.Error{
		Code:    jsonrpc.CodeInvalidRequest,
		Message: "invalid request",
	})
}
