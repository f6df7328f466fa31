package rpcledger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"logistics/internal/adapters/in/rpc"
	"logistics/internal/adapters/out/memory"
	"logistics/internal/adapters/out/rpcledger"
	"logistics/internal/core/application/tripledger"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/jsonrpc"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoteLedger(t *testing.T) *httptest.Server {
	t.Helper()
	ledger := tripledger.NewLocal(memory.NewUnitOfWorkFactory(memory.NewStore(), kernel.NewUUID()))
	e := echo.New()
	rpc.NewHandler(ledger).Register(e, "/rpc")
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func fastBackOff() backoff.BackOff {
	return backoff.NewConstantBackOff(time.Millisecond)
}

func TestClient_Scenario(t *testing.T) {
	ctx := t.Context()
	srv := newRemoteLedger(t)
	client := rpcledger.New(srv.URL + "/rpc")

	_, err := client.GetStatus(ctx, "T1")
	require.ErrorIs(t, err, trip.ErrNoActiveTrip)

	require.NoError(t, client.Create(ctx, "T1"))
	require.ErrorIs(t, client.AdvanceToDelivered(ctx, "T1"), trip.ErrInvalidTransition)
	require.NoError(t, client.AdvanceToMidpoint(ctx, "T1"))

	err = client.AdvanceToMidpoint(ctx, "T2")
	require.ErrorIs(t, err, trip.ErrIdentifierMismatch)
	assert.Equal(t, trip.KindIdentifierMismatch, trip.KindOf(err))

	require.ErrorIs(t, client.AdvanceToMidpoint(ctx, "T1"), trip.ErrInvalidTransition)
	require.NoError(t, client.AdvanceToDelivered(ctx, "T1"))
	require.ErrorIs(t, client.AdvanceToDelivered(ctx, "T1"), trip.ErrInvalidTransition)

	status, err := client.GetStatus(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, trip.Delivered, status)
}

func TestClient_EmptyTripID(t *testing.T) {
	srv := newRemoteLedger(t)
	client := rpcledger.New(srv.URL + "/rpc")

	err := client.Create(t.Context(), "")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, trip.KindInvalidRequest, trip.KindOf(err))
}

// flakyServer fails the first failures calls with 503, then answers with a
// fixed result.
func flakyServer(t *testing.T, failures int32, result any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var req jsonrpc.Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		resp, _ := jsonrpc.NewResult(req.ID, result)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_RetriesIdempotentCalls(t *testing.T) {
	srv, calls := flakyServer(t, 2, map[string]string{"trip_id": "T1", "status": "InTransit"})
	client := rpcledger.New(srv.URL, rpcledger.WithBackOff(fastBackOff), rpcledger.WithMaxRetries(3))

	status, err := client.GetStatus(t.Context(), "T1")

	require.NoError(t, err)
	assert.Equal(t, trip.InTransit, status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	srv, calls := flakyServer(t, 10, map[string]bool{"ok": true})
	client := rpcledger.New(srv.URL, rpcledger.WithBackOff(fastBackOff), rpcledger.WithMaxRetries(2))

	err := client.Create(t.Context(), "T1")

	require.Error(t, err)
	assert.Equal(t, trip.KindInternal, trip.KindOf(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryAdvances(t *testing.T) {
	srv, calls := flakyServer(t, 1, map[string]bool{"ok": true})
	client := rpcledger.New(srv.URL, rpcledger.WithBackOff(fastBackOff), rpcledger.WithMaxRetries(3))

	require.Error(t, client.AdvanceToMidpoint(t.Context(), "T1"))
	assert.Equal(t, int32(1), calls.Load())

	require.NoError(t, client.AdvanceToDelivered(t.Context(), "T1"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_LedgerErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req jsonrpc.Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(jsonrpc.NewError(req.ID, &jsonrpc.Error{
			Code:    rpc.CodeNoActiveTrip,
			Message: "no active trip",
			Data:    string(trip.KindNoActiveTrip),
		}))
	}))
	t.Cleanup(srv.Close)
	client := rpcledger.New(srv.URL, rpcledger.WithBackOff(fastBackOff))

	_, err := client.GetStatus(t.Context(), "T1")

	require.ErrorIs(t, err, trip.ErrNoActiveTrip)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ErrorWithoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(jsonrpc.NewError(json.RawMessage("1"), &jsonrpc.Error{
			Code:    jsonrpc.CodeMethodNotFound,
			Message: "method not found",
		}))
	}))
	t.Cleanup(srv.Close)
	client := rpcledger.New(srv.URL)

	err := client.Create(t.Context(), "T1")

	var rpcErr *jsonrpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, jsonrpc.CodeMethodNotFound, rpcErr.Code)
	assert.Equal(t, trip.KindInternal, trip.KindOf(err))
}

func TestClient_CanceledContext(t *testing.T) {
	srv, calls := flakyServer(t, 0, map[string]bool{"ok": true})
	client := rpcledger.New(srv.URL, rpcledger.WithBackOff(fastBackOff))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := client.Create(ctx, "T1")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_Ping(t *testing.T) {
	srv := newRemoteLedger(t)

	require.NoError(t, rpcledger.New(srv.URL+"/rpc").Ping(t.Context()))

	unreachable := rpcledger.New(srv.URL+"/rpc", rpcledger.WithMaxRetries(0))
	srv.Close()
	require.Error(t, unreachable.Ping(t.Context()))
}
