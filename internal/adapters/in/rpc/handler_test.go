package rpc_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"logistics/internal/adapters/in/rpc"
	"logistics/internal/adapters/out/memory"
	"logistics/internal/core/application/tripledger"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/jsonrpc"
	"logistics/internal/pkg/ratelimiter"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...rpc.Option) *echo.Echo {
	t.Helper()
	ledger := tripledger.NewLocal(memory.NewUnitOfWorkFactory(memory.NewStore(), kernel.NewUUID()))
	e := echo.New()
	rpc.NewHandler(ledger, opts...).Register(e, "/rpc")
	return e
}

func call(t *testing.T, e *echo.Echo, body string) (int, jsonrpc.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp jsonrpc.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func callMethod(t *testing.T, e *echo.Echo, method, tripID string) jsonrpc.Response {
	t.Helper()
	_, resp := call(t, e, `{"jsonrpc":"2.0","id":1,"method":"`+method+`","params":{"trip_id":"`+tripID+`"}}`)
	return resp
}

func TestHandler_Scenario(t *testing.T) {
	e := newServer(t)

	resp := callMethod(t, e, "get_status", "T1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, rpc.CodeNoActiveTrip, resp.Error.Code)
	assert.Equal(t, "NoActiveTrip", resp.Error.Data)

	resp = callMethod(t, e, "create", "T1")
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Result))

	resp = callMethod(t, e, "advance_to_delivered", "T1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, rpc.CodeInvalidTransition, resp.Error.Code)

	resp = callMethod(t, e, "advance_to_midpoint", "T1")
	require.Nil(t, resp.Error)

	resp = callMethod(t, e, "advance_to_midpoint", "T2")
	require.NotNil(t, resp.Error)
	assert.Equal(t, rpc.CodeIdentifierMismatch, resp.Error.Code)
	assert.Equal(t, "IdentifierMismatch", resp.Error.Data)

	resp = callMethod(t, e, "advance_to_delivered", "T1")
	require.Nil(t, resp.Error)

	resp = callMethod(t, e, "get_status", "T1")
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"trip_id":"T1","status":"Delivered"}`, string(resp.Result))
	assert.Equal(t, "1", string(resp.ID))
}

func TestHandler_EnvelopeErrors(t *testing.T) {
	e := newServer(t)

	testCases := []struct {
		name string
		body string
		code int
	}{
		{name: "malformed json", body: `{"jsonrpc":`, code: jsonrpc.CodeParseError},
		{name: "wrong version", body: `{"jsonrpc":"1.0","id":1,"method":"create"}`, code: jsonrpc.CodeInvalidRequest},
		{name: "missing method", body: `{"jsonrpc":"2.0","id":1}`, code: jsonrpc.CodeInvalidRequest},
		{name: "batch", body: ` [{"jsonrpc":"2.0","id":1,"method":"health_check"}]`, code: jsonrpc.CodeInvalidRequest},
		{name: "empty batch", body: `[]`, code: jsonrpc.CodeInvalidRequest},
		{name: "trailing data", body: `{"jsonrpc":"2.0","id":1,"method":"create"} {}`, code: jsonrpc.CodeInvalidRequest},
		{name: "unknown method", body: `{"jsonrpc":"2.0","id":1,"method":"rewind","params":{"trip_id":"T1"}}`, code: jsonrpc.CodeMethodNotFound},
		{name: "missing params", body: `{"jsonrpc":"2.0","id":1,"method":"create"}`, code: jsonrpc.CodeInvalidParams},
		{name: "params of wrong shape", body: `{"jsonrpc":"2.0","id":1,"method":"create","params":["T1"]}`, code: jsonrpc.CodeInvalidParams},
		{name: "empty trip id", body: `{"jsonrpc":"2.0","id":1,"method":"create","params":{"trip_id":""}}`, code: jsonrpc.CodeInvalidParams},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := call(t, e, tc.body)
			assert.Equal(t, http.StatusOK, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestHandler_Notifications(t *testing.T) {
	e := newServer(t)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := send(`{"jsonrpc":"2.0","method":"create","params":{"trip_id":"T1"}}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = send(`{"jsonrpc":"2.0","method":"advance_to_delivered","params":{"trip_id":"T1"}}`)
	assert.Equal(t, http.StatusNoContent, rec.Code, "a failed notification gets no response either")
	assert.Empty(t, rec.Body.String())

	resp := callMethod(t, e, "get_status", "T1")
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"trip_id":"T1","status":"Departed"}`, string(resp.Result))

	_, resp = call(t, e, `{"jsonrpc":"2.0","id":null,"method":"health_check"}`)
	require.Nil(t, resp.Error)
	assert.Equal(t, "null", string(resp.ID))
}

func TestHandler_HealthCheck(t *testing.T) {
	e := newServer(t)

	_, resp := call(t, e, `{"jsonrpc":"2.0","id":"h","method":"health_check"}`)

	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Result))
	assert.Equal(t, `"h"`, string(resp.ID))
}

func TestHandler_RateLimited(t *testing.T) {
	e := newServer(t, rpc.WithRateLimiter(ratelimiter.New(0.001, 1, time.Minute)))
	body := `{"jsonrpc":"2.0","id":1,"method":"health_check"}`

	status, _ := call(t, e, body)
	assert.Equal(t, http.StatusOK, status)

	status, resp := call(t, e, body)
	assert.Equal(t, http.StatusTooManyRequests, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, rpc.CodeRateLimited, resp.Error.Code)
}
