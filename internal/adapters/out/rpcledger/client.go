// Package rpcledger drives a remote ledger over JSON-RPC 2.0. It implements
// ports.TripLedger, so the gateway cannot tell it from the in-process ledger.
package rpcledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"logistics/internal/core/application/tripledger"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/jsonrpc"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3

	methodHealthCheck = "health_check"
)

type tripParams struct {
	TripID string `json:"trip_id"`
}

type statusResult struct {
	TripID string `json:"trip_id"`
	Status string `json:"status"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after ten seconds.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMaxRetries bounds retries of idempotent calls. Zero disables them.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithBackOff replaces the exponential back-off used between retries.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = newBackOff
	}
}

// WithLogger replaces slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client calls a ledger endpoint such as the one served by the rpc package.
type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *slog.Logger

	nextID atomic.Uint64
}

var _ ports.TripLedger = (*Client)(nil)

// New creates a client for the JSON-RPC endpoint at endpoint, for example
// "http://ledger:8080/rpc".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "rpc_ledger_client", "endpoint", endpoint)
	return c
}

// Create is idempotent and retried on transport failures.
func (c *Client) Create(ctx context.Context, tripID string) error {
	return c.call(ctx, tripledger.OperationCreate, tripParams{TripID: tripID}, nil, true)
}

// AdvanceToMidpoint is never retried: a lost response may hide a transition
// that already happened.
func (c *Client) AdvanceToMidpoint(ctx context.Context, tripID string) error {
	return c.call(ctx, tripledger.OperationAdvanceToMidpoint, tripParams{TripID: tripID}, nil, false)
}

// AdvanceToDelivered is never retried either.
func (c *Client) AdvanceToDelivered(ctx context.Context, tripID string) error {
	return c.call(ctx, tripledger.OperationAdvanceToDelivered, tripParams{TripID: tripID}, nil, false)
}

// GetStatus is read only and retried on transport failures.
func (c *Client) GetStatus(ctx context.Context, tripID string) (trip.Status, error) {
	var result statusResult
	if err := c.call(ctx, tripledger.OperationGetStatus, tripParams{TripID: tripID}, &result, true); err != nil {
		return trip.Unknown, err
	}
	return trip.ParseStatus(result.Status)
}

// Ping asks the endpoint for health_check once.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, methodHealthCheck, nil, nil, false)
}

func (c *Client) call(ctx context.Context, method string, params, result any, retry bool) error {
	req, err := jsonrpc.NewRequest(c.nextID.Add(1), method, params)
	if err != nil {
		return err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	var resp jsonrpc.Response
	operation := func() error {
		var opErr error
		resp, opErr = c.post(ctx, body)
		return opErr
	}

	if retry && c.maxRetries > 0 {
		b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
		err = backoff.RetryNotify(operation, b, func(err error, wait time.Duration) {
			c.logger.WarnContext(ctx, "retrying ledger call", "method", method, "error", err, "wait", wait)
		})
	} else {
		err = operation()
	}
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}

	if resp.Error != nil {
		return remoteError(resp.Error)
	}
	if result == nil {
		return nil
	}
	if err = json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// post sends one request. Failures worth retrying are returned as is;
// everything else is wrapped in backoff.Permanent.
func (c *Client) post(ctx context.Context, body []byte) (jsonrpc.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return jsonrpc.Response{}, backoff.Permanent(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return jsonrpc.Response{}, backoff.Permanent(err)
		}
		return jsonrpc.Response{}, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return jsonrpc.Response{}, err
	}

	if httpResp.StatusCode >= http.StatusInternalServerError || httpResp.StatusCode == http.StatusTooManyRequests {
		return jsonrpc.Response{}, fmt.Errorf("ledger endpoint answered %s", httpResp.Status)
	}

	var resp jsonrpc.Response
	if err = json.Unmarshal(data, &resp); err != nil {
		return jsonrpc.Response{}, backoff.Permanent(fmt.Errorf("decode response (%s): %w", httpResp.Status, err))
	}
	if err = resp.Validate(); err != nil {
		return jsonrpc.Response{}, backoff.Permanent(err)
	}
	return resp, nil
}

// remoteError rebuilds the ledger error carried by a JSON-RPC error so that
// errors.Is and trip.KindOf work on this side of the wire.
func remoteError(rpcErr *jsonrpc.Error) error {
	if rpcErr.Data == "" {
		return rpcErr
	}
	err := trip.ErrorForKind(trip.Kind(rpcErr.Data), rpcErr.Message)
	if trip.KindOf(err) == trip.KindInternal {
		return errors.Join(err, rpcErr)
	}
	return err
}
