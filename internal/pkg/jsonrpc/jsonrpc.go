// Package jsonrpc holds the JSON-RPC 2.0 envelope shared by the ledger
// endpoint and its client.
package jsonrpc

import (
	"encoding/json"
	"fmt"

	"logistics/internal/pkg/errs"
)

// Version is the only protocol version spoken on either side.
const Version = "2.0"

// Standard error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a call. ID is kept raw so it is echoed back byte for byte.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response carries either Result or Error.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the error member of a response. Data is free form.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewRequest encodes params into a request with the given numeric id.
func NewRequest(id uint64, method string, params any) (Request, error) {
	req := Request{
		JSONRPC: Version,
		ID:      json.RawMessage(fmt.Sprintf("%d", id)),
		Method:  method,
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return Request{}, err
		}
		req.Params = raw
	}
	return req, nil
}

// NewResult builds a successful response.
func NewResult(id json.RawMessage, result any) (Response, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return Response{}, err
	}
	return Response{JSONRPC: Version, ID: id, Result: raw}, nil
}

// NewError builds a failed response.
func NewError(id json.RawMessage, rpcErr *Error) Response {
	return Response{JSONRPC: Version, ID: id, Error: rpcErr}
}

// Validate checks the envelope of an incoming request.
func (r Request) Validate() error {
	if r.JSONRPC != Version {
		return errs.NewVersionIsInvalidError("jsonrpc", fmt.Errorf("%q is not supported", r.JSONRPC))
	}
	if r.Method == "" {
		return errs.NewValueIsRequiredError("method")
	}
	return nil
}

// IsNotification reports whether the call carries no id, so its caller
// expects no response. An explicit null id is still a request.
func (r Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Validate checks the envelope of a received response.
func (r Response) Validate() error {
	if r.JSONRPC != Version {
		return errs.NewVersionIsInvalidError("jsonrpc", fmt.Errorf("%q is not supported", r.JSONRPC))
	}
	if r.Error == nil && r.Result == nil {
		return errs.NewValueIsRequiredError("result")
	}
	return nil
}
