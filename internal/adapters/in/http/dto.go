package http

// NewTrip is the body of POST /api/v1/trips.
type NewTrip struct {
	TripID string `json:"trip_id"`
}

// TripStatus is the data member of a status response.
type TripStatus struct {
	TripID string `json:"trip_id"`
	Status string `json:"status"`
}

// StatusResponse keeps the {message, data} envelope existing clients read.
type StatusResponse struct {
	Message string     `json:"message"`
	Data    TripStatus `json:"data"`
}

// ErrorDetail names the failure kind.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error is the body of every failed request.
type Error struct {
	Message string      `json:"message"`
	Error   ErrorDetail `json:"error"`
}

// Health is the body of GET /health.
type Health struct {
	Status   string `json:"status"`
	Storage  string `json:"storage,omitempty"`
	LedgerID string `json:"ledger_id,omitempty"`
	Error    string `json:"error,omitempty"`
}
