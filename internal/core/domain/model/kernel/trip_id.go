package kernel

import (
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrTripIDIsNotConstructed is returned when a TripID literal bypassed NewTripID.
var ErrTripIDIsNotConstructed = errs.NewValueIsRequiredError("TripID must be created via NewTripID")

// TripID is the opaque identifier a caller assigns to a trip when it is created.
// The ledger never interprets it; it only compares it byte for byte against the
// stored identifier. Surrounding whitespace is not trimmed, so " T1" and "T1"
// are different trips.
type TripID struct {
	value string
	guard guard.ConstructorGuard
}

// NewTripID builds a TripID. Blank identifiers are rejected.
func NewTripID(value string) (TripID, error) {
	if strings.TrimSpace(value) == "" {
		return TripID{}, errs.NewValueIsRequiredError("trip id")
	}
	return TripID{value: value, guard: guard.NewConstructorGuard()}, nil
}

// MustNewTripID is NewTripID for literals known to be valid; it panics otherwise.
func MustNewTripID(value string) TripID {
	id, err := NewTripID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// Validate ensures the TripID was built by NewTripID.
func (t TripID) Validate() error {
	return t.guard.Validate(ErrTripIDIsNotConstructed)
}

// String returns the identifier as supplied by the caller.
func (t TripID) String() string {
	return t.value
}

// IsEqual reports whether both identifiers hold the same value.
func (t TripID) IsEqual(other TripID) bool {
	return t.value == other.value
}
