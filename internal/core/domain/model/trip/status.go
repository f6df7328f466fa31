package trip

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status represents the checkpoint a trip has reached.
//
// State transitions:
//
//	Departed ──> InTransit ──> Delivered
//
// Only single forward steps are legal. Delivered is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Departed is the status of a freshly created trip.
	Departed

	// InTransit is reached once the midpoint checkpoint is passed.
	InTransit

	// Delivered is the final status. No transition leaves it.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Departed:  "Departed",
		InTransit: "InTransit",
		Delivered: "Delivered",
	}
}

// statusAliases maps accepted spellings, lower-cased, to a Status. The
// checkpoint names of the first contract version (saida, meio, entrada) are
// still accepted from older clients.
func statusAliases() map[string]Status {
	return map[string]Status{
		"departed":   Departed,
		"in_transit": InTransit,
		"intransit":  InTransit,
		"delivered":  Delivered,
		"saida":      Departed,
		"meio":       InTransit,
		"entrada":    Delivered,
	}
}

// ParseStatus converts a textual status into a Status.
//
// Accepted values (case-insensitive): Departed, InTransit, In_Transit,
// Delivered, and the legacy Saida, Meio, Entrada.
func ParseStatus(s string) (Status, error) {
	if status, ok := statusAliases()[strings.ToLower(strings.TrimSpace(s))]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the Status is one of Departed, InTransit or Delivered.
func (s Status) Validate() error {
	if s < Departed || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status; out of range values
// render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarshalText renders the status by name so JSON payloads stay readable.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a status written by MarshalText or any ParseStatus alias.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether no transition can leave the status.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Before reports whether s comes strictly earlier than other in the
// Departed < InTransit < Delivered order.
func (s Status) Before(other Status) bool {
	return s < other
}

// AdvanceToMidpoint transitions Departed to InTransit.
//
// Returns:
//   - (InTransit, nil) from Departed
//   - (s, *InvalidTransitionError) from any other status
func (s Status) AdvanceToMidpoint() (Status, error) {
	if s != Departed {
		return s, newInvalidTransitionError(s, InTransit)
	}
	return InTransit, nil
}

// AdvanceToDelivered transitions InTransit to Delivered.
//
// Returns:
//   - (Delivered, nil) from InTransit
//   - (s, *InvalidTransitionError) from any other status, including the
//     Departed -> Delivered skip and Delivered itself
func (s Status) AdvanceToDelivered() (Status, error) {
	if s != InTransit {
		return s, newInvalidTransitionError(s, Delivered)
	}
	return Delivered, nil
}
