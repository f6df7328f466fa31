package trip

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

var (
	// ErrNoActiveTrip is returned when an operation reaches a ledger slot that
	// has never been written by create.
	ErrNoActiveTrip = errors.New("no active trip")

	// ErrIdentifierMismatch is the sentinel behind IdentifierMismatchError.
	ErrIdentifierMismatch = errors.New("trip id mismatch")

	// ErrInvalidTransition is the sentinel behind InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// IdentifierMismatchError reports a trip id that differs from the stored one.
// Expected is kept for logs only; Error never discloses it.
type IdentifierMismatchError struct {
	Expected string
	Actual   string
}

func newIdentifierMismatchError(expected, actual string) *IdentifierMismatchError {
	return &IdentifierMismatchError{Expected: expected, Actual: actual}
}

func (e *IdentifierMismatchError) Error() string {
	return fmt.Sprintf("%s: %q is not the active trip", ErrIdentifierMismatch, e.Actual)
}

func (e *IdentifierMismatchError) Unwrap() error {
	return ErrIdentifierMismatch
}

// InvalidTransitionError reports an attempt to move from From to To that the
// state machine forbids.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func newInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Kind classifies an error for transports.
type Kind string

const (
	KindNoActiveTrip       Kind = "NoActiveTrip"
	KindIdentifierMismatch Kind = "IdentifierMismatch"
	KindInvalidTransition  Kind = "InvalidTransition"
	KindInvalidRequest     Kind = "InvalidRequest"
	KindInternal           Kind = "Internal"
)

// KindOf maps err onto the ledger taxonomy. Validation failures from errs are
// InvalidRequest; anything unrecognised is Internal. KindOf(nil) is "".
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoActiveTrip):
		return KindNoActiveTrip
	case errors.Is(err, ErrIdentifierMismatch):
		return KindIdentifierMismatch
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return KindInvalidRequest
	default:
		return KindInternal
	}
}

// ErrorForKind rebuilds a typed error from a kind and message received over a
// transport, so errors.Is keeps working on the far side of the wire.
func ErrorForKind(kind Kind, message string) error {
	switch kind {
	case KindNoActiveTrip:
		return wrapRemote(ErrNoActiveTrip, message)
	case KindIdentifierMismatch:
		return wrapRemote(ErrIdentifierMismatch, message)
	case KindInvalidTransition:
		return wrapRemote(ErrInvalidTransition, message)
	case KindInvalidRequest:
		return errs.NewValueIsInvalidErrorWithCause("request", errors.New(message))
	default:
		return errors.New(message)
	}
}

// wrapRemote attaches sentinel to message unless message already starts
// with the sentinel text.
func wrapRemote(sentinel error, message string) error {
	detail := strings.TrimPrefix(strings.TrimPrefix(message, sentinel.Error()), ": ")
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
