// Package errs provides standardized error types for the logistics service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the storage adapters and the transports.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing (e.g. an empty trip id)
//   - ValueIsInvalidError: For when a value is invalid (e.g. an unknown status)
//   - ValueIsOutOfRangeError: For numeric settings outside their bounds
//   - ObjectNotFoundError: For when a ledger slot holds no trip
//   - VersionIsInvalidError: For unsupported protocol versions on the RPC transport
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired) returned by Unwrap
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//
// Callers classify errors with errors.Is against the sentinels and read the
// details with errors.As.
package errs
