// Package kernel provides the value objects shared by the ledger's domain model.
//
// The package includes:
//   - UUID: identifies a ledger slot in every storage backend
//   - TripID: the caller-assigned, opaque trip identifier
//
// Both are immutable and have an invalid zero value, so a forgotten
// initialisation is caught by Validate instead of silently matching.
package kernel
