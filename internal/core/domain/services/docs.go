// Package services contains domain services: rules that span an aggregate and
// the place it lives in, without any I/O.
//
// TripLedger applies the ledger protocol to a single slot. The slot is passed
// in by the caller (nil meaning "never written"), so the same rules serve the
// Postgres, Redis and in-memory stores and any number of independent ledgers.
package services
