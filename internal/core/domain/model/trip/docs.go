// Package trip provides the Trip aggregate tracked by a ledger and the
// forward-only Status state machine it enforces.
//
// The package includes:
//   - Trip: the single shipment record held in a ledger slot
//   - Status: Departed -> InTransit -> Delivered, with Delivered terminal
//   - The failure taxonomy shared by every transport: ErrNoActiveTrip,
//     IdentifierMismatchError and InvalidTransitionError, plus KindOf to
//     classify any error for a response
//
// Key business rules:
//   - A trip starts in Departed
//   - Status only moves one step forward; skips, rewinds and repeats fail
//   - Every operation must present the stored trip id; a mismatch is reported
//     before transition legality is considered
//   - A failed operation leaves the trip untouched
package trip
