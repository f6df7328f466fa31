// Package tripledger runs the ledger operations in process, behind the
// ports.TripLedger capability the transports depend on.
package tripledger

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/core/ports"
)

// Operation names shared by logs, metrics and the RPC transport.
const (
	OperationCreate             = "create"
	OperationAdvanceToMidpoint  = "advance_to_midpoint"
	OperationAdvanceToDelivered = "advance_to_delivered"
	OperationGetStatus          = "get_status"
)

// Observer receives the outcome of every operation.
type Observer interface {
	ObserveOperation(operation string, err error, elapsed time.Duration)
	SetStatus(status trip.Status)
}

// Option configures a Local ledger.
type Option func(*Local)

// WithObserver reports operations to o.
func WithObserver(o Observer) Option {
	return func(l *Local) {
		l.observer = o
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Local) {
		l.logger = logger
	}
}

// Local implements ports.TripLedger over a unit of work factory.
type Local struct {
	create    commands.CreateTripCommandHandler
	midpoint  commands.AdvanceToMidpointCommandHandler
	delivered commands.AdvanceToDeliveredCommandHandler
	status    queries.GetTripStatusQueryHandler

	observer Observer
	logger   *slog.Logger
}

var _ ports.TripLedger = (*Local)(nil)

// NewLocal wires the command and query handlers to uowFactory.
func NewLocal(uowFactory ports.UnitOfWorkFactory, opts ...Option) *Local {
	tripUoWs := tripUoWFactory{factory: uowFactory}
	l := &Local{
		create:    commands.NewCreateTripCommandHandler(tripUoWs),
		midpoint:  commands.NewAdvanceToMidpointCommandHandler(tripUoWs),
		delivered: commands.NewAdvanceToDeliveredCommandHandler(tripUoWs),
		status:    queries.NewGetTripStatusQueryHandler(uowFactory),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "trip_ledger")
	return l
}

// Create puts a new trip in the slot, replacing whatever it held.
func (l *Local) Create(ctx context.Context, tripID string) (err error) {
	defer l.track(ctx, OperationCreate, tripID, trip.Departed, time.Now(), &err)

	cmd, err := commands.NewCreateTripCommand(tripID)
	if err != nil {
		return err
	}
	return l.create.Handle(ctx, cmd)
}

// AdvanceToMidpoint moves the active trip from Departed to InTransit.
func (l *Local) AdvanceToMidpoint(ctx context.Context, tripID string) (err error) {
	defer l.track(ctx, OperationAdvanceToMidpoint, tripID, trip.InTransit, time.Now(), &err)

	cmd, err := commands.NewAdvanceToMidpointCommand(tripID)
	if err != nil {
		return err
	}
	return l.midpoint.Handle(ctx, cmd)
}

// AdvanceToDelivered moves the active trip from InTransit to Delivered.
func (l *Local) AdvanceToDelivered(ctx context.Context, tripID string) (err error) {
	defer l.track(ctx, OperationAdvanceToDelivered, tripID, trip.Delivered, time.Now(), &err)

	cmd, err := commands.NewAdvanceToDeliveredCommand(tripID)
	if err != nil {
		return err
	}
	return l.delivered.Handle(ctx, cmd)
}

// GetStatus reads the status of the active trip without taking the writer lock.
func (l *Local) GetStatus(ctx context.Context, tripID string) (status trip.Status, err error) {
	started := time.Now()
	defer func() {
		l.track(ctx, OperationGetStatus, tripID, status, started, &err)
	}()

	query, err := queries.NewGetTripStatusQuery(tripID)
	if err != nil {
		return trip.Unknown, err
	}
	resp, err := l.status.Handle(ctx, query)
	if err != nil {
		return trip.Unknown, err
	}
	return resp.Status, nil
}

// track logs and observes a finished operation. reached is the status the
// slot holds when the operation succeeded.
func (l *Local) track(
	ctx context.Context,
	operation, tripID string,
	reached trip.Status,
	started time.Time,
	errp *error,
) {
	err := *errp
	elapsed := time.Since(started)

	if l.observer != nil {
		l.observer.ObserveOperation(operation, err, elapsed)
		if err == nil {
			l.observer.SetStatus(reached)
		}
	}

	attrs := []any{"operation", operation, "trip_id", tripID, "elapsed", elapsed}
	switch kind := trip.KindOf(err); kind {
	case "":
		l.logger.DebugContext(ctx, "ledger operation succeeded", append(attrs, "status", reached.String())...)
	case trip.KindInternal:
		l.logger.ErrorContext(ctx, "ledger operation failed", append(attrs, "error", err)...)
	default:
		l.logger.InfoContext(ctx, "ledger operation rejected", append(attrs, "kind", string(kind), "error", err)...)
	}
}

// tripUoWFactory narrows a ports.UnitOfWorkFactory to what the command
// handlers need.
type tripUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f tripUoWFactory) Create() commands.TripUoW {
	return f.factory.Create()
}
