package tripledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"logistics/internal/adapters/out/memory"
	"logistics/internal/core/application/tripledger"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu         sync.Mutex
	operations []string
	outcomes   []error
	statuses   []trip.Status
}

func (o *recordingObserver) ObserveOperation(operation string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.operations = append(o.operations, operation)
	o.outcomes = append(o.outcomes, err)
}

func (o *recordingObserver) SetStatus(status trip.Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

func newLedger(opts ...tripledger.Option) *tripledger.Local {
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), kernel.NewUUID())
	return tripledger.NewLocal(factory, opts...)
}

func TestLocal_FullLifecycle(t *testing.T) {
	ctx := t.Context()
	ledger := newLedger()

	require.NoError(t, ledger.Create(ctx, "T1"))
	status, err := ledger.GetStatus(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, trip.Departed, status)

	require.NoError(t, ledger.AdvanceToMidpoint(ctx, "T1"))
	status, err = ledger.GetStatus(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, trip.InTransit, status)

	require.NoError(t, ledger.AdvanceToDelivered(ctx, "T1"))
	status, err = ledger.GetStatus(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, trip.Delivered, status)
}

func TestLocal_Scenario(t *testing.T) {
	ctx := t.Context()
	ledger := newLedger()

	_, err := ledger.GetStatus(ctx, "T1")
	require.ErrorIs(t, err, trip.ErrNoActiveTrip)

	require.NoError(t, ledger.Create(ctx, "T1"))

	err = ledger.AdvanceToDelivered(ctx, "T1")
	var transition *trip.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, trip.Departed, transition.From)

	require.NoError(t, ledger.AdvanceToMidpoint(ctx, "T1"))

	err = ledger.AdvanceToMidpoint(ctx, "T2")
	require.ErrorIs(t, err, trip.ErrIdentifierMismatch)

	err = ledger.AdvanceToMidpoint(ctx, "T1")
	require.ErrorIs(t, err, trip.ErrInvalidTransition)

	require.NoError(t, ledger.AdvanceToDelivered(ctx, "T1"))

	err = ledger.AdvanceToDelivered(ctx, "T1")
	require.ErrorIs(t, err, trip.ErrInvalidTransition)

	status, err := ledger.GetStatus(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, trip.Delivered, status)

	_, err = ledger.GetStatus(ctx, "T2")
	require.ErrorIs(t, err, trip.ErrIdentifierMismatch)
}

func TestLocal_CreateOverwrites(t *testing.T) {
	ctx := t.Context()
	ledger := newLedger()

	require.NoError(t, ledger.Create(ctx, "T1"))
	require.NoError(t, ledger.AdvanceToMidpoint(ctx, "T1"))
	require.NoError(t, ledger.Create(ctx, "T2"))

	_, err := ledger.GetStatus(ctx, "T1")
	require.ErrorIs(t, err, trip.ErrIdentifierMismatch)

	status, err := ledger.GetStatus(ctx, "T2")
	require.NoError(t, err)
	assert.Equal(t, trip.Departed, status)

	require.NoError(t, ledger.Create(ctx, "T2"))
	status, err = ledger.GetStatus(ctx, "T2")
	require.NoError(t, err)
	assert.Equal(t, trip.Departed, status)
}

func TestLocal_EmptyLedger(t *testing.T) {
	ctx := t.Context()
	ledger := newLedger()

	require.ErrorIs(t, ledger.AdvanceToMidpoint(ctx, "T1"), trip.ErrNoActiveTrip)
	require.ErrorIs(t, ledger.AdvanceToDelivered(ctx, "T1"), trip.ErrNoActiveTrip)
	_, err := ledger.GetStatus(ctx, "T1")
	require.ErrorIs(t, err, trip.ErrNoActiveTrip)
}

func TestLocal_MismatchTakesPrecedenceOverTransition(t *testing.T) {
	ctx := t.Context()
	ledger := newLedger()

	require.NoError(t, ledger.Create(ctx, "T1"))

	// Departed -> Delivered is illegal too, but the identifier is checked first.
	err := ledger.AdvanceToDelivered(ctx, "T2")
	require.ErrorIs(t, err, trip.ErrIdentifierMismatch)
	assert.NotContains(t, err.Error(), "T1")
}

func TestLocal_EmptyTripID(t *testing.T) {
	ctx := t.Context()
	ledger := newLedger()

	err := ledger.Create(ctx, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, trip.KindInvalidRequest, trip.KindOf(err))

	_, err = ledger.GetStatus(ctx, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestLocal_ConcurrentAdvancesSucceedOnce(t *testing.T) {
	ctx := t.Context()
	ledger := newLedger()
	require.NoError(t, ledger.Create(ctx, "T1"))

	const workers = 10
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.AdvanceToMidpoint(ctx, "T1")
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, trip.ErrInvalidTransition):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
}

func TestLocal_ReportsToObserver(t *testing.T) {
	ctx := t.Context()
	observer := &recordingObserver{}
	ledger := newLedger(tripledger.WithObserver(observer))

	require.NoError(t, ledger.Create(ctx, "T1"))
	require.NoError(t, ledger.AdvanceToMidpoint(ctx, "T1"))
	require.Error(t, ledger.AdvanceToDelivered(ctx, "T2"))
	_, err := ledger.GetStatus(ctx, "T1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		tripledger.OperationCreate,
		tripledger.OperationAdvanceToMidpoint,
		tripledger.OperationAdvanceToDelivered,
		tripledger.OperationGetStatus,
	}, observer.operations)
	require.ErrorIs(t, observer.outcomes[2], trip.ErrIdentifierMismatch)
	assert.Equal(t, []trip.Status{trip.Departed, trip.InTransit, trip.InTransit}, observer.statuses)
}

func TestLocal_CanceledContext(t *testing.T) {
	ledger := newLedger()
	require.NoError(t, ledger.Create(t.Context(), "T1"))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := ledger.AdvanceToMidpoint(ctx, "T1")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, trip.KindInternal, trip.KindOf(err))
}
