package trip_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrip(t *testing.T) {
	t.Run("should start in Departed", func(t *testing.T) {
		id := kernel.MustNewTripID("T1")

		tr, err := trip.NewTrip(id)

		require.NoError(t, err)
		require.NoError(t, tr.Validate())
		assert.True(t, tr.ID().IsEqual(id))
		assert.Equal(t, trip.Departed, tr.Status())
	})

	t.Run("should reject an unconstructed id", func(t *testing.T) {
		tr, err := trip.NewTrip(kernel.TripID{})

		require.ErrorIs(t, err, kernel.ErrTripIDIsNotConstructed)
		assert.Nil(t, tr)
	})
}

func TestRestoreTrip(t *testing.T) {
	t.Run("should restore any valid status", func(t *testing.T) {
		tr, err := trip.RestoreTrip(kernel.MustNewTripID("T1"), trip.Delivered)

		require.NoError(t, err)
		assert.Equal(t, trip.Delivered, tr.Status())
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := trip.RestoreTrip(kernel.TripID{}, trip.Unknown)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TripID must be created")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})
}

func TestTrip_Validate(t *testing.T) {
	var nilTrip *trip.Trip
	assert.Equal(t, trip.ErrTripIsNotConstructed, nilTrip.Validate())

	var zero trip.Trip
	assert.Equal(t, trip.ErrTripIsNotConstructed, zero.Validate())
}

func TestTrip_Lifecycle(t *testing.T) {
	id := kernel.MustNewTripID("T1")
	tr, err := trip.NewTrip(id)
	require.NoError(t, err)

	require.NoError(t, tr.AdvanceToMidpoint(id))
	status, err := tr.StatusFor(id)
	require.NoError(t, err)
	assert.Equal(t, trip.InTransit, status)

	err = tr.AdvanceToMidpoint(id)
	require.ErrorIs(t, err, trip.ErrInvalidTransition)
	assert.Equal(t, trip.InTransit, tr.Status())

	require.NoError(t, tr.AdvanceToDelivered(id))
	assert.Equal(t, trip.Delivered, tr.Status())

	err = tr.AdvanceToDelivered(id)
	require.ErrorIs(t, err, trip.ErrInvalidTransition)
	assert.Equal(t, trip.Delivered, tr.Status())
}

func TestTrip_SkipToDelivered(t *testing.T) {
	id := kernel.MustNewTripID("T1")
	tr, _ := trip.NewTrip(id)

	err := tr.AdvanceToDelivered(id)

	require.ErrorIs(t, err, trip.ErrInvalidTransition)
	assert.Equal(t, trip.Departed, tr.Status())
}

func TestTrip_IdentifierMismatch(t *testing.T) {
	stored := kernel.MustNewTripID("T1")
	other := kernel.MustNewTripID("T2")

	operations := map[string]func(tr *trip.Trip) error{
		"midpoint":  func(tr *trip.Trip) error { return tr.AdvanceToMidpoint(other) },
		"delivered": func(tr *trip.Trip) error { return tr.AdvanceToDelivered(other) },
		"status": func(tr *trip.Trip) error {
			_, err := tr.StatusFor(other)
			return err
		},
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			tr, _ := trip.RestoreTrip(stored, trip.InTransit)

			err := op(tr)

			var mismatch *trip.IdentifierMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, "T1", mismatch.Expected)
			assert.Equal(t, "T2", mismatch.Actual)
			assert.NotContains(t, err.Error(), "T1")
			assert.Equal(t, trip.InTransit, tr.Status())
			assert.True(t, tr.ID().IsEqual(stored))
		})
	}
}

func TestTrip_MismatchReportedBeforeTransition(t *testing.T) {
	tr, _ := trip.RestoreTrip(kernel.MustNewTripID("T1"), trip.Delivered)

	err := tr.AdvanceToDelivered(kernel.MustNewTripID("T2"))

	require.ErrorIs(t, err, trip.ErrIdentifierMismatch)
	require.NotErrorIs(t, err, trip.ErrInvalidTransition)
}
