package kernel_test

import (
	"fmt"
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTripID(t *testing.T) {
	t.Run("should keep the value verbatim", func(t *testing.T) {
		id, err := kernel.NewTripID("TRIP-001")

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "TRIP-001", id.String())
	})

	for _, blank := range []string{"", " ", "\t\n"} {
		t.Run(fmt.Sprintf("should reject blank value %q", blank), func(t *testing.T) {
			_, err := kernel.NewTripID(blank)

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Contains(t, err.Error(), "trip id")
		})
	}

	t.Run("should not trim surrounding whitespace", func(t *testing.T) {
		padded := kernel.MustNewTripID(" T1")
		assert.False(t, padded.IsEqual(kernel.MustNewTripID("T1")))
	})
}

func TestTripID_Validate(t *testing.T) {
	var zero kernel.TripID
	assert.Equal(t, kernel.ErrTripIDIsNotConstructed, zero.Validate())
}

func TestMustNewTripID(t *testing.T) {
	assert.Panics(t, func() { kernel.MustNewTripID("") })
	assert.NotPanics(t, func() { kernel.MustNewTripID("T1") })
}
