package queries_test

import (
	"testing"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTripStatusQuery(t *testing.T) {
	query, err := queries.NewGetTripStatusQuery("T1")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "T1", query.TripID().String())

	_, err = queries.NewGetTripStatusQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero queries.GetTripStatusQuery
	assert.Equal(t, queries.ErrGetTripStatusQueryIsNotConstructed, zero.Validate())
}
