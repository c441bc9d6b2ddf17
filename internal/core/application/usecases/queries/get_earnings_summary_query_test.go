package queries_test

import (
	"testing"

	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetEarningsSummaryQuery(t *testing.T) {
	courierID := kernel.NewUUID()

	query, err := queries.NewGetEarningsSummaryQuery(courierID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.CourierID().IsEqual(courierID))
}

func TestNewGetEarningsSummaryQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetEarningsSummaryQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetEarningsSummaryQuery_Validate_ZeroValue(t *testing.T) {
	query := queries.GetEarningsSummaryQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetEarningsSummaryQueryIsNotConstructed)
}
