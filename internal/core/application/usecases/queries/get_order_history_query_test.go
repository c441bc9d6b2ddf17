package queries_test

import (
	"testing"

	"courier/internal/core/application/usecases/queries"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderHistoryQuery(t *testing.T) {
	query, err := queries.NewGetOrderHistoryQuery(10)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 10, query.Limit())
}

func TestNewGetOrderHistoryQuery_DefaultLimit(t *testing.T) {
	query, err := queries.NewGetOrderHistoryQuery(0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultHistoryLimit, query.Limit())
}

func TestNewGetOrderHistoryQuery_LimitOutOfRange(t *testing.T) {
	_, err := queries.NewGetOrderHistoryQuery(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetOrderHistoryQuery(queries.MaxHistoryLimit + 1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetOrderHistoryQuery(queries.MaxHistoryLimit)
	require.NoError(t, err)
}

func TestGetOrderHistoryQuery_Validate_ZeroValue(t *testing.T) {
	query := queries.GetOrderHistoryQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
}
