package earnings_test

import (
	"testing"

	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

func TestNewLedger(t *testing.T) {
	ledger := earnings.NewLedger()
	require.NoError(t, ledger.Validate())
	assert.True(t, ledger.Today().IsZero())
	assert.True(t, ledger.Pending().IsZero())
}

func TestRestoreLedger(t *testing.T) {
	ledger, err := earnings.RestoreLedger(money(t, 12.50), money(t, 230.00))
	require.NoError(t, err)
	assert.True(t, ledger.Today().IsEqual(money(t, 12.50)))
	assert.True(t, ledger.Pending().IsEqual(money(t, 230.00)))

	_, err = earnings.RestoreLedger(kernel.Money{}, money(t, 1))
	require.Error(t, err)
}

func TestLedger_Settle(t *testing.T) {
	ledger := earnings.NewLedger()

	require.NoError(t, ledger.Settle(money(t, 9.25)))
	require.NoError(t, ledger.Settle(money(t, 5.75)))

	assert.True(t, ledger.Today().IsEqual(money(t, 15.00)))
	assert.True(t, ledger.Pending().IsEqual(money(t, 15.00)))
}

func TestLedger_Settle_InvalidMoney(t *testing.T) {
	ledger := earnings.NewLedger()
	require.Error(t, ledger.Settle(kernel.Money{}))
	assert.True(t, ledger.Today().IsZero())
}

func TestLedger_RolloverDay(t *testing.T) {
	ledger, err := earnings.RestoreLedger(money(t, 42.00), money(t, 230.00))
	require.NoError(t, err)

	ledger.RolloverDay()

	assert.True(t, ledger.Today().IsZero())
	// The pending balance carries over.
	assert.True(t, ledger.Pending().IsEqual(money(t, 230.00)))
}

func TestLedger_Validate_ZeroValue(t *testing.T) {
	var ledger *earnings.Ledger
	require.ErrorIs(t, ledger.Validate(), earnings.ErrLedgerIsNotConstructed)
	require.ErrorIs(t, (&earnings.Ledger{}).Validate(), earnings.ErrLedgerIsNotConstructed)
}

func TestLedger_Clone(t *testing.T) {
	ledger := earnings.NewLedger()
	require.NoError(t, ledger.Settle(money(t, 10.00)))

	clone := ledger.Clone()
	require.NoError(t, ledger.Settle(money(t, 5.00)))

	assert.True(t, clone.Today().IsEqual(money(t, 10.00)))
	assert.True(t, ledger.Today().IsEqual(money(t, 15.00)))
}
