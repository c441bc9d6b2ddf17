package commands_test

import (
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPresentOfferCommand(t *testing.T) {
	offerID := kernel.NewUUID()
	createdAt := time.Now()

	cmd, err := commands.NewPresentOfferCommand(offerID,
		testWaypoint(t, "1 Pickup St"), testWaypoint(t, "2 Dropoff St"),
		testMoney(t, 7.50), 45*time.Second, createdAt)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.True(t, cmd.OfferID().IsEqual(offerID))
	assert.Equal(t, "1 Pickup St", cmd.Pickup().Address())
	assert.Equal(t, "2 Dropoff St", cmd.Dropoff().Address())
	assert.True(t, cmd.Amount().IsEqual(testMoney(t, 7.50)))
	assert.Equal(t, 45*time.Second, cmd.Window())
	assert.Equal(t, createdAt, cmd.CreatedAt())
}

func TestNewPresentOfferCommand_InvalidParts(t *testing.T) {
	valid := testWaypoint(t, "1 Pickup St")

	_, err := commands.NewPresentOfferCommand(kernel.UUID{}, valid, valid,
		testMoney(t, 7.50), 0, time.Time{})
	require.Error(t, err)

	_, err = commands.NewPresentOfferCommand(kernel.NewUUID(), offer.Waypoint{}, valid,
		testMoney(t, 7.50), 0, time.Time{})
	require.Error(t, err)

	_, err = commands.NewPresentOfferCommand(kernel.NewUUID(), valid, offer.Waypoint{},
		testMoney(t, 7.50), 0, time.Time{})
	require.Error(t, err)

	_, err = commands.NewPresentOfferCommand(kernel.NewUUID(), valid, valid,
		kernel.Money{}, 0, time.Time{})
	require.Error(t, err)
}

func TestPresentOfferCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.PresentOfferCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrPresentOfferCommandIsNotConstructed)
}
