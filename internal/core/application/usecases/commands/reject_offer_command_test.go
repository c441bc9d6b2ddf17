package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectOfferCommand(t *testing.T) {
	offerID := kernel.NewUUID()

	cmd, err := commands.NewRejectOfferCommand(offerID, "TOO_FAR")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.OfferID().IsEqual(offerID))
	assert.Equal(t, "TOO_FAR", cmd.Reason())
}

func TestNewRejectOfferCommand_InvalidParts(t *testing.T) {
	_, err := commands.NewRejectOfferCommand(kernel.UUID{}, "TOO_FAR")
	require.Error(t, err)

	_, err = commands.NewRejectOfferCommand(kernel.NewUUID(), "")
	require.Error(t, err)
}

func TestRejectOfferCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.RejectOfferCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrRejectOfferCommandIsNotConstructed)
}
