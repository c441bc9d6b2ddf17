package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sess := onlineSession(t)
	o := testOffer(t)
	require.NoError(t, sess.PresentOffer(o))

	h := commands.NewRejectOfferCommandHandler(sess)
	cmd, err := commands.NewRejectOfferCommand(o.ID(), "TOO_FAR")
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Nil(t, sess.PendingOffer())
}

func TestRejectOfferCommandHandler_Handle_OfferGone(t *testing.T) {
	ctx := t.Context()
	sess := onlineSession(t)

	h := commands.NewRejectOfferCommandHandler(sess)
	cmd, err := commands.NewRejectOfferCommand(kernel.NewUUID(), "TOO_FAR")
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, offer.ErrOfferExpired)
}

func TestRejectOfferCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewRejectOfferCommandHandler(onlineSession(t))

	cmd := commands.RejectOfferCommand{} // not constructed properly
	require.Error(t, h.Handle(ctx, cmd))
}
