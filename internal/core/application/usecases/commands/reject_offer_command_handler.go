package commands

import (
	"context"

	"courier/internal/core/application/session"
)

// RejectOfferCommandHandler resolves the pending offer negatively through the
// session store.
type RejectOfferCommandHandler struct {
	session *session.Session
}

// NewRejectOfferCommandHandler creates a handler for offer rejection.
func NewRejectOfferCommandHandler(s *session.Session) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{
		session: s,
	}
}

// Handle processes the offer rejection command. Fails with
// offer.ErrOfferExpired when the offer is already resolved or superseded.
func (h *RejectOfferCommandHandler) Handle(_ context.Context, cmd RejectOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.session.RejectOffer(cmd.OfferID(), cmd.Reason())
}
