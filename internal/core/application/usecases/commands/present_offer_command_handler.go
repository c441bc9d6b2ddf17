package commands

import (
	"context"
	"errors"
	"time"

	"courier/internal/core/application/session"
	"courier/internal/core/domain/model/offer"
)

// PresentOfferCommandHandler surfaces an incoming offer through the session
// store, arming its expiry timer.
//
// Offers that arrive while the courier is offline or busy are dropped, not
// failed: the dispatcher's view of the courier is eventually consistent and a
// misdirected offer is an expected condition on the push channel.
type PresentOfferCommandHandler struct {
	session *session.Session
}

// NewPresentOfferCommandHandler creates a handler for offer presentation.
func NewPresentOfferCommandHandler(s *session.Session) PresentOfferCommandHandler {
	return PresentOfferCommandHandler{
		session: s,
	}
}

// Handle processes the offer presentation command.
func (h *PresentOfferCommandHandler) Handle(_ context.Context, cmd PresentOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	createdAt := cmd.CreatedAt()
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	o, err := offer.NewOffer(cmd.OfferID(), cmd.Pickup(), cmd.Dropoff(),
		cmd.Amount(), cmd.Window(), createdAt)
	if err != nil {
		return err
	}

	if err = h.session.PresentOffer(o); err != nil {
		if errors.Is(err, session.ErrOffline) || errors.Is(err, session.ErrCourierBusy) {
			return nil
		}
		return err
	}

	return nil
}
