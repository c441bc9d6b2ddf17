package commands

import (
	"context"

	"courier/internal/core/application/session"
	"courier/internal/core/domain/model/offer"
	"courier/internal/core/domain/model/order"
	"courier/internal/core/ports"
)

// AcceptOfferCommandHandler handles the accept path of offer arbitration:
// resolve the offer locally, apply the optimistic provisional order, claim the
// job on the backend, and reconcile.
//
// The local resolution decides the accept-vs-timeout race before any network
// call is made; a timed-out or superseded offer fails fast with
// offer.ErrOfferExpired. A failed claim rolls the provisional order back and
// the job is lost — the backend claim is exclusive and non-retryable.
//
// Example:
//
//	handler := NewAcceptOfferCommandHandler(sess, jobService)
//	cmd, _ := NewAcceptOfferCommand(offerID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("offer acceptance failed: %w", err)
//	}
//	// The canonical active order, including both OTPs, is now installed
type AcceptOfferCommandHandler struct {
	session    *session.Session
	jobService ports.JobService
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(s *session.Session, jobService ports.JobService) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		session:    s,
		jobService: jobService,
	}
}

// Handle processes the offer acceptance command.
func (h *AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	accepted, err := h.session.AcceptOffer(cmd.OfferID())
	if err != nil {
		return err
	}

	provisional, err := provisionalFromOffer(accepted)
	if err != nil {
		return err
	}

	if err = h.session.BeginClaim(provisional); err != nil {
		return err
	}

	canonical, err := h.jobService.Claim(ctx, accepted.ID())
	if err != nil {
		h.session.FailClaim()
		return err
	}

	return h.session.ConfirmClaim(canonical)
}

// provisionalFromOffer projects the accepted offer's payload into the
// optimistic local order: addresses only, the proposed amount as base fee,
// and zero-value OTPs that cannot pass any checkpoint.
func provisionalFromOffer(accepted *offer.Offer) (*order.ActiveOrder, error) {
	pickup, err := order.NewContact("", "", accepted.Pickup().Address(), accepted.Pickup().Point())
	if err != nil {
		return nil, err
	}

	dropoff, err := order.NewContact("", "", accepted.Dropoff().Address(), accepted.Dropoff().Point())
	if err != nil {
		return nil, err
	}

	return order.NewProvisionalOrder(accepted.ID(), pickup, dropoff, accepted.Amount())
}
