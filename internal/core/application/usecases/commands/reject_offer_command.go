package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand resolves the pending offer negatively with a reason code.
// Rejection is purely local: the dispatcher learns about it only by the
// courier never claiming the job.
type RejectOfferCommand struct {
	offerID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRejectOfferCommand creates a command to reject the identified offer.
// The reason is a free-form code recorded for the rejection-reasons tally;
// it must be non-empty.
func NewRejectOfferCommand(offerID kernel.UUID, reason string) (RejectOfferCommand, error) {
	if err := offerID.Validate(); err != nil {
		return RejectOfferCommand{}, err
	}
	if reason == "" {
		return RejectOfferCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return RejectOfferCommand{
		offerID: offerID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OfferID returns the identifier of the offer being rejected.
func (c *RejectOfferCommand) OfferID() kernel.UUID { return c.offerID }

// Reason returns the rejection reason code.
func (c *RejectOfferCommand) Reason() string { return c.reason }

// Validate ensures the command was created through the constructor.
func (c *RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}
