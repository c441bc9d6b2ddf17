package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand resolves the pending offer in the courier's favor and
// claims the job on the backend.
type AcceptOfferCommand struct {
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command to accept the identified offer.
func NewAcceptOfferCommand(offerID kernel.UUID) (AcceptOfferCommand, error) {
	if err := offerID.Validate(); err != nil {
		return AcceptOfferCommand{}, err
	}

	return AcceptOfferCommand{
		offerID: offerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OfferID returns the identifier of the offer being accepted.
func (c *AcceptOfferCommand) OfferID() kernel.UUID { return c.offerID }

// Validate ensures the command was created through the constructor.
func (c *AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}
