package commands

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"
	"courier/internal/pkg/guard"
)

var ErrPresentOfferCommandIsNotConstructed = errors.New(
	"PresentOfferCommand must be created via NewPresentOfferCommand constructor",
)

// PresentOfferCommand surfaces a new job offer to the courier. It is the only
// inbound entry point from the offer push channel: the channel adapter
// normalizes each order:new event into this command.
type PresentOfferCommand struct {
	offerID   kernel.UUID
	pickup    offer.Waypoint
	dropoff   offer.Waypoint
	amount    kernel.Money
	window    time.Duration
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewPresentOfferCommand creates a command carrying the normalized offer
// payload. A non-positive window falls back to the offer default; a zero
// createdAt is stamped during offer construction by the handler.
func NewPresentOfferCommand(
	offerID kernel.UUID,
	pickup offer.Waypoint,
	dropoff offer.Waypoint,
	amount kernel.Money,
	window time.Duration,
	createdAt time.Time,
) (PresentOfferCommand, error) {
	if err := offerID.Validate(); err != nil {
		return PresentOfferCommand{}, err
	}
	if err := pickup.Validate(); err != nil {
		return PresentOfferCommand{}, err
	}
	if err := dropoff.Validate(); err != nil {
		return PresentOfferCommand{}, err
	}
	if err := amount.Validate(); err != nil {
		return PresentOfferCommand{}, err
	}

	return PresentOfferCommand{
		offerID:   offerID,
		pickup:    pickup,
		dropoff:   dropoff,
		amount:    amount,
		window:    window,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OfferID returns the proposed job's identifier.
func (c *PresentOfferCommand) OfferID() kernel.UUID { return c.offerID }

// Pickup returns the pickup waypoint.
func (c *PresentOfferCommand) Pickup() offer.Waypoint { return c.pickup }

// Dropoff returns the dropoff waypoint.
func (c *PresentOfferCommand) Dropoff() offer.Waypoint { return c.dropoff }

// Amount returns the proposed payout.
func (c *PresentOfferCommand) Amount() kernel.Money { return c.amount }

// Window returns the offer window.
func (c *PresentOfferCommand) Window() time.Duration { return c.window }

// CreatedAt returns when the offer window started.
func (c *PresentOfferCommand) CreatedAt() time.Time { return c.createdAt }

// Validate ensures the command was created through the constructor.
func (c *PresentOfferCommand) Validate() error {
	return c.guard.Validate(ErrPresentOfferCommandIsNotConstructed)
}
