package offer

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// DefaultWindow is the offer window applied when the dispatcher does not
// specify one.
const DefaultWindow = 30 * time.Second

var (
	// ErrOfferIsNotConstructed is returned when an Offer instance was not created
	// through the NewOffer factory method.
	ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")

	// ErrWaypointIsNotConstructed is returned when using an improperly initialized Waypoint.
	ErrWaypointIsNotConstructed = errors.New("Waypoint must be created via NewWaypoint constructor")
)

// Waypoint is an immutable value object describing one end of a proposed job:
// a human-readable address plus its geographic position.
type Waypoint struct { //nolint:recvcheck //using for validation
	address string
	point   kernel.GeoPoint
	guard   guard.ConstructorGuard
}

// NewWaypoint creates a Waypoint with the given address and position.
// The address must be non-empty and the point must be a constructed GeoPoint.
func NewWaypoint(address string, point kernel.GeoPoint) (Waypoint, error) {
	if address == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("address")
	}
	if err := point.Validate(); err != nil {
		return Waypoint{}, err
	}

	return Waypoint{
		address: address,
		point:   point,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Address returns the human-readable address of the waypoint.
func (w Waypoint) Address() string {
	return w.address
}

// Point returns the geographic position of the waypoint.
func (w Waypoint) Point() kernel.GeoPoint {
	return w.point
}

// Validate ensures the Waypoint was created via NewWaypoint.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Offer represents a time-boxed job proposal delivered to the courier.
// It is ephemeral: at most one Offer exists at any time and it is destroyed on
// accept, reject, expiry, or supersession by a newer offer.
//
// Offer follows these invariants:
//   - Must have a valid unique identifier
//   - Must have constructed pickup and dropoff waypoints
//   - Amount must be a constructed, non-negative Money value
//   - The offer window is fixed at creation and strictly positive
//   - Can only be created through the NewOffer constructor
type Offer struct {
	id        kernel.UUID
	pickup    Waypoint
	dropoff   Waypoint
	amount    kernel.Money
	window    time.Duration
	createdAt time.Time

	isConstructed bool
}

// NewOffer creates a new Offer with validation.
//
// A non-positive window falls back to DefaultWindow. createdAt stamps the start
// of the offer window and must not be zero.
func NewOffer(
	id kernel.UUID,
	pickup Waypoint,
	dropoff Waypoint,
	amount kernel.Money,
	window time.Duration,
	createdAt time.Time,
) (*Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := pickup.Validate(); err != nil {
		return nil, err
	}
	if err := dropoff.Validate(); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &Offer{
		id:            id,
		pickup:        pickup,
		dropoff:       dropoff,
		amount:        amount,
		window:        window,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Offer instance was properly constructed through NewOffer.
func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

// ID returns the offer's unique identifier.
func (o *Offer) ID() kernel.UUID {
	return o.id
}

// Pickup returns the pickup waypoint of the proposed job.
func (o *Offer) Pickup() Waypoint {
	return o.pickup
}

// Dropoff returns the dropoff waypoint of the proposed job.
func (o *Offer) Dropoff() Waypoint {
	return o.dropoff
}

// Amount returns the proposed payout for the job.
func (o *Offer) Amount() kernel.Money {
	return o.amount
}

// Window returns the fixed offer window.
func (o *Offer) Window() time.Duration {
	return o.window
}

// CreatedAt returns when the offer window started.
func (o *Offer) CreatedAt() time.Time {
	return o.createdAt
}

// ExpiresAt returns the deadline after which the offer can no longer be accepted.
func (o *Offer) ExpiresAt() time.Time {
	return o.createdAt.Add(o.window)
}

// IsEqual compares two offers by their unique identifiers.
func (o *Offer) IsEqual(other *Offer) bool {
	return other != nil && o.id.IsEqual(other.id)
}
