package order

import (
	"errors"
	"fmt"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var (
	// ErrActiveOrderIsNotConstructed is returned when an ActiveOrder instance was
	// not created through one of the factory methods.
	ErrActiveOrderIsNotConstructed = errors.New(
		"ActiveOrder must be created via NewActiveOrder, NewProvisionalOrder, or RestoreActiveOrder")

	// ErrContactIsNotConstructed is returned when using an improperly initialized Contact.
	ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")

	// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrPayoutIsNotConstructed is returned when using an improperly initialized Payout.
	ErrPayoutIsNotConstructed = errors.New("Payout must be created via NewPayout constructor")
)

// Contact is an immutable value object describing the counterpart at one end
// of the delivery: who to meet, how to reach them, and where.
type Contact struct { //nolint:recvcheck //using for validation
	name    string
	phone   string
	address string
	point   kernel.GeoPoint
	guard   guard.ConstructorGuard
}

// NewContact creates a Contact. The address and position are required;
// name and phone may be empty (a provisional order knows only the addresses
// from the offer payload).
func NewContact(name, phone, address string, point kernel.GeoPoint) (Contact, error) {
	if address == "" {
		return Contact{}, errs.NewValueIsRequiredError("address")
	}
	if err := point.Validate(); err != nil {
		return Contact{}, err
	}

	return Contact{
		name:    name,
		phone:   phone,
		address: address,
		point:   point,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Name returns the counterpart's display name.
func (c Contact) Name() string { return c.name }

// Phone returns the counterpart's phone number.
func (c Contact) Phone() string { return c.phone }

// Address returns the human-readable address.
func (c Contact) Address() string { return c.address }

// Point returns the geographic position.
func (c Contact) Point() kernel.GeoPoint { return c.point }

// Validate ensures the Contact was created via NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// Item is an immutable value object describing one line of the order's
// ordered items list.
type Item struct { //nolint:recvcheck //using for validation
	name     string
	quantity int
	guard    guard.ConstructorGuard
}

// NewItem creates an Item with a non-empty name and positive quantity.
func NewItem(name string, quantity int) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		name:     name,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Name returns the item name.
func (i Item) Name() string { return i.name }

// Quantity returns the item quantity.
func (i Item) Quantity() int { return i.quantity }

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Payout is an immutable value object holding the monetary breakdown of an
// order. Every component is non-negative by the Money invariant.
type Payout struct { //nolint:recvcheck //using for validation
	baseFee       kernel.Money
	distanceBonus kernel.Money
	peakBonus     kernel.Money
	tip           kernel.Money
	guard         guard.ConstructorGuard
}

// NewPayout creates a Payout from its four components.
// Each component must be a constructed Money value.
func NewPayout(baseFee, distanceBonus, peakBonus, tip kernel.Money) (Payout, error) {
	if err := errors.Join(
		baseFee.Validate(),
		distanceBonus.Validate(),
		peakBonus.Validate(),
		tip.Validate(),
	); err != nil {
		return Payout{}, err
	}

	return Payout{
		baseFee:       baseFee,
		distanceBonus: distanceBonus,
		peakBonus:     peakBonus,
		tip:           tip,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// BaseFee returns the base delivery fee.
func (p Payout) BaseFee() kernel.Money { return p.baseFee }

// DistanceBonus returns the distance bonus component.
func (p Payout) DistanceBonus() kernel.Money { return p.distanceBonus }

// PeakBonus returns the peak-hour bonus component.
func (p Payout) PeakBonus() kernel.Money { return p.peakBonus }

// Tip returns the tip component.
func (p Payout) Tip() kernel.Money { return p.tip }

// Total returns the settled earnings for the order:
// base fee + distance bonus + peak bonus + tip.
func (p Payout) Total() kernel.Money {
	return p.baseFee.Add(p.distanceBonus).Add(p.peakBonus).Add(p.tip)
}

// Validate ensures the Payout was created via NewPayout.
func (p Payout) Validate() error {
	return p.guard.Validate(ErrPayoutIsNotConstructed)
}

// ActiveOrder represents the courier's current job once an offer is accepted.
// It is the aggregate root that drives the checkpointed pickup/dropoff
// lifecycle, validating OTP gates and rejecting illegal transitions.
//
// ActiveOrder follows these invariants:
//   - Must have a valid unique identifier and constructed contacts
//   - Status only ever moves forward through the fixed sequence
//   - OTP-gated transitions require an exact code match
//   - Can only be created through its factory methods
//
// The struct uses private fields to ensure encapsulation; state is mutated
// only through Advance.
type ActiveOrder struct {
	id         kernel.UUID
	pickup     Contact
	dropoff    Contact
	items      []Item
	payout     Payout
	pickupOTP  OTP
	dropoffOTP OTP
	status     Status

	isConstructed bool
}

// NewActiveOrder creates an ActiveOrder in Accepted status from a canonical
// server payload, including both one-time codes.
func NewActiveOrder(
	id kernel.UUID,
	pickup Contact,
	dropoff Contact,
	items []Item,
	payout Payout,
	pickupOTP OTP,
	dropoffOTP OTP,
) (*ActiveOrder, error) {
	return RestoreActiveOrder(id, pickup, dropoff, items, payout, pickupOTP, dropoffOTP, Accepted)
}

// RestoreActiveOrder reconstructs an ActiveOrder at an arbitrary lifecycle
// position. Used when a canonical server payload replaces the optimistic
// local state mid-flight.
func RestoreActiveOrder(
	id kernel.UUID,
	pickup Contact,
	dropoff Contact,
	items []Item,
	payout Payout,
	pickupOTP OTP,
	dropoffOTP OTP,
	status Status,
) (*ActiveOrder, error) {
	if err := errors.Join(
		id.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		payout.Validate(),
		pickupOTP.Validate(),
		dropoffOTP.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &ActiveOrder{
		id:            id,
		pickup:        pickup,
		dropoff:       dropoff,
		items:         append([]Item(nil), items...),
		payout:        payout,
		pickupOTP:     pickupOTP,
		dropoffOTP:    dropoffOTP,
		status:        status,
		isConstructed: true,
	}, nil
}

// NewProvisionalOrder creates the optimistic local ActiveOrder applied
// immediately after an offer is accepted, before the claim call confirms.
// It carries only what the offer payload knew: addresses and the proposed
// amount as the base fee. The zero-value OTPs never match, so a provisional
// order cannot pass any checkpoint before the canonical payload arrives.
func NewProvisionalOrder(
	id kernel.UUID,
	pickup Contact,
	dropoff Contact,
	amount kernel.Money,
) (*ActiveOrder, error) {
	if err := errors.Join(
		id.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		amount.Validate(),
	); err != nil {
		return nil, err
	}

	payout, err := NewPayout(amount, kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney())
	if err != nil {
		return nil, err
	}

	return &ActiveOrder{
		id:            id,
		pickup:        pickup,
		dropoff:       dropoff,
		payout:        payout,
		status:        Accepted,
		isConstructed: true,
	}, nil
}

// Validate ensures the ActiveOrder was properly constructed.
func (o *ActiveOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrActiveOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *ActiveOrder) ID() kernel.UUID {
	return o.id
}

// Pickup returns the pickup counterpart contact.
func (o *ActiveOrder) Pickup() Contact {
	return o.pickup
}

// Dropoff returns the dropoff counterpart contact.
func (o *ActiveOrder) Dropoff() Contact {
	return o.dropoff
}

// Items returns a copy of the ordered items list.
func (o *ActiveOrder) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Payout returns the monetary breakdown of the order.
func (o *ActiveOrder) Payout() Payout {
	return o.payout
}

// Status returns the current lifecycle status.
func (o *ActiveOrder) Status() Status {
	return o.status
}

// IsEqual compares two orders by their unique identifiers.
func (o *ActiveOrder) IsEqual(other *ActiveOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Advance moves the order to target if target is the direct successor of the
// current status and, for OTP-gated stages, the supplied code matches.
//
// Re-confirming the current arrival stage (e.g. requesting ArrivedAtPickup
// while already there) is allowed any number of times and reports
// advanced=false without changing state.
//
// On any error the order is left untouched:
//   - ErrInvalidTransition for non-adjacent targets
//   - ErrInvalidOTP for a non-matching code at a gated stage
func (o *ActiveOrder) Advance(target Status, code string) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if target == o.status && o.status.IsArrival() {
		return false, nil
	}

	if err := o.status.ValidateAdvanceTo(target); err != nil {
		return false, err
	}

	if target.RequiresOTP() {
		gate := o.pickupOTP
		if target == Delivered {
			gate = o.dropoffOTP
		}
		if !gate.Matches(code) {
			return false, fmt.Errorf("%w: entering %s", ErrInvalidOTP, target)
		}
	}

	o.status = target
	return true, nil
}

// Clone returns a deep copy of the order, used as the pre-operation snapshot
// for reconciliation rollback.
func (o *ActiveOrder) Clone() *ActiveOrder {
	if o == nil {
		return nil
	}
	clone := *o
	clone.items = append([]Item(nil), o.items...)
	return &clone
}
