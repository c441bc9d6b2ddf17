package order

import (
	"errors"
	"fmt"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when using an improperly
// initialized HistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry")

// HistoryEntry is an immutable snapshot of a completed order plus its
// completion timestamp. Entries are append-only and ordered most-recent-first.
type HistoryEntry struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	pickupAddress  string
	dropoffAddress string
	total          kernel.Money
	completedAt    time.Time
	guard          guard.ConstructorGuard
}

// NewHistoryEntry seals a delivered order into an immutable history entry.
// The order must be in Delivered status.
func NewHistoryEntry(o *ActiveOrder, completedAt time.Time) (HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if !o.Status().IsTerminal() {
		return HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("%s order cannot be sealed into history", o.Status()))
	}
	if completedAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("completedAt")
	}

	return HistoryEntry{
		orderID:        o.ID(),
		pickupAddress:  o.Pickup().Address(),
		dropoffAddress: o.Dropoff().Address(),
		total:          o.Payout().Total(),
		completedAt:    completedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreHistoryEntry reconstructs a history entry from persistence.
func RestoreHistoryEntry(
	orderID kernel.UUID,
	pickupAddress string,
	dropoffAddress string,
	total kernel.Money,
	completedAt time.Time,
) (HistoryEntry, error) {
	if err := errors.Join(orderID.Validate(), total.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if completedAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("completedAt")
	}

	return HistoryEntry{
		orderID:        orderID,
		pickupAddress:  pickupAddress,
		dropoffAddress: dropoffAddress,
		total:          total,
		completedAt:    completedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the completed order.
func (e HistoryEntry) OrderID() kernel.UUID { return e.orderID }

// PickupAddress returns the pickup address of the completed order.
func (e HistoryEntry) PickupAddress() string { return e.pickupAddress }

// DropoffAddress returns the dropoff address of the completed order.
func (e HistoryEntry) DropoffAddress() string { return e.dropoffAddress }

// Total returns the settled earnings of the completed order.
func (e HistoryEntry) Total() kernel.Money { return e.total }

// CompletedAt returns when the order reached Delivered.
func (e HistoryEntry) CompletedAt() time.Time { return e.completedAt }

// Validate ensures the entry was created via a constructor.
func (e HistoryEntry) Validate() error {
	return e.guard.Validate(ErrHistoryEntryIsNotConstructed)
}
