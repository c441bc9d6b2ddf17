package services

import (
	"fmt"
	"time"

	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/order"
	"courier/internal/pkg/errs"
)

// Settlement computes and records the earnings of a completed order.
//
// Settlement is a pure function of the sealed order's monetary breakdown:
// total = base fee + distance bonus + peak bonus + tip. The total is credited
// to the ledger's today and pending buckets and the order is sealed into an
// immutable history entry.
//
// Settlement runs only after server confirmation of delivery; a rolled-back
// delivery attempt must not have touched the ledger.
type Settlement struct{}

// NewSettlement creates the settlement domain service.
func NewSettlement() Settlement {
	return Settlement{}
}

// Settle seals the delivered order into a history entry and credits its total
// to the ledger. The order must be in Delivered status.
//
// Returns the history entry on success; on any error the ledger is untouched.
func (Settlement) Settle(
	ledger *earnings.Ledger,
	o *order.ActiveOrder,
	completedAt time.Time,
) (order.HistoryEntry, error) {
	if err := ledger.Validate(); err != nil {
		return order.HistoryEntry{}, err
	}
	if err := o.Validate(); err != nil {
		return order.HistoryEntry{}, err
	}
	if !o.Status().IsTerminal() {
		return order.HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("cannot settle order in %s status", o.Status()))
	}

	entry, err := order.NewHistoryEntry(o, completedAt)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	if err := ledger.Settle(entry.Total()); err != nil {
		return order.HistoryEntry{}, err
	}

	return entry, nil
}
