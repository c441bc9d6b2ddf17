package earnings

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
)

// ErrLedgerIsNotConstructed is returned when a Ledger instance was not created
// through NewLedger or RestoreLedger.
var ErrLedgerIsNotConstructed = errors.New("Ledger must be created via NewLedger or RestoreLedger")

// Ledger holds the courier's rolling earnings aggregates: the "today" bucket
// and the pending (withdrawable) balance.
//
// The ledger is mutated only by settlement and is monotonically non-decreasing;
// payout withdrawal happens outside this core. Settlement runs exactly once per
// completed order, only after server confirmation of delivery — never on the
// optimistic apply.
type Ledger struct {
	today   kernel.Money
	pending kernel.Money

	isConstructed bool
}

// NewLedger creates an empty ledger with zero buckets.
func NewLedger() *Ledger {
	return &Ledger{
		today:         kernel.ZeroMoney(),
		pending:       kernel.ZeroMoney(),
		isConstructed: true,
	}
}

// RestoreLedger reconstructs a ledger from persisted bucket values.
func RestoreLedger(today, pending kernel.Money) (*Ledger, error) {
	if err := errors.Join(today.Validate(), pending.Validate()); err != nil {
		return nil, err
	}

	return &Ledger{
		today:         today,
		pending:       pending,
		isConstructed: true,
	}, nil
}

// Validate ensures the Ledger was properly constructed.
func (l *Ledger) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLedgerIsNotConstructed
	}
	return nil
}

// Settle credits a completed order's total to both the today bucket and the
// pending balance.
func (l *Ledger) Settle(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}

	l.today = l.today.Add(total)
	l.pending = l.pending.Add(total)
	return nil
}

// RolloverDay zeroes the today bucket at the day boundary.
// The pending balance is unaffected.
func (l *Ledger) RolloverDay() {
	l.today = kernel.ZeroMoney()
}

// Today returns the today bucket total.
func (l *Ledger) Today() kernel.Money {
	return l.today
}

// Pending returns the pending (withdrawable) balance.
func (l *Ledger) Pending() kernel.Money {
	return l.pending
}

// Clone returns a copy of the ledger for persistence snapshots.
func (l *Ledger) Clone() *Ledger {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}
