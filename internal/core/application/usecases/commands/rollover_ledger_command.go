package commands

import (
	"errors"

	"courier/internal/pkg/guard"
)

var ErrRolloverLedgerCommandIsNotConstructed = errors.New(
	"RolloverLedgerCommand must be created via NewRolloverLedgerCommand constructor",
)

// RolloverLedgerCommand zeroes the today earnings bucket at the day boundary.
// The pending balance carries over untouched.
type RolloverLedgerCommand struct {
	guard guard.ConstructorGuard
}

// NewRolloverLedgerCommand creates a ledger rollover command.
func NewRolloverLedgerCommand() (RolloverLedgerCommand, error) {
	return RolloverLedgerCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *RolloverLedgerCommand) Validate() error {
	return c.guard.Validate(ErrRolloverLedgerCommandIsNotConstructed)
}
