package commands

import (
	"errors"

	"courier/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand flips the courier's availability for offers.
type SetAvailabilityCommand struct {
	online bool

	guard guard.ConstructorGuard
}

// NewSetAvailabilityCommand creates a command to set the online flag.
func NewSetAvailabilityCommand(online bool) (SetAvailabilityCommand, error) {
	return SetAvailabilityCommand{
		online: online,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Online returns the requested availability.
func (c *SetAvailabilityCommand) Online() bool { return c.online }

// Validate ensures the command was created through the constructor.
func (c *SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}
