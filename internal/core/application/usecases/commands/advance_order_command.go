package commands

import (
	"errors"
	"fmt"

	"courier/internal/core/domain/model/order"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand moves the active order to the next lifecycle checkpoint.
// OTP-gated targets (PickedUp, Delivered) carry the code entered by the
// courier; for other targets the code must be empty.
type AdvanceOrderCommand struct {
	target order.Status
	code   string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance the active order to
// target. Accepted is the entry status and can never be a target.
func NewAdvanceOrderCommand(target order.Status, code string) (AdvanceOrderCommand, error) {
	if err := target.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}
	if target == order.Accepted {
		return AdvanceOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("target",
			fmt.Errorf("%s is the entry status", target))
	}
	if target.RequiresOTP() && code == "" {
		return AdvanceOrderCommand{}, errs.NewValueIsRequiredError("code")
	}
	if !target.RequiresOTP() && code != "" {
		return AdvanceOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("code",
			fmt.Errorf("%s does not take a confirmation code", target))
	}

	return AdvanceOrderCommand{
		target: target,
		code:   code,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Target returns the requested lifecycle status.
func (c *AdvanceOrderCommand) Target() order.Status { return c.target }

// Code returns the confirmation code, empty for ungated targets.
func (c *AdvanceOrderCommand) Code() string { return c.code }

// Validate ensures the command was created through the constructor.
func (c *AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}
