package order

import (
	"errors"
	"fmt"

	"courier/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status change does not
// move to the direct successor of the current status. The engine never
// coerces or skips stages.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Status represents the lifecycle state of an active order.
// It implements a strictly linear state machine: each status is entered only
// from its direct predecessor, and Delivered is terminal.
//
// State transitions:
//
//	Accepted ──> ArrivedAtPickup ──> PickedUp ──> ArrivedAtDropoff ──> Delivered
//	                  │ (OTP gate)                      │ (OTP gate)
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Accepted is the initial status of a claimed order.
	Accepted

	// ArrivedAtPickup indicates the courier has self-reported arrival
	// at the pickup point.
	ArrivedAtPickup

	// PickedUp indicates the pickup OTP was verified and the goods
	// are with the courier.
	PickedUp

	// ArrivedAtDropoff indicates the courier has self-reported arrival
	// at the dropoff point.
	ArrivedAtDropoff

	// Delivered indicates the dropoff OTP was verified.
	// This is a final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Accepted:         "Accepted",
		ArrivedAtPickup:  "ArrivedAtPickup",
		PickedUp:         "PickedUp",
		ArrivedAtDropoff: "ArrivedAtDropoff",
		Delivered:        "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Accepted:         "Accepted",
		ArrivedAtPickup:  "ArrivedAtPickup",
		PickedUp:         "PickedUp",
		ArrivedAtDropoff: "ArrivedAtDropoff",
		Delivered:        "Delivered",
	}
}

// StatusFromString parses a status from its string representation.
// Returns an error for unknown or invalid status names.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the direct successor of the status.
// Returns an error for Delivered (terminal) and invalid statuses.
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s == Delivered {
		return Unknown, fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, s)
	}
	return s + 1, nil
}

// ValidateAdvanceTo checks that target is the direct successor of the status.
//
// Returns ErrInvalidTransition (wrapped with the attempted transition) when
// target skips stages, moves backwards, or repeats the current status.
// Re-confirmation of arrival stages is handled one level up by the
// ActiveOrder aggregate, not here.
func (s Status) ValidateAdvanceTo(target Status) error {
	next, err := s.Next()
	if err != nil {
		return err
	}
	if target != next {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// RequiresOTP reports whether entering the status is gated by a one-time code:
// PickedUp requires the pickup OTP and Delivered requires the dropoff OTP.
func (s Status) RequiresOTP() bool {
	return s == PickedUp || s == Delivered
}

// IsArrival reports whether the status is a self-reported arrival stage.
// Arrival stages may be re-confirmed any number of times without advancing.
func (s Status) IsArrival() bool {
	return s == ArrivedAtPickup || s == ArrivedAtDropoff
}

// IsTerminal reports whether the status ends the order lifecycle.
func (s Status) IsTerminal() bool {
	return s == Delivered
}
