package courier

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
)

// ErrStateIsNotConstructed is returned when a State instance was not created
// through NewState or RestoreState.
var ErrStateIsNotConstructed = errors.New("State must be created via NewState or RestoreState")

// State represents the courier's availability and profile: the online/offline
// flag, last-known location, authentication token, and running delivery count.
//
// Offers are only delivered while the courier is online; the decision core
// additionally refuses to surface an offer when availability is false, as a
// defensive invariant. State survives process restarts (unlike offers and
// in-flight reconciliation, which are lost by design).
type State struct {
	id        kernel.UUID
	online    bool
	location  *kernel.GeoPoint
	authToken string

	completedDeliveries int

	isConstructed bool
}

// NewState creates the initial state for a courier: offline, with no known
// location and no completed deliveries.
func NewState(id kernel.UUID) (*State, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &State{
		id:            id,
		isConstructed: true,
	}, nil
}

// RestoreState reconstructs courier state from persistence.
// location may be nil when no position was ever reported.
func RestoreState(
	id kernel.UUID,
	online bool,
	location *kernel.GeoPoint,
	authToken string,
	completedDeliveries int,
) (*State, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}
	if completedDeliveries < 0 {
		return nil, errors.New("completed deliveries cannot be negative")
	}

	return &State{
		id:                  id,
		online:              online,
		location:            location,
		authToken:           authToken,
		completedDeliveries: completedDeliveries,
		isConstructed:       true,
	}, nil
}

// Validate ensures the State was properly constructed.
func (s *State) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStateIsNotConstructed
	}
	return nil
}

// ID returns the courier's unique identifier.
func (s *State) ID() kernel.UUID {
	return s.id
}

// IsOnline reports whether the courier currently accepts offers.
func (s *State) IsOnline() bool {
	return s.online
}

// GoOnline marks the courier as available for offers.
func (s *State) GoOnline() {
	s.online = true
}

// GoOffline marks the courier as unavailable for offers.
func (s *State) GoOffline() {
	s.online = false
}

// MoveTo updates the last-known location.
func (s *State) MoveTo(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	s.location = &point
	return nil
}

// Location returns the last-known location, or nil when none was reported.
func (s *State) Location() *kernel.GeoPoint {
	return s.location
}

// SetAuthToken stores the authentication token used for job service calls.
func (s *State) SetAuthToken(token string) {
	s.authToken = token
}

// AuthToken returns the stored authentication token.
func (s *State) AuthToken() string {
	return s.authToken
}

// RecordDelivery increments the running delivery count by exactly one.
// Called once per order, when the delivery is confirmed and sealed.
func (s *State) RecordDelivery() {
	s.completedDeliveries++
}

// CompletedDeliveries returns the running delivery count.
func (s *State) CompletedDeliveries() int {
	return s.completedDeliveries
}

// Clone returns a copy of the state for persistence snapshots.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	clone := *s
	if s.location != nil {
		loc := *s.location
		clone.location = &loc
	}
	return &clone
}
