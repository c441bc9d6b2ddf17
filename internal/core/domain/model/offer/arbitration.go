package offer

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
)

// TimeoutReason is recorded when an offer resolves by deadline expiry
// instead of an explicit courier action.
const TimeoutReason = "TIMEOUT"

// ErrOfferExpired is returned when accepting or rejecting an offer that has
// already been resolved, superseded, or whose window has elapsed.
// A backend claim is exclusive: once the offer is gone it cannot be revived.
var ErrOfferExpired = errors.New("offer has expired or was already resolved")

// Arbitration resolves each pending offer to exactly one outcome.
//
// It holds at most one pending offer. Resolution is single-writer: the first
// of {accept, reject, expiry} to execute clears the pending slot, and any
// later attempt observes ErrOfferExpired or becomes a no-op. A generation
// counter increments on every presentation so that an expiry scheduled for a
// superseded offer can never resolve its replacement.
//
// Arbitration is not safe for concurrent use on its own; callers must funnel
// all mutations through a single path (see the session package).
type Arbitration struct {
	pending    *Offer
	generation uint64

	accepted int
	rejected int
	timedOut int
	reasons  map[string]int
}

// NewArbitration creates an empty arbitration engine with no pending offer.
func NewArbitration() *Arbitration {
	return &Arbitration{
		reasons: make(map[string]int),
	}
}

// Present replaces any unresolved offer with the given one (last-write-wins)
// and returns the generation that identifies this presentation. The superseded
// offer, if any, is returned for logging.
func (a *Arbitration) Present(o *Offer) (uint64, *Offer, error) {
	if err := o.Validate(); err != nil {
		return 0, nil, err
	}

	superseded := a.pending
	a.pending = o
	a.generation++
	return a.generation, superseded, nil
}

// Pending returns the currently pending offer, or nil when idle.
func (a *Arbitration) Pending() *Offer {
	return a.pending
}

// Accept resolves the pending offer in the courier's favor and returns it.
//
// The call fails with ErrOfferExpired when there is no pending offer, when
// offerID refers to a stale (superseded or already resolved) offer, or when
// now is past the offer deadline. In the deadline case the offer is resolved
// as timed out, exactly as if the expiry had fired first.
func (a *Arbitration) Accept(offerID kernel.UUID, now time.Time) (*Offer, error) {
	if a.pending == nil || !a.pending.ID().IsEqual(offerID) {
		return nil, ErrOfferExpired
	}

	if now.After(a.pending.ExpiresAt()) {
		a.resolveTimeout()
		return nil, ErrOfferExpired
	}

	accepted := a.pending
	a.pending = nil
	a.accepted++
	return accepted, nil
}

// Reject resolves the pending offer negatively, recording the reason for
// acceptance-rate computation. Fails with ErrOfferExpired under the same
// conditions as Accept.
func (a *Arbitration) Reject(offerID kernel.UUID, reason string) (*Offer, error) {
	if a.pending == nil || !a.pending.ID().IsEqual(offerID) {
		return nil, ErrOfferExpired
	}

	rejected := a.pending
	a.pending = nil
	a.rejected++
	a.reasons[reason]++
	return rejected, nil
}

// Expire resolves the pending offer as timed out, but only when generation
// still identifies the current presentation and no other resolution won the
// race. Returns the expired offer and true when the expiry took effect.
func (a *Arbitration) Expire(generation uint64) (*Offer, bool) {
	if a.pending == nil || generation != a.generation {
		return nil, false
	}

	expired := a.pending
	a.resolveTimeout()
	return expired, true
}

func (a *Arbitration) resolveTimeout() {
	a.pending = nil
	a.timedOut++
	a.reasons[TimeoutReason]++
}

// AcceptedCount returns how many offers were accepted.
func (a *Arbitration) AcceptedCount() int {
	return a.accepted
}

// RejectedCount returns how many offers were explicitly rejected.
func (a *Arbitration) RejectedCount() int {
	return a.rejected
}

// TimedOutCount returns how many offers expired without a courier action.
func (a *Arbitration) TimedOutCount() int {
	return a.timedOut
}

// RejectionReasons returns a copy of the recorded rejection reason counts,
// including timeouts under TimeoutReason.
func (a *Arbitration) RejectionReasons() map[string]int {
	reasons := make(map[string]int, len(a.reasons))
	for reason, count := range a.reasons {
		reasons[reason] = count
	}
	return reasons
}

// AcceptanceRate returns the share of resolved offers that were accepted.
// Returns 0 when no offer has been resolved yet.
func (a *Arbitration) AcceptanceRate() float64 {
	resolved := a.accepted + a.rejected + a.timedOut
	if resolved == 0 {
		return 0
	}
	return float64(a.accepted) / float64(resolved)
}
