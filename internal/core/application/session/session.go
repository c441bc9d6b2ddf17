package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"courier/internal/core/domain/model/courier"
	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"
	"courier/internal/core/domain/model/order"
	"courier/internal/core/domain/services"
)

var (
	// ErrOffline is returned when an offer arrives while the courier is
	// offline. This suppresses offer presentation entirely; it is not a
	// retryable condition.
	ErrOffline = errors.New("courier is offline")

	// ErrCourierBusy is returned when an offer arrives while an active order
	// exists. A courier is never assigned two simultaneous jobs.
	ErrCourierBusy = errors.New("courier already has an active order")

	// ErrNoActiveOrder is returned when a lifecycle operation is requested
	// without an active order.
	ErrNoActiveOrder = errors.New("no active order")

	// ErrOperationInProgress is returned when a transition is requested while
	// a reconciliation is already in flight for the active order. Requests
	// are rejected, never queued, so confirmations cannot arrive out of order.
	ErrOperationInProgress = errors.New("another operation is in progress")
)

// historyCacheSize bounds the in-memory most-recent-first history cache.
// The full history lives in persistence and is served by the query side.
const historyCacheSize = 50

// Clock abstracts wall-clock time for deterministic tests.
type Clock func() time.Time

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock, used by tests to control offer deadlines.
func WithClock(clock Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// Session is the aggregate state store of the decision core: the single
// source of truth for the pending offer, the active order, the earnings
// ledger, the courier state, and the recent history cache.
//
// All mutations are serialized behind one mutex — the single mutation path.
// Expiry timers and network continuations re-enter state through the same
// mutex, so no two mutations ever race:
//
//   - offer accept vs. timeout is decided by whichever acquires the lock
//     first; the loser observes an already-resolved offer and becomes a no-op
//   - a new offer supersedes an unresolved one, and the superseded offer's
//     timer is invalidated by its stale generation
//   - at most one reconciliation is in flight per active order; a concurrent
//     transition request fails with ErrOperationInProgress
//
// The session is created at session start and torn down at logout; nothing in
// it besides the courier state, ledger, and history is ever persisted.
type Session struct {
	mu sync.Mutex

	courier    *courier.State
	arb        *offer.Arbitration
	active     *order.ActiveOrder
	ledger     *earnings.Ledger
	history    []order.HistoryEntry
	settlement services.Settlement

	inFlight bool
	timer    *time.Timer

	clock  Clock
	logger *slog.Logger
}

// NewSession creates the session store around restored durable state.
// history must be ordered most-recent-first.
func NewSession(
	state *courier.State,
	ledger *earnings.Ledger,
	history []order.HistoryEntry,
	logger *slog.Logger,
	opts ...Option,
) *Session {
	s := &Session{
		courier:    state,
		arb:        offer.NewArbitration(),
		ledger:     ledger,
		history:    append([]order.HistoryEntry(nil), history...),
		settlement: services.NewSettlement(),
		clock:      time.Now,
		logger:     logger.With("component", "session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkpoint is a consistent copy of the durable part of the session state,
// taken under the lock, for the persistence layer.
type Checkpoint struct {
	State  *courier.State
	Ledger *earnings.Ledger
}

func (s *Session) checkpoint() Checkpoint {
	return Checkpoint{
		State:  s.courier.Clone(),
		Ledger: s.ledger.Clone(),
	}
}

// PresentOffer surfaces a new offer to the courier.
//
// The offer is refused with ErrOffline when the courier is offline and with
// ErrCourierBusy when an active order exists — both are defensive invariants;
// the dispatcher should not have sent the offer. Otherwise the offer replaces
// any unresolved one (last-write-wins) and a cancellable expiry timer is
// scheduled for the remainder of the offer window.
func (s *Session) PresentOffer(o *offer.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.courier.IsOnline() {
		return ErrOffline
	}
	if s.active != nil {
		return ErrCourierBusy
	}

	generation, superseded, err := s.arb.Present(o)
	if err != nil {
		return err
	}

	if superseded != nil {
		s.logger.Info("offer superseded by newer offer",
			"superseded_offer_id", superseded.ID().String(),
			"offer_id", o.ID().String())
	}

	s.stopTimerLocked()
	remaining := o.ExpiresAt().Sub(s.clock())
	if remaining < 0 {
		remaining = 0
	}
	s.timer = time.AfterFunc(remaining, func() {
		s.expireOffer(generation)
	})

	return nil
}

// expireOffer is the timer callback for generation's offer. It re-enters the
// single mutation path and resolves the offer as timed out, unless a user
// action won the race or a newer offer superseded this one.
func (s *Session) expireOffer(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired, ok := s.arb.Expire(generation)
	if !ok {
		return
	}

	s.timer = nil
	s.logger.Info("offer expired without resolution", "offer_id", expired.ID().String())
}

// AcceptOffer resolves the pending offer in the courier's favor and returns
// it. Fails with offer.ErrOfferExpired when the offer is gone: already
// resolved, superseded, or past its deadline.
func (s *Session) AcceptOffer(offerID kernel.UUID) (*offer.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted, err := s.arb.Accept(offerID, s.clock())
	if err != nil {
		return nil, err
	}

	s.stopTimerLocked()
	return accepted, nil
}

// RejectOffer resolves the pending offer negatively, recording the reason.
func (s *Session) RejectOffer(offerID kernel.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.arb.Reject(offerID, reason); err != nil {
		return err
	}

	s.stopTimerLocked()
	return nil
}

// stopTimerLocked cancels the pending expiry timer, if any.
// Callers must hold the mutex.
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// BeginClaim installs the optimistic provisional order after a successful
// accept, marking the claim reconciliation as in flight.
func (s *Session) BeginClaim(provisional *order.ActiveOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := provisional.Validate(); err != nil {
		return err
	}
	if s.active != nil {
		return ErrCourierBusy
	}
	if s.inFlight {
		return ErrOperationInProgress
	}

	s.active = provisional
	s.inFlight = true
	return nil
}

// ConfirmClaim replaces the provisional order with the canonical server
// payload and closes the claim reconciliation.
func (s *Session) ConfirmClaim(canonical *order.ActiveOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := canonical.Validate(); err != nil {
		return err
	}

	s.active = canonical
	s.inFlight = false
	return nil
}

// FailClaim rolls back a failed claim: the provisional order is discarded and
// the courier becomes eligible for new offers. The lost offer is not
// resurrected — the backend claim is exclusive and non-retryable.
func (s *Session) FailClaim() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	s.inFlight = false
}

// BeginTransition optimistically advances the active order to target and
// marks the reconciliation as in flight.
//
// Returns the pre-operation snapshot for rollback and whether the state
// actually advanced: re-confirming the current arrival stage reports
// advanced=false with no reconciliation to run.
//
// Fails with ErrNoActiveOrder, ErrOperationInProgress, or the domain errors
// order.ErrInvalidTransition / order.ErrInvalidOTP; in every failure case the
// store is untouched.
func (s *Session) BeginTransition(target order.Status, code string) (*order.ActiveOrder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, false, ErrNoActiveOrder
	}
	if s.inFlight {
		return nil, false, ErrOperationInProgress
	}

	snapshot := s.active.Clone()
	advanced, err := s.active.Advance(target, code)
	if err != nil {
		return nil, false, err
	}
	if !advanced {
		return nil, false, nil
	}

	s.inFlight = true
	return snapshot, true, nil
}

// ConfirmTransition replaces the optimistic state with the canonical server
// payload and closes the reconciliation. A nil canonical keeps the optimistic
// state as-is.
func (s *Session) ConfirmTransition(canonical *order.ActiveOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if canonical != nil {
		if err := canonical.Validate(); err != nil {
			return err
		}
		s.active = canonical
	}
	s.inFlight = false
	return nil
}

// RollbackTransition reverts the active order to the pre-operation snapshot
// after a failed network confirmation. No partial state is retained.
func (s *Session) RollbackTransition(snapshot *order.ActiveOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = snapshot
	s.inFlight = false
}

// SettleDelivered finishes a confirmed delivery: the canonical payload is
// settled into the ledger, sealed into history, the delivery count increments
// by exactly one, and the active-order slot clears, making the courier
// eligible for new offers.
//
// Returns the sealed history entry and a checkpoint for persistence.
func (s *Session) SettleDelivered(canonical *order.ActiveOrder) (order.HistoryEntry, Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := canonical.Validate(); err != nil {
		return order.HistoryEntry{}, Checkpoint{}, err
	}

	entry, err := s.settlement.Settle(s.ledger, canonical, s.clock())
	if err != nil {
		return order.HistoryEntry{}, Checkpoint{}, err
	}

	s.courier.RecordDelivery()
	s.history = append([]order.HistoryEntry{entry}, s.history...)
	if len(s.history) > historyCacheSize {
		s.history = s.history[:historyCacheSize]
	}
	s.active = nil
	s.inFlight = false

	return entry, s.checkpoint(), nil
}

// SetAvailability flips the online flag. Going offline auto-rejects any
// pending offer; the rejected offer is returned for logging.
func (s *Session) SetAvailability(online bool) (Checkpoint, *offer.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rejected *offer.Offer
	if online {
		s.courier.GoOnline()
	} else {
		if pending := s.arb.Pending(); pending != nil {
			rejected, _ = s.arb.Reject(pending.ID(), "OFFLINE")
			s.stopTimerLocked()
		}
		s.courier.GoOffline()
	}

	return s.checkpoint(), rejected, nil
}

// UpdateLocation records the courier's last-known position.
func (s *Session) UpdateLocation(point kernel.GeoPoint) (Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.courier.MoveTo(point); err != nil {
		return Checkpoint{}, err
	}
	return s.checkpoint(), nil
}

// RolloverLedger zeroes the today bucket at the day boundary.
func (s *Session) RolloverLedger() Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.RolloverDay()
	return s.checkpoint()
}

// Close tears the session down at logout, cancelling any pending timer.
// An unresolved offer or in-flight reconciliation is abandoned, not resumed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
}

// PendingOffer returns the currently pending offer, or nil when idle.
// Offers are immutable, so the live instance is safe to share.
func (s *Session) PendingOffer() *offer.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.arb.Pending()
}

// ActiveOrder returns a snapshot of the active order, or nil when the courier
// has no job.
func (s *Session) ActiveOrder() *order.ActiveOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active.Clone()
}

// RecentHistory returns a copy of the in-memory history cache,
// most-recent-first.
func (s *Session) RecentHistory() []order.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]order.HistoryEntry(nil), s.history...)
}

// LedgerTotals returns the today bucket and pending balance.
func (s *Session) LedgerTotals() (today, pending kernel.Money) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Today(), s.ledger.Pending()
}

// IsOnline reports the courier's availability.
func (s *Session) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.courier.IsOnline()
}

// LastLocation returns the courier's last-known position, or nil.
func (s *Session) LastLocation() *kernel.GeoPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loc := s.courier.Location(); loc != nil {
		point := *loc
		return &point
	}
	return nil
}

// CourierID returns the courier's identifier.
func (s *Session) CourierID() kernel.UUID {
	return s.courier.ID()
}

// AcceptanceRate returns the share of resolved offers that were accepted.
func (s *Session) AcceptanceRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.arb.AcceptanceRate()
}

// CompletedDeliveries returns the running delivery count.
func (s *Session) CompletedDeliveries() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.courier.CompletedDeliveries()
}
