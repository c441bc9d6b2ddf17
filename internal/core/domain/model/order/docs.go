// Package order provides domain entities and business logic for the courier's
// active job. It implements the ActiveOrder aggregate root with its
// checkpointed lifecycle and OTP-gated state transitions.
//
// The package includes:
//   - ActiveOrder: The aggregate root managing the current job's identity,
//     contacts, items, payout breakdown, and lifecycle position
//   - Status: A strictly linear state machine over the delivery checkpoints
//   - OTP: A fixed-length numeric one-time code gating pickup and dropoff
//   - HistoryEntry: An immutable snapshot of a completed order
//
// Key business rules:
//   - Status follows the fixed workflow Accepted -> ArrivedAtPickup ->
//     PickedUp -> ArrivedAtDropoff -> Delivered, one step at a time
//   - PickedUp and Delivered are entered only with an exact OTP match
//   - Arrival stages may be re-confirmed without advancing state
//   - Delivered is terminal; the order is then sealed into a HistoryEntry
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
