// Package offer provides the domain model for time-boxed job proposals and
// their arbitration. It implements the Offer value-rich entity and the
// Arbitration engine that resolves each offer to exactly one outcome.
//
// The package includes:
//   - Offer: an ephemeral proposal with pickup/dropoff waypoints, payout amount,
//     and a fixed acceptance window
//   - Waypoint: an address plus geographic position value object
//   - Arbitration: single-resolution semantics over at most one pending offer
//
// Key business rules:
//   - At most one offer is pending at any time; a newer offer silently
//     supersedes an unresolved one (last-write-wins)
//   - The first of {accept, reject, expiry} to execute wins; later attempts
//     observe ErrOfferExpired or become no-ops
//   - An expiry scheduled for a superseded offer never affects its replacement
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package offer
