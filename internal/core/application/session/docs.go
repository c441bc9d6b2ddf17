// Package session implements the aggregate state store of the decision core.
//
// The Session owns the pending offer, the active order, the earnings ledger,
// the courier state, and the recent history cache. Every mutation goes
// through one mutex — the Go rendition of the source system's single-threaded
// event loop — so the only concurrency hazards left are logical races across
// events separated in time, and each of those is resolved explicitly:
// single-resolution arbitration for accept vs. timeout, generation-guarded
// expiry timers for superseded offers, and a single in-flight reconciliation
// per active order.
package session
