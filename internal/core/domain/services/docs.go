// Package services contains domain services that coordinate multiple
// aggregates. Settlement computes a completed order's earnings and records
// them in the ledger and history.
package services
