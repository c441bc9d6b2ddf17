// Package ports defines the contracts between the decision core and its
// collaborators: persistence, the job REST service, and the location source.
// These interfaces establish dependency inversion and testability boundaries.
package ports

import (
	"context"

	"courier/internal/core/domain/model/courier"
	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"
)

// CourierStateRepository defines the persistence contract for the courier's
// durable state: availability, auth token, last-known location, delivery
// count, and the earnings ledger buckets.
type CourierStateRepository interface {
	// Save upserts the courier state together with its ledger buckets.
	Save(ctx context.Context, state *courier.State, ledger *earnings.Ledger) error

	// Get retrieves the courier state and ledger by courier identifier.
	// Returns errs.ErrObjectNotFound when the courier was never persisted.
	Get(ctx context.Context, id kernel.UUID) (*courier.State, *earnings.Ledger, error)
}
