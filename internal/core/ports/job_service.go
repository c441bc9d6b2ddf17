package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/order"
)

// JobService is the outbound contract to the job REST service. Every call
// returns either the canonical order payload or an error wrapping
// errs.ErrNetworkFailure.
//
// The core does not retry these calls; a failed call triggers reconciliation
// rollback and the retry policy is an external concern. A failed Claim is
// final: the backend claim is exclusive and cannot be retried once lost.
type JobService interface {
	// Claim claims the offered job for the courier and returns the canonical
	// ActiveOrder, including both one-time codes.
	Claim(ctx context.Context, offerID kernel.UUID) (*order.ActiveOrder, error)

	// UpdateStatus reports a non-terminal status transition. The last-known
	// location, when available, is attached as context. Returns the canonical
	// order payload, which may correct locally computed fields.
	UpdateStatus(ctx context.Context, orderID kernel.UUID, status order.Status, at *kernel.GeoPoint) (*order.ActiveOrder, error)

	// Complete reports the terminal Delivered transition with the verified
	// dropoff code and returns the canonical order payload.
	Complete(ctx context.Context, orderID kernel.UUID, code string) (*order.ActiveOrder, error)
}
