package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
)

// LocationSource supplies periodic position updates. The core uses them only
// as input context: the last-known position is attached to status-update
// calls and kept in the courier state.
type LocationSource interface {
	// Current returns the courier's current position.
	Current(ctx context.Context) (kernel.GeoPoint, error)
}
