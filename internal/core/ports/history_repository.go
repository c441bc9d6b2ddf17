package ports

import (
	"context"

	"courier/internal/core/domain/model/order"
)

// HistoryRepository defines the persistence contract for completed orders.
// History is append-only; entries are never mutated after insertion.
type HistoryRepository interface {
	// Add appends a sealed history entry.
	Add(ctx context.Context, entry order.HistoryEntry) error

	// GetRecent retrieves up to limit entries, most-recent-first.
	GetRecent(ctx context.Context, limit int) ([]order.HistoryEntry, error)
}
