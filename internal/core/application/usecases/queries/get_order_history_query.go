// Package queries contains read-only operations against the persisted state.
// Implements the query side of the CQRS architecture: handlers read the
// database directly with raw SQL, bypassing the domain aggregates.
package queries

import (
	"errors"
	"fmt"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

const (
	// DefaultHistoryLimit is applied when the caller does not specify a page size.
	DefaultHistoryLimit = 20
	// MaxHistoryLimit bounds a single history page.
	MaxHistoryLimit = 100
)

// GetOrderHistoryQuery retrieves the courier's completed deliveries,
// most recent first.
//
// Example:
//
//	query, _ := NewGetOrderHistoryQuery(20)
//	handler := NewGetOrderHistoryQueryHandler(db)
//
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get history: %w", err)
//	}
type GetOrderHistoryQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a history query. A zero limit falls back to
// DefaultHistoryLimit; negative or oversized limits are rejected.
func NewGetOrderHistoryQuery(limit int) (GetOrderHistoryQuery, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 0 || limit > MaxHistoryLimit {
		return GetOrderHistoryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxHistoryLimit)
	}

	return GetOrderHistoryQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Limit returns the page size.
func (q GetOrderHistoryQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// GetOrderHistoryQueryResponse is one completed delivery in the read model.
type GetOrderHistoryQueryResponse struct {
	OrderID        kernel.UUID
	PickupAddress  string
	DropoffAddress string
	Total          kernel.Money
	CompletedAt    time.Time
}

func (r GetOrderHistoryQueryResponse) String() string {
	return fmt.Sprintf("%s: %s -> %s, %s", r.OrderID, r.PickupAddress, r.DropoffAddress, r.Total)
}
