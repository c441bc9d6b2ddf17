package queries

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetEarningsSummaryQueryHandler reads the earnings summary from the database.
// The today bucket and pending balance come from the courier state row; the
// rolling seven-day total is aggregated from settled history.
type GetEarningsSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetEarningsSummaryQueryHandler creates a handler for earnings queries.
// Requires a GORM database connection for query execution.
func NewGetEarningsSummaryQueryHandler(db *gorm.DB) GetEarningsSummaryQueryHandler {
	return GetEarningsSummaryQueryHandler{db: db}
}

// Handle executes the earnings summary query.
func (h GetEarningsSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetEarningsSummaryQuery,
) (GetEarningsSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	var earnedToday, pendingBalance decimal.Decimal
	var completedDeliveries int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			earned_today,
			pending_balance,
			completed_deliveries
		FROM courier_state
		WHERE id = ?
	`, query.CourierID().Bytes()).Row()

	if err := row.Scan(&earnedToday, &pendingBalance, &completedDeliveries); err != nil {
		return GetEarningsSummaryQueryResponse{},
			errs.NewObjectNotFoundErrorWithCause("courierID", query.CourierID(), err)
	}

	var weekTotal decimal.Decimal

	row = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)
		FROM order_history
		WHERE completed_at >= NOW() - INTERVAL '7 days'
	`).Row()

	if err := row.Scan(&weekTotal); err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	today, err := kernel.NewMoney(earnedToday)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	week, err := kernel.NewMoney(weekTotal)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	pending, err := kernel.NewMoney(pendingBalance)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	return GetEarningsSummaryQueryResponse{
		Today:               today,
		Week:                week,
		Pending:             pending,
		CompletedDeliveries: completedDeliveries,
	}, nil
}
