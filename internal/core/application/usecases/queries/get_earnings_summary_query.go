package queries

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrGetEarningsSummaryQueryIsNotConstructed = errors.New(
	"GetEarningsSummaryQuery must be created via NewGetEarningsSummaryQuery constructor",
)

// GetEarningsSummaryQuery retrieves the courier's earnings summary: the ledger
// buckets plus the seven-day settled total derived from order history.
type GetEarningsSummaryQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetEarningsSummaryQuery creates an earnings summary query for courierID.
func NewGetEarningsSummaryQuery(courierID kernel.UUID) (GetEarningsSummaryQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetEarningsSummaryQuery{}, err
	}

	return GetEarningsSummaryQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// CourierID returns the courier's identifier.
func (q GetEarningsSummaryQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Validate ensures the query was created through the constructor.
func (q GetEarningsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsSummaryQueryIsNotConstructed)
}

// GetEarningsSummaryQueryResponse is the earnings read model.
type GetEarningsSummaryQueryResponse struct {
	Today               kernel.Money
	Week                kernel.Money
	Pending             kernel.Money
	CompletedDeliveries int
}
