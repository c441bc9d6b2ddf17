// Package courierrepo provides data transfer objects and mapping functions for
// courier state persistence. The courier's durable state and its earnings
// ledger share one row: they are always written together in a checkpoint and
// restored together at session start.
package courierrepo

import (
	"courier/internal/core/domain/model/courier"
	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CourierStateDTO represents the database structure for the courier's durable
// state. Location columns are nullable: a courier that never reported a
// position has none.
type CourierStateDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Online              bool            `gorm:"type:boolean;not null"`
	LocationLat         *float64        `gorm:"type:double precision"`
	LocationLon         *float64        `gorm:"type:double precision"`
	AuthToken           string          `gorm:"type:varchar(512);not null"`
	CompletedDeliveries int             `gorm:"type:int;not null"`
	EarnedToday         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PendingBalance      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for courier state.
// Overrides GORM's default naming convention.
func (CourierStateDTO) TableName() string {
	return "courier_state"
}

// fromDomain converts the courier state and ledger to their shared row.
func fromDomain(state *courier.State, ledger *earnings.Ledger) CourierStateDTO {
	var lat, lon *float64
	if loc := state.Location(); loc != nil {
		latV, lonV := loc.Latitude(), loc.Longitude()
		lat, lon = &latV, &lonV
	}

	return CourierStateDTO{
		ID:                  state.ID().Bytes(),
		Online:              state.IsOnline(),
		LocationLat:         lat,
		LocationLon:         lon,
		AuthToken:           state.AuthToken(),
		CompletedDeliveries: state.CompletedDeliveries(),
		EarnedToday:         ledger.Today().Amount(),
		PendingBalance:      ledger.Pending().Amount(),
	}
}

// toDomain converts a database row back to the courier state and ledger.
func toDomain(dto CourierStateDTO) (*courier.State, *earnings.Ledger, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLon)
		if pointErr != nil {
			return nil, nil, pointErr
		}
		location = &point
	}

	state, err := courier.RestoreState(id, dto.Online, location, dto.AuthToken, dto.CompletedDeliveries)
	if err != nil {
		return nil, nil, err
	}

	today, err := kernel.NewMoney(dto.EarnedToday)
	if err != nil {
		return nil, nil, err
	}
	pending, err := kernel.NewMoney(dto.PendingBalance)
	if err != nil {
		return nil, nil, err
	}

	ledger, err := earnings.RestoreLedger(today, pending)
	if err != nil {
		return nil, nil, err
	}

	return state, ledger, nil
}
