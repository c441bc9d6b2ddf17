// Package historyrepo provides data transfer objects and mapping functions for
// the append-only order history. Rows are inserted once at settlement and never
// updated.
package historyrepo

import (
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistoryEntryDTO represents the database structure for one completed order.
type HistoryEntryDTO struct {
	OrderID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PickupAddress  string          `gorm:"type:varchar(512);not null"`
	DropoffAddress string          `gorm:"type:varchar(512);not null"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CompletedAt    time.Time       `gorm:"type:timestamptz;not null;index"`
}

// TableName specifies the database table name for history entries.
// Overrides GORM's default naming convention.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts a sealed history entry to its database representation.
func fromDomain(entry order.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		OrderID:        entry.OrderID().Bytes(),
		PickupAddress:  entry.PickupAddress(),
		DropoffAddress: entry.DropoffAddress(),
		Total:          entry.Total().Amount(),
		CompletedAt:    entry.CompletedAt(),
	}
}

// toDomain converts a database row back to a history entry.
func toDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	return order.RestoreHistoryEntry(orderID, dto.PickupAddress, dto.DropoffAddress, total, dto.CompletedAt)
}
