package courierrepo

import (
	"context"
	"errors"

	"courier/internal/core/domain/model/courier"
	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCourierStateRepository implements CourierStateRepository using GORM.
type GormCourierStateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierStateRepository creates a new GORM courier state repository.
func NewGormCourierStateRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierStateRepository {
	return &GormCourierStateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Save upserts the courier state row together with its ledger buckets.
// Checkpoints are idempotent: replaying the same checkpoint is harmless.
func (r *GormCourierStateRepository) Save(
	ctx context.Context,
	state *courier.State,
	ledger *earnings.Ledger,
) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if err := ledger.Validate(); err != nil {
		return err
	}

	dto := fromDomain(state, ledger)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(state.ID(), state)
	return nil
}

// Get retrieves the courier state and ledger by courier identifier.
func (r *GormCourierStateRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*courier.State, *earnings.Ledger, error) {
	if err := id.Validate(); err != nil {
		return nil, nil, err
	}

	var dto CourierStateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, nil, err
	}

	return toDomain(dto)
}
