package relayrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/relaypoint"
	"lastmile/internal/pkg/errs"
)

// GormRelayPointRepository implements ports.RelayPointRepository using
// GORM.
type GormRelayPointRepository struct {
	db *gorm.DB
}

// NewGormRelayPointRepository creates a new GORM relay point repository.
func NewGormRelayPointRepository(db *gorm.DB) *GormRelayPointRepository {
	return &GormRelayPointRepository{db: db}
}

// Add saves a new relay point with its capacity pools.
func (r *GormRelayPointRepository) Add(ctx context.Context, aggregate *relaypoint.RelayPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing relay point. The parent row carries the
// optimistic-lock version: the version CAS must win before any capacity
// row moves, so two transactions that loaded the same slot counts cannot
// both commit a reservation. Capacity rows are then upserted on their
// composite key so pools are neither resurrected nor orphaned.
func (r *GormRelayPointRepository) Update(ctx context.Context, aggregate *relaypoint.RelayPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expectedVersion := dto.Version
	dto.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&RelayPointDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Select("name", "location_lat", "location_lon", "schedule", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RelayPointDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("relay point", aggregate.ID().String())
		}
		return errs.NewStaleStateError("relay point", aggregate.ID().String())
	}

	for _, capacity := range dto.Capacities {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "relay_point_id"}, {Name: "storage_type"}},
				DoUpdates: clause.AssignmentColumns([]string{"total", "used"}),
			}).
			Create(&capacity).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a relay point by ID, including its capacity pools.
func (r *GormRelayPointRepository) Get(ctx context.Context, id kernel.UUID) (*relaypoint.RelayPoint, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RelayPointDTO
	if err := r.db.WithContext(ctx).
		Preload("Capacities").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("relay point", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every relay point in the network.
func (r *GormRelayPointRepository) GetAll(ctx context.Context) ([]*relaypoint.RelayPoint, error) {
	var dtos []RelayPointDTO
	if err := r.db.WithContext(ctx).
		Preload("Capacities").
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	aggregates := make([]*relaypoint.RelayPoint, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
