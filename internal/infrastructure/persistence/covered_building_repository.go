package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCoveredBuildingRepository reads the covered-buildings roll. It is the
// identity stage's primary source: a hit here carries pathway enrollment with
// it and ends the identity fallback chain.
type GormCoveredBuildingRepository struct {
	db *gorm.DB
}

// NewGormCoveredBuildingRepository creates a new covered-buildings repository
func NewGormCoveredBuildingRepository(db *gorm.DB) *GormCoveredBuildingRepository {
	return &GormCoveredBuildingRepository{db: db}
}

// Get fetches the roll row for a BBL. A building absent from the roll is a
// plain shared.ErrNotFound; the resolver moves on to the fallback sources.
func (r *GormCoveredBuildingRepository) Get(ctx context.Context, bbl building.BBL) (*building.IdentityRecord, error) {
	var model models.CoveredBuildingModel
	err := r.db.WithContext(ctx).Where("bbl = ?", string(bbl)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query covered building: %w", err)
	}
	return model.ToDomain(), nil
}

// Save upserts one roll row, keyed by BBL. Used when refreshing the roll from
// a newer published list.
func (r *GormCoveredBuildingRepository) Save(ctx context.Context, rec *building.IdentityRecord) error {
	var model models.CoveredBuildingModel
	model.FromDomain(rec)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bbl"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save covered building: %w", err)
	}
	return nil
}

// Count returns the number of buildings on the roll.
func (r *GormCoveredBuildingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CoveredBuildingModel{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count covered buildings: %w", err)
	}
	return count, nil
}
