package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMetricsRepository is the metrics store the resolution pipeline
// checkpoints to. One row per BBL; every checkpoint writes the full
// accumulated record, so whatever is in the table is the best known state
// even when a later stage failed.
type GormMetricsRepository struct {
	db *gorm.DB
}

// NewGormMetricsRepository creates a new metrics repository
func NewGormMetricsRepository(db *gorm.DB) *GormMetricsRepository {
	return &GormMetricsRepository{db: db}
}

// Upsert writes the full record, superseding any earlier checkpoint for the
// same BBL.
func (r *GormMetricsRepository) Upsert(ctx context.Context, rec *building.Record) error {
	var model models.BuildingMetricsModel
	model.FromDomain(rec)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bbl"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}
	return nil
}

// Get fetches the stored record for a BBL.
func (r *GormMetricsRepository) Get(ctx context.Context, bbl building.BBL) (*building.Record, error) {
	var model models.BuildingMetricsModel
	err := r.db.WithContext(ctx).Where("bbl = ?", string(bbl)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query building metrics: %w", err)
	}
	return model.ToDomain(), nil
}

// LastUpdated returns when a BBL was last checkpointed, without loading the
// whole row. A BBL never resolved is shared.ErrNotFound.
func (r *GormMetricsRepository) LastUpdated(ctx context.Context, bbl building.BBL) (*time.Time, error) {
	var model models.BuildingMetricsModel
	err := r.db.WithContext(ctx).
		Select("resolved_at").
		Where("bbl = ?", string(bbl)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query building metrics: %w", err)
	}
	ts := model.ResolvedAt
	return &ts, nil
}
