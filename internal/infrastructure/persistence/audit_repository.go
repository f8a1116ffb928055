package persistence

import (
	"context"
	"fmt"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditRepository reads mechanical-audit filings. Both reporting-period
// datasets share one table; selection of the single row to use happens in the
// domain, not in SQL.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new audit repository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Rows fetches every audit filing for a BBL across both reporting periods.
// No rows is an empty slice, not an error: a building with no filings simply
// skips the audit stage.
func (r *GormAuditRepository) Rows(ctx context.Context, bbl building.BBL) ([]building.AuditRecord, error) {
	var rows []models.AuditRecordModel
	err := r.db.WithContext(ctx).
		Where("bbl = ?", string(bbl)).
		Order("period ASC, audit_id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}

	records := make([]building.AuditRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToDomain())
	}
	return records, nil
}

// Save upserts one filing, keyed by (bbl, period, audit_id). Re-ingesting a
// filing replaces its payload.
func (r *GormAuditRepository) Save(ctx context.Context, rec *building.AuditRecord) error {
	var model models.AuditRecordModel
	model.FromDomain(rec)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bbl"}, {Name: "period"}, {Name: "audit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save audit record: %w", err)
	}
	return nil
}
