package persistence

import (
	"context"
	"testing"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.AuditRecordModel{})
	require.NoError(t, err)

	return db
}

func TestGormAuditRepository_Rows(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &building.AuditRecord{
		BBL:     "1011190036",
		AuditID: 17,
		Period:  building.AuditPeriod2012to2018,
		Payload: map[string]any{"heating_system": "steam boiler"},
	}))
	require.NoError(t, repo.Save(ctx, &building.AuditRecord{
		BBL:     "1011190036",
		AuditID: 4,
		Period:  building.AuditPeriod2019to2024,
		Payload: map[string]any{"cooling_system": "centrifugal chiller"},
	}))
	require.NoError(t, repo.Save(ctx, &building.AuditRecord{
		BBL:     "4000760010",
		AuditID: 9,
		Period:  building.AuditPeriod2019to2024,
	}))

	t.Run("returns every filing for the key across both periods", func(t *testing.T) {
		rows, err := repo.Rows(ctx, building.BBL("1011190036"))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		latest := building.LatestAudit(rows)
		require.NotNil(t, latest)
		assert.Equal(t, 4, latest.AuditID)
		assert.Equal(t, building.AuditPeriod2019to2024, latest.Period)
		assert.Equal(t, "centrifugal chiller", latest.Payload["cooling_system"])
	})

	t.Run("no filings is an empty slice, not an error", func(t *testing.T) {
		rows, err := repo.Rows(ctx, building.BBL("5000010001"))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("re-saving a filing replaces its payload", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &building.AuditRecord{
			BBL:     "4000760010",
			AuditID: 9,
			Period:  building.AuditPeriod2019to2024,
			Payload: map[string]any{"ventilation": "rooftop AHU"},
		}))

		rows, err := repo.Rows(ctx, building.BBL("4000760010"))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "rooftop AHU", rows[0].Payload["ventilation"])
	})
}
