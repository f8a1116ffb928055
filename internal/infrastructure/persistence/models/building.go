package models

import (
	"encoding/json"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"go.uber.org/zap"
)

// logger for model conversion errors (silent failures are logged for debugging)
var modelLogger = zap.L().Named("building.models")

// CoveredBuildingModel is the persistence model for one row of the
// covered-buildings roll. The roll is loaded from the published city list and
// read by the identity stage; pathway enrollment is stored as one boolean
// column per pathway.
type CoveredBuildingModel struct {
	BBL       string `gorm:"type:varchar(10);primaryKey"`
	BIN       string `gorm:"type:varchar(120)"`
	Address   string `gorm:"type:varchar(200)"`
	ZipCode   string `gorm:"type:varchar(10)"`
	CP0       bool   `gorm:"column:cp_2024;not null;default:false"`
	CP1       bool   `gorm:"column:cp_2026;not null;default:false"`
	CP2       bool   `gorm:"column:cp_2035;not null;default:false"`
	CP3       bool   `gorm:"column:cp_one_time;not null;default:false"`
	CP4       bool   `gorm:"column:cp_city_portfolio;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CoveredBuildingModel) TableName() string {
	return "covered_buildings"
}

// ToDomain converts the persistence model to a domain IdentityRecord.
func (m *CoveredBuildingModel) ToDomain() *building.IdentityRecord {
	rec := &building.IdentityRecord{
		BBL:     building.BBL(m.BBL),
		BIN:     m.BIN,
		Address: m.Address,
		ZipCode: m.ZipCode,
	}
	flags := []struct {
		on   bool
		flag building.PathwayFlag
	}{
		{m.CP0, building.PathwayArticle320For2024},
		{m.CP1, building.PathwayArticle320For2026},
		{m.CP2, building.PathwayArticle320For2035},
		{m.CP3, building.PathwayArticle321OneTime},
		{m.CP4, building.PathwayCityPortfolio},
	}
	for _, f := range flags {
		if f.on {
			rec.Pathways = append(rec.Pathways, f.flag)
		}
	}
	return rec
}

// FromDomain populates the persistence model from a domain IdentityRecord.
func (m *CoveredBuildingModel) FromDomain(rec *building.IdentityRecord) {
	m.BBL = string(rec.BBL)
	m.BIN = rec.BIN
	m.Address = rec.Address
	m.ZipCode = rec.ZipCode
	m.CP0, m.CP1, m.CP2, m.CP3, m.CP4 = false, false, false, false, false
	for _, f := range rec.Pathways {
		switch f {
		case building.PathwayArticle320For2024:
			m.CP0 = true
		case building.PathwayArticle320For2026:
			m.CP1 = true
		case building.PathwayArticle320For2035:
			m.CP2 = true
		case building.PathwayArticle321OneTime:
			m.CP3 = true
		case building.PathwayCityPortfolio:
			m.CP4 = true
		}
	}
}

// AuditRecordModel is the persistence model for one mechanical-audit filing.
// Both reporting-period datasets land in the same table; the period column
// keeps them apart. The payload schema varies by period and is stored as-is.
type AuditRecordModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	BBL         string `gorm:"type:varchar(10);not null;uniqueIndex:idx_audit_bbl_period_id,priority:1"`
	AuditID     int    `gorm:"not null;uniqueIndex:idx_audit_bbl_period_id,priority:3"`
	Period      string `gorm:"type:varchar(9);not null;uniqueIndex:idx_audit_bbl_period_id,priority:2"`
	PayloadJSON string `gorm:"column:payload;type:jsonb;default:'{}'"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (AuditRecordModel) TableName() string {
	return "audit_records"
}

// ToDomain converts the persistence model to a domain AuditRecord.
func (m *AuditRecordModel) ToDomain() building.AuditRecord {
	rec := building.AuditRecord{
		BBL:     building.BBL(m.BBL),
		AuditID: m.AuditID,
		Period:  building.ReportingPeriod(m.Period),
	}
	if m.PayloadJSON != "" && m.PayloadJSON != "{}" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(m.PayloadJSON), &payload); err != nil {
			modelLogger.Warn("failed to parse audit payload JSON",
				zap.String("bbl", m.BBL),
				zap.Int("audit_id", m.AuditID),
				zap.Error(err))
		} else {
			rec.Payload = payload
		}
	}
	return rec
}

// FromDomain populates the persistence model from a domain AuditRecord.
func (m *AuditRecordModel) FromDomain(rec *building.AuditRecord) {
	m.BBL = string(rec.BBL)
	m.AuditID = rec.AuditID
	m.Period = string(rec.Period)
	m.PayloadJSON = "{}"
	if len(rec.Payload) > 0 {
		if jsonBytes, err := json.Marshal(rec.Payload); err == nil {
			m.PayloadJSON = string(jsonBytes)
		} else {
			modelLogger.Warn("failed to marshal audit payload",
				zap.String("bbl", m.BBL),
				zap.Int("audit_id", rec.AuditID),
				zap.Error(err))
		}
	}
}
