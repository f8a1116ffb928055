package models

import (
	"encoding/json"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/penalty"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BuildingMetricsModel is the persistence model for one resolved building
// record. One row per BBL; each pipeline checkpoint overwrites the row with
// the full accumulated state, so a partially resolved building is always
// readable.
type BuildingMetricsModel struct {
	BBL          string `gorm:"type:varchar(10);primaryKey"`
	BIN          string `gorm:"type:varchar(120)"`
	Address      string `gorm:"type:varchar(200)"`
	ZipCode      string `gorm:"type:varchar(10)"`
	PathwaysJSON string `gorm:"column:pathways;type:jsonb;default:'[]'"`
	PathwayLabel string `gorm:"type:varchar(120)"`

	YearBuilt       *int
	NumFloors       *int
	PropertyType    string `gorm:"type:varchar(100)"`
	OwnerName       string `gorm:"type:varchar(200)"`
	GFA             *float64
	CalculatedGFA   decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	EnergyStarScore *int
	SiteEUI         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	ElectricityKWH decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NaturalGasKBTU decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FuelOilKBTU    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SteamKBTU      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AreasJSON      string          `gorm:"column:use_type_areas;type:jsonb;default:'{}'"`

	AuditID          *int
	AuditPeriod      string `gorm:"type:varchar(9)"`
	AuditPayloadJSON string `gorm:"column:audit_payload;type:jsonb;default:'{}'"`

	// Assessment columns are all set or all null; the engine produces both
	// compliance periods or nothing.
	EmissionsFirst  decimal.NullDecimal `gorm:"column:emissions_2024;type:decimal(18,2)"`
	LimitFirst      decimal.NullDecimal `gorm:"column:limit_2024;type:decimal(18,2)"`
	PenaltyFirst    decimal.NullDecimal `gorm:"column:penalty_2024;type:decimal(18,2)"`
	EmissionsSecond decimal.NullDecimal `gorm:"column:emissions_2030;type:decimal(18,2)"`
	LimitSecond     decimal.NullDecimal `gorm:"column:limit_2030;type:decimal(18,2)"`
	PenaltySecond   decimal.NullDecimal `gorm:"column:penalty_2030;type:decimal(18,2)"`

	NarrativesJSON string `gorm:"column:narratives;type:jsonb;default:'{}'"`
	ProvenanceJSON string `gorm:"column:provenance;type:jsonb;default:'[]'"`

	ResolvedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (BuildingMetricsModel) TableName() string {
	return "building_metrics"
}

// ToDomain converts the persistence model to a domain Record.
func (m *BuildingMetricsModel) ToDomain() *building.Record {
	rec := &building.Record{
		BBL:             building.BBL(m.BBL),
		BIN:             m.BIN,
		Address:         m.Address,
		ZipCode:         m.ZipCode,
		PathwayLabel:    m.PathwayLabel,
		YearBuilt:       m.YearBuilt,
		NumFloors:       m.NumFloors,
		PropertyType:    m.PropertyType,
		OwnerName:       m.OwnerName,
		GFA:             m.GFA,
		EnergyStarScore: m.EnergyStarScore,
		SiteEUI:         m.SiteEUI,
		ElectricityKWH:  m.ElectricityKWH,
		NaturalGasKBTU:  m.NaturalGasKBTU,
		FuelOilKBTU:     m.FuelOilKBTU,
		SteamKBTU:       m.SteamKBTU,
		AuditID:         m.AuditID,
		AuditPeriod:     building.ReportingPeriod(m.AuditPeriod),
		ResolvedAt:      m.ResolvedAt,
	}

	if m.CalculatedGFA.Valid {
		gfa := m.CalculatedGFA.Decimal
		rec.CalculatedGFA = &gfa
	}

	unmarshalColumn(m.BBL, "pathways", m.PathwaysJSON, "[]", &rec.Pathways)
	unmarshalColumn(m.BBL, "use_type_areas", m.AreasJSON, "{}", &rec.UseTypeAreas)
	unmarshalColumn(m.BBL, "audit_payload", m.AuditPayloadJSON, "{}", &rec.AuditPayload)
	unmarshalColumn(m.BBL, "narratives", m.NarrativesJSON, "{}", &rec.Narratives)
	unmarshalColumn(m.BBL, "provenance", m.ProvenanceJSON, "[]", &rec.Provenance)

	if m.EmissionsFirst.Valid {
		rec.Assessment = &penalty.Assessment{
			ByPeriod: map[penalty.Period]penalty.Result{
				penalty.Period2024to2029: {
					Emissions: m.EmissionsFirst.Decimal,
					Limit:     m.LimitFirst.Decimal,
					Penalty:   m.PenaltyFirst.Decimal,
				},
				penalty.Period2030to2034: {
					Emissions: m.EmissionsSecond.Decimal,
					Limit:     m.LimitSecond.Decimal,
					Penalty:   m.PenaltySecond.Decimal,
				},
			},
		}
	}

	return rec
}

// FromDomain populates the persistence model from a domain Record.
func (m *BuildingMetricsModel) FromDomain(rec *building.Record) {
	m.BBL = string(rec.BBL)
	m.BIN = rec.BIN
	m.Address = rec.Address
	m.ZipCode = rec.ZipCode
	m.PathwayLabel = rec.PathwayLabel
	m.YearBuilt = rec.YearBuilt
	m.NumFloors = rec.NumFloors
	m.PropertyType = rec.PropertyType
	m.OwnerName = rec.OwnerName
	m.GFA = rec.GFA
	m.EnergyStarScore = rec.EnergyStarScore
	m.SiteEUI = rec.SiteEUI
	m.ElectricityKWH = rec.ElectricityKWH
	m.NaturalGasKBTU = rec.NaturalGasKBTU
	m.FuelOilKBTU = rec.FuelOilKBTU
	m.SteamKBTU = rec.SteamKBTU
	m.AuditID = rec.AuditID
	m.AuditPeriod = string(rec.AuditPeriod)
	m.ResolvedAt = rec.ResolvedAt

	m.CalculatedGFA = decimal.NullDecimal{}
	if rec.CalculatedGFA != nil {
		m.CalculatedGFA = decimal.NewNullDecimal(*rec.CalculatedGFA)
	}

	m.PathwaysJSON = marshalColumn(m.BBL, "pathways", "[]", rec.Pathways, len(rec.Pathways) > 0)
	m.AreasJSON = marshalColumn(m.BBL, "use_type_areas", "{}", rec.UseTypeAreas, len(rec.UseTypeAreas) > 0)
	m.AuditPayloadJSON = marshalColumn(m.BBL, "audit_payload", "{}", rec.AuditPayload, len(rec.AuditPayload) > 0)
	m.NarrativesJSON = marshalColumn(m.BBL, "narratives", "{}", rec.Narratives, len(rec.Narratives) > 0)
	m.ProvenanceJSON = marshalColumn(m.BBL, "provenance", "[]", rec.Provenance, len(rec.Provenance) > 0)

	m.EmissionsFirst = decimal.NullDecimal{}
	m.LimitFirst = decimal.NullDecimal{}
	m.PenaltyFirst = decimal.NullDecimal{}
	m.EmissionsSecond = decimal.NullDecimal{}
	m.LimitSecond = decimal.NullDecimal{}
	m.PenaltySecond = decimal.NullDecimal{}
	if rec.Assessment != nil {
		first := rec.Assessment.ByPeriod[penalty.Period2024to2029]
		second := rec.Assessment.ByPeriod[penalty.Period2030to2034]
		m.EmissionsFirst = decimal.NewNullDecimal(first.Emissions)
		m.LimitFirst = decimal.NewNullDecimal(first.Limit)
		m.PenaltyFirst = decimal.NewNullDecimal(first.Penalty)
		m.EmissionsSecond = decimal.NewNullDecimal(second.Emissions)
		m.LimitSecond = decimal.NewNullDecimal(second.Limit)
		m.PenaltySecond = decimal.NewNullDecimal(second.Penalty)
	}
}

// unmarshalColumn decodes a JSON column into out, logging instead of failing
// on corrupt data: a bad blob loses that field, never the whole record.
func unmarshalColumn(bbl, column, raw, empty string, out any) {
	if raw == "" || raw == empty {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		modelLogger.Warn("failed to parse JSON column",
			zap.String("bbl", bbl),
			zap.String("column", column),
			zap.Error(err))
	}
}

// marshalColumn encodes a value for a JSON column, falling back to the empty
// literal when the value is absent or fails to encode.
func marshalColumn(bbl, column, empty string, v any, present bool) string {
	if !present {
		return empty
	}
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		modelLogger.Warn("failed to marshal JSON column",
			zap.String("bbl", bbl),
			zap.String("column", column),
			zap.Error(err))
		return empty
	}
	return string(jsonBytes)
}
