package dto

import (
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/penalty"
)

// BuildingResponse is the resolved-record payload returned by the buildings
// endpoints. Monetary and energy figures are decimal strings; absent optional
// fields are omitted rather than zeroed.
type BuildingResponse struct {
	BBL          string   `json:"bbl"`
	Borough      string   `json:"borough,omitempty"`
	BIN          string   `json:"bin,omitempty"`
	Address      string   `json:"address,omitempty"`
	ZipCode      string   `json:"zip_code,omitempty"`
	PathwayLabel string   `json:"pathway_label,omitempty"`
	Pathways     []string `json:"pathways,omitempty"`

	YearBuilt       *int     `json:"year_built,omitempty"`
	NumFloors       *int     `json:"num_floors,omitempty"`
	PropertyType    string   `json:"property_type,omitempty"`
	OwnerName       string   `json:"owner_name,omitempty"`
	GFA             *float64 `json:"gfa,omitempty"`
	CalculatedGFA   string   `json:"calculated_gfa,omitempty"`
	EnergyStarScore *int     `json:"energy_star_score,omitempty"`
	SiteEUI         string   `json:"site_eui"`

	ElectricityKWH string            `json:"electricity_kwh"`
	NaturalGasKBTU string            `json:"natural_gas_kbtu"`
	FuelOilKBTU    string            `json:"fuel_oil_kbtu"`
	SteamKBTU      string            `json:"steam_kbtu"`
	UseTypeAreas   map[string]string `json:"use_type_areas,omitempty"`

	AuditID     *int   `json:"audit_id,omitempty"`
	AuditPeriod string `json:"audit_period,omitempty"`

	Assessment *penalty.Assessment `json:"assessment,omitempty"`
	Narratives map[string]string   `json:"narratives,omitempty"`

	Provenance []string  `json:"data_sources"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// NewBuildingResponse maps a domain record to the API payload.
func NewBuildingResponse(rec *building.Record) BuildingResponse {
	resp := BuildingResponse{
		BBL:             string(rec.BBL),
		Borough:         rec.BBL.BoroughName(),
		BIN:             rec.BIN,
		Address:         rec.Address,
		ZipCode:         rec.ZipCode,
		PathwayLabel:    rec.PathwayLabel,
		YearBuilt:       rec.YearBuilt,
		NumFloors:       rec.NumFloors,
		PropertyType:    rec.PropertyType,
		OwnerName:       rec.OwnerName,
		GFA:             rec.GFA,
		EnergyStarScore: rec.EnergyStarScore,
		SiteEUI:         rec.SiteEUI.String(),
		ElectricityKWH:  rec.ElectricityKWH.String(),
		NaturalGasKBTU:  rec.NaturalGasKBTU.String(),
		FuelOilKBTU:     rec.FuelOilKBTU.String(),
		SteamKBTU:       rec.SteamKBTU.String(),
		AuditID:         rec.AuditID,
		AuditPeriod:     string(rec.AuditPeriod),
		Assessment:      rec.Assessment,
		Provenance:      make([]string, 0, len(rec.Provenance)),
		ResolvedAt:      rec.ResolvedAt,
	}

	if rec.CalculatedGFA != nil {
		resp.CalculatedGFA = rec.CalculatedGFA.String()
	}
	for _, p := range rec.Pathways {
		resp.Pathways = append(resp.Pathways, string(p))
	}
	if len(rec.UseTypeAreas) > 0 {
		resp.UseTypeAreas = make(map[string]string, len(rec.UseTypeAreas))
		for ut, area := range rec.UseTypeAreas {
			resp.UseTypeAreas[string(ut)] = area.String()
		}
	}
	if len(rec.Narratives) > 0 {
		resp.Narratives = make(map[string]string, len(rec.Narratives))
		for category, text := range rec.Narratives {
			resp.Narratives[string(category)] = text
		}
	}
	for _, s := range rec.Provenance {
		resp.Provenance = append(resp.Provenance, string(s))
	}

	return resp
}

// StatusResponse answers "has this BBL been resolved, and when".
type StatusResponse struct {
	BBL            string     `json:"bbl"`
	Processed      bool       `json:"processed"`
	LastResolvedAt *time.Time `json:"last_resolved_at,omitempty"`
}
