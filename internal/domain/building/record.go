package building

import (
	"time"

	"github.com/buildingcarbon/backend/internal/domain/penalty"
	"github.com/shopspring/decimal"
)

// Source is a short provenance token naming a data source that contributed
// to a resolved record. The provenance list is part of the contract:
// consumers infer which fallback path ran purely from its contents and order.
type Source string

const (
	SourcePrimaryIdentity Source = "primary_identity"
	SourceCharacteristics Source = "characteristics_fallback"
	SourceGeocode         Source = "geocode_fallback"
	SourceUsageLive       Source = "usage_live"
	SourceAudit           Source = "audit"
)

// NarrativeCategory names one of the six mechanical-system narratives.
type NarrativeCategory string

const (
	NarrativeEnvelope        NarrativeCategory = "Building Envelope"
	NarrativeHeating         NarrativeCategory = "Heating System"
	NarrativeCooling         NarrativeCategory = "Cooling System"
	NarrativeAirDistribution NarrativeCategory = "Air Distribution System"
	NarrativeVentilation     NarrativeCategory = "Ventilation System"
	NarrativeHotWater        NarrativeCategory = "Domestic Hot Water System"
)

// NarrativeCategories returns the six categories in presentation order.
func NarrativeCategories() []NarrativeCategory {
	return []NarrativeCategory{
		NarrativeEnvelope,
		NarrativeHeating,
		NarrativeCooling,
		NarrativeAirDistribution,
		NarrativeVentilation,
		NarrativeHotWater,
	}
}

// Record is the aggregated result of one resolution run. It is built fresh
// per run, grown field by field as stages complete, and never shared between
// goroutines. It has no identity beyond the BBL plus "as of this run".
type Record struct {
	BBL     BBL
	BIN     string
	Address string
	ZipCode string

	// Pathways holds the compliance pathway flags when the identity stage
	// hit the covered-buildings roll. PathwayLabel is the derived display
	// form and is never empty once the identity stage hit.
	Pathways     []PathwayFlag
	PathwayLabel string

	YearBuilt       *int
	NumFloors       *int
	PropertyType    string
	OwnerName       string
	GFA             *float64
	CalculatedGFA   *decimal.Decimal
	EnergyStarScore *int
	SiteEUI         decimal.Decimal

	ElectricityKWH decimal.Decimal
	NaturalGasKBTU decimal.Decimal
	FuelOilKBTU    decimal.Decimal
	SteamKBTU      decimal.Decimal
	UseTypeAreas   UseTypeAreas

	AuditID      *int
	AuditPeriod  ReportingPeriod
	AuditPayload map[string]any

	// Assessment is nil until the penalty stage runs, and stays nil when no
	// usage data exists. All six figures or none.
	Assessment *penalty.Assessment

	Narratives map[NarrativeCategory]string

	// Provenance is append-only, one token per contributing source, in the
	// order stages actually ran. Skipped stages contribute no token.
	Provenance []Source

	ResolvedAt time.Time
}

// NewRecord starts an empty record for one resolution run.
func NewRecord(bbl BBL) *Record {
	return &Record{
		BBL:        bbl,
		ResolvedAt: time.Now().UTC(),
	}
}

// AddSource appends a provenance token unless the source already
// contributed; a source that feeds two stages still shows up once.
func (r *Record) AddSource(s Source) {
	for _, existing := range r.Provenance {
		if existing == s {
			return
		}
	}
	r.Provenance = append(r.Provenance, s)
}

// HasSource reports whether a source already contributed to this record.
func (r *Record) HasSource(s Source) bool {
	for _, existing := range r.Provenance {
		if existing == s {
			return true
		}
	}
	return false
}

// ApplyIdentity merges the identity stage's result.
func (r *Record) ApplyIdentity(id *IdentityRecord) {
	if id == nil {
		return
	}
	r.BIN = id.BIN
	r.Address = id.Address
	r.ZipCode = id.ZipCode
	r.Pathways = id.Pathways
	r.PathwayLabel = id.PathwayLabel()
}

// ApplyCharacteristics merges tax-lot characteristics without overwriting
// fields an earlier source already filled.
func (r *Record) ApplyCharacteristics(c *Characteristics) {
	if c == nil {
		return
	}
	if r.YearBuilt == nil {
		r.YearBuilt = c.YearBuilt
	}
	if r.NumFloors == nil {
		r.NumFloors = c.NumFloors
	}
	if r.GFA == nil {
		r.GFA = c.GFA
	}
	if r.OwnerName == "" {
		r.OwnerName = c.OwnerName
	}
	if r.Address == "" {
		r.Address = c.Address
	}
	if r.ZipCode == "" {
		r.ZipCode = c.ZipCode
	}
}

// ApplyGeocode fills the BIN from an accepted geocoder match. The geocoder's
// BIN supersedes whatever the record held.
func (r *Record) ApplyGeocode(g *GeocodeResult) {
	if g == nil || g.BIN == "" {
		return
	}
	r.BIN = g.BIN
}

// ApplyUsage merges the usage stage's result. Usage data wins over
// characteristics data for the fields both supply.
func (r *Record) ApplyUsage(u *UsageRecord) {
	if u == nil {
		return
	}
	if u.YearBuilt != nil {
		r.YearBuilt = u.YearBuilt
	}
	if u.PropertyType != "" {
		r.PropertyType = u.PropertyType
	}
	if u.GFA != nil {
		r.GFA = u.GFA
	}
	if u.EnergyStarScore != nil {
		r.EnergyStarScore = u.EnergyStarScore
	}
	r.SiteEUI = u.SiteEUI
	r.ElectricityKWH = u.ElectricityKWH
	r.NaturalGasKBTU = u.NaturalGasKBTU
	r.FuelOilKBTU = u.FuelOilKBTU
	r.SteamKBTU = u.SteamKBTU

	if positive := u.UseTypeAreas.Positive(); len(positive) > 0 {
		r.UseTypeAreas = positive
		gfa := positive.CalculatedGFA()
		r.CalculatedGFA = &gfa
	}
}

// ApplyAudit merges the audit stage's result.
func (r *Record) ApplyAudit(a *AuditRecord) {
	if a == nil {
		return
	}
	id := a.AuditID
	r.AuditID = &id
	r.AuditPeriod = a.Period
	r.AuditPayload = a.Payload
}

// ApplyAssessment attaches the penalty stage's result. A nil assessment
// means no usage data; the record keeps reading as "no data", not "no
// penalty".
func (r *Record) ApplyAssessment(a *penalty.Assessment) {
	r.Assessment = a
}

// ApplyNarratives attaches the narrative stage's per-category texts.
func (r *Record) ApplyNarratives(n map[NarrativeCategory]string) {
	if len(n) == 0 {
		return
	}
	r.Narratives = n
}
