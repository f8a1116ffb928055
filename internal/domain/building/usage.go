package building

import (
	"github.com/buildingcarbon/backend/internal/domain/penalty"
	"github.com/shopspring/decimal"
)

// UseType and UseTypeAreas are declared in the penalty package, next to the
// emissions factor tables that enumerate and price the categories. The
// aliases keep the usage surface readable from here.
type (
	UseType      = penalty.UseType
	UseTypeAreas = penalty.UseTypeAreas
)

// UsageRecord is what the usage stage resolves: a building's annual energy
// usage in each fuel's native unit plus floor area by use type. Fuel
// quantities are never summed across fuel types before carbon conversion.
type UsageRecord struct {
	// BBL is the primary key embedded in the source's own record. A record
	// fetched by BIN is only trusted when this matches the BBL being
	// resolved; BINs may legitimately map to several buildings.
	BBL             BBL
	YearBuilt       *int
	PropertyType    string
	GFA             *float64 // self-reported gross floor area, sqft
	EnergyStarScore *int
	SiteEUI         decimal.Decimal // kBtu/sqft

	ElectricityKWH decimal.Decimal
	NaturalGasKBTU decimal.Decimal
	FuelOilKBTU    decimal.Decimal
	SteamKBTU      decimal.Decimal

	UseTypeAreas UseTypeAreas
}

// HasEnergyData reports whether any of the four fuel quantities is strictly
// positive. Absent and non-positive quantities are the same thing.
func (u *UsageRecord) HasEnergyData() bool {
	return u.ElectricityKWH.IsPositive() ||
		u.NaturalGasKBTU.IsPositive() ||
		u.FuelOilKBTU.IsPositive() ||
		u.SteamKBTU.IsPositive()
}
