package opendata

import (
	"context"
	"fmt"
	"net/url"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/penalty"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// useTypeFields maps the benchmarking dataset's gross-floor-area columns to
// use types. The dataset truncates column names at word boundaries, hence
// the inconsistent suffixes.
var useTypeFields = map[string]building.UseType{
	"adult_education_gross_floor":   penalty.UseAdultEducation,
	"automobile_dealership_gross":   penalty.UseAutomobileDealership,
	"bank_branch_gross_floor_area":  penalty.UseBankBranch,
	"barracks_gross_floor_area":     penalty.UseBarracks,
	"college_university_gross":      penalty.UseCollegeUniversity,
	"convention_center_gross_floor": penalty.UseConventionCenter,
	"courthouse_gross_floor_area":   penalty.UseCourthouse,
	"data_center_gross_floor_area":  penalty.UseDataCenter,
	"distribution_center_gross":     penalty.UseDistributionCenter,
	"enclosed_mall_gross_floor":     penalty.UseEnclosedMall,
	"energy_power_station_gross":    penalty.UseEnergyPowerStation,
	"financial_office_gross_floor":  penalty.UseFinancialOffice,
	"food_sales_gross_floor_area":   penalty.UseFoodSales,
	"food_service_gross_floor":      penalty.UseFoodService,
	"hotel_gross_floor_area_ft":     penalty.UseHotel,
	"k_12_school_gross_floor_area":  penalty.UseK12School,
	"laboratory_gross_floor_area":   penalty.UseLaboratory,
	"medical_office_gross_floor":    penalty.UseMedicalOffice,
	"movie_theater_gross_floor":     penalty.UseMovieTheater,
	"multifamily_housing_gross":     penalty.UseMultifamilyHousing,
	"museum_gross_floor_area_ft":    penalty.UseMuseum,
	"office_gross_floor_area_ft":    penalty.UseOffice,
	"other_gross_floor_area_ft":     penalty.UseOther,
	"parking_gross_floor_area":      penalty.UseParking,
	"performing_arts_gross_floor":   penalty.UsePerformingArts,
	"pre_school_daycare_gross":      penalty.UsePreSchoolDaycare,
	"refrigerated_warehouse_gross":  penalty.UseRefrigeratedWarehouse,
	"restaurant_gross_floor_area":   penalty.UseRestaurant,
	"retail_store_gross_floor":      penalty.UseRetailStore,
	"self_storage_facility_gross":   penalty.UseSelfStorageFacility,
	"senior_living_community_gross": penalty.UseSeniorLivingCommunity,
	"social_meeting_hall_gross":     penalty.UseSocialMeetingHall,
	"strip_mall_gross_floor_area":   penalty.UseStripMall,
	"supermarket_grocery_gross":     penalty.UseSupermarketGroceryStore,
	"worship_facility_gross_floor":  penalty.UseWorshipFacility,
}

// BenchmarkingClient queries the live energy benchmarking dataset. It is the
// usage source of the resolution waterfall.
type BenchmarkingClient struct {
	client   *Client
	endpoint string
	logger   *zap.Logger
}

// NewBenchmarkingClient creates a benchmarking dataset client.
func NewBenchmarkingClient(client *Client, endpoint string, logger *zap.Logger) *BenchmarkingClient {
	return &BenchmarkingClient{client: client, endpoint: endpoint, logger: logger}
}

// GetByBBL fetches the most recently modified benchmarking row for a BBL.
func (b *BenchmarkingClient) GetByBBL(ctx context.Context, bbl building.BBL) (*building.UsageRecord, error) {
	params := url.Values{}
	params.Set("$where", fmt.Sprintf("bbl_10_digits='%s'", bbl))
	params.Set("$order", "last_modified_date_property DESC")
	params.Set("$limit", "1")
	return b.fetch(ctx, params)
}

// GetByBIN fetches the most recently modified benchmarking row matching a
// BIN. The dataset's BIN column holds semicolon-delimited lists for campus
// lots, so the match is a substring query.
func (b *BenchmarkingClient) GetByBIN(ctx context.Context, bin string) (*building.UsageRecord, error) {
	params := url.Values{}
	params.Set("$where", fmt.Sprintf("nyc_building_identification LIKE '%%%s%%'", bin))
	params.Set("$order", "last_modified_date_property DESC")
	params.Set("$limit", "1")
	return b.fetch(ctx, params)
}

func (b *BenchmarkingClient) fetch(ctx context.Context, params url.Values) (*building.UsageRecord, error) {
	var rows []map[string]any
	if err := b.client.getJSON(ctx, b.endpoint, params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	rec := mapUsageRow(rows[0])
	b.logger.Debug("benchmarking row fetched",
		zap.String("bbl", string(rec.BBL)),
		zap.Int("use_types", len(rec.UseTypeAreas)))
	return rec, nil
}

func mapUsageRow(row map[string]any) *building.UsageRecord {
	rec := &building.UsageRecord{
		BBL:             building.BBL(asString(row["bbl_10_digits"])),
		YearBuilt:       asIntPtr(row["year_built"]),
		PropertyType:    asString(row["largest_property_use_type"]),
		GFA:             asFloatPtr(row["property_gfa_self_reported"]),
		EnergyStarScore: asIntPtr(row["energy_star_score"]),
		SiteEUI:         asDecimal(row["site_eui_kbtu_ft"]),
		// The _1 electricity column is the kWh figure; the unsuffixed one is kBtu.
		ElectricityKWH: asDecimal(row["electricity_use_grid_purchase_1"]),
		NaturalGasKBTU: asDecimal(row["natural_gas_use_kbtu"]),
		FuelOilKBTU:    asDecimal(row["fuel_oil_2_use_kbtu"]),
		SteamKBTU:      asDecimal(row["district_steam_use_kbtu"]),
	}

	areas := make(building.UseTypeAreas)
	for field, useType := range useTypeFields {
		if v, ok := row[field]; ok {
			if d := asDecimal(v); d.IsPositive() {
				areas[useType] = d
			}
		}
	}
	if len(areas) > 0 {
		rec.UseTypeAreas = areas
	}
	return rec
}
