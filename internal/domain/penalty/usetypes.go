package penalty

import (
	"github.com/shopspring/decimal"
)

// UseType identifies a floor-area use category as reported by the
// benchmarking dataset. Keys are normalized snake_case names; the emissions
// factor tables below are the authoritative enumeration of priced categories.
type UseType string

// Use types a building can report floor area under. The benchmarking dataset
// carries a subset of these; the remainder only ever appear via the emissions
// factor tables or as sub-types folded in during ingestion.
const (
	UseAdultEducation             UseType = "adult_education"
	UseAmbulatorySurgicalCenter   UseType = "ambulatory_surgical_center"
	UseAutomobileDealership       UseType = "automobile_dealership"
	UseBankBranch                 UseType = "bank_branch"
	UseBarracks                   UseType = "barracks"
	UseBowlingAlley               UseType = "bowling_alley"
	UseCollegeUniversity          UseType = "college_university"
	UseConventionCenter           UseType = "convention_center"
	UseConvenienceStoreWithGas    UseType = "convenience_store_with_gas_station"
	UseConvenienceStoreWithoutGas UseType = "convenience_store_without_gas_station"
	UseCourthouse                 UseType = "courthouse"
	UseDataCenter                 UseType = "data_center"
	UseDistributionCenter         UseType = "distribution_center"
	UseEnclosedMall               UseType = "enclosed_mall"
	UseEnergyPowerStation         UseType = "energy_power_station"
	UseFinancialOffice            UseType = "financial_office"
	UseFireStation                UseType = "fire_station"
	UseFitnessCenter              UseType = "fitness_center_health_club_gym"
	UseFoodSales                  UseType = "food_sales"
	UseFoodService                UseType = "food_service"
	UseHospital                   UseType = "hospital_general_medical_surgical"
	UseHotel                      UseType = "hotel"
	UseHotelGym                   UseType = "hotel_gym"
	UseK12School                  UseType = "k_12_school"
	UseLaboratory                 UseType = "laboratory"
	UseLibrary                    UseType = "library"
	UseLifestyleCenter            UseType = "lifestyle_center"
	UseMailingCenterPostOffice    UseType = "mailing_center_post_office"
	UseMedicalOffice              UseType = "medical_office"
	UseMixedUseProperty           UseType = "mixed_use_property"
	UseMovieTheater               UseType = "movie_theater"
	UseMultifamilyHousing         UseType = "multifamily_housing"
	UseMuseum                     UseType = "museum"
	UseNonRefrigeratedWarehouse   UseType = "non_refrigerated_warehouse"
	UseOffice                     UseType = "office"
	UseOther                      UseType = "other"
	UseOtherEducation             UseType = "other_education"
	UseOtherEntertainment         UseType = "other_entertainment_public_assembly"
	UseOtherLodgingResidential    UseType = "other_lodging_residential"
	UseOtherMall                  UseType = "other_mall"
	UseOtherPublicServices        UseType = "other_public_services"
	UseOtherRecreation            UseType = "other_recreation"
	UseOtherServices              UseType = "other_services"
	UseOtherTechnologyScience     UseType = "other_technology_science"
	UseOtherUtility               UseType = "other_utility"
	UseOutpatientRehabilitation   UseType = "outpatient_rehabilitation_physical_therapy"
	UseParking                    UseType = "parking"
	UsePerformingArts             UseType = "performing_arts"
	UsePersonalServices           UseType = "personal_services"
	UsePoliceStation              UseType = "police_station"
	UsePreSchoolDaycare           UseType = "pre_school_daycare"
	UsePrisonIncarceration        UseType = "prison_incarceration"
	UseRefrigeratedWarehouse      UseType = "refrigerated_warehouse"
	UseResidenceHallDormitory     UseType = "residence_hall_dormitory"
	UseResidentialCareFacility    UseType = "residential_care_facility"
	UseRestaurant                 UseType = "restaurant"
	UseRetailStore                UseType = "retail_store"
	UseSelfStorageFacility        UseType = "self_storage_facility"
	UseSeniorCareCommunity        UseType = "senior_care_community"
	UseSeniorLivingCommunity      UseType = "senior_living_community"
	UseSocialMeetingHall          UseType = "social_meeting_hall"
	UseStripMall                  UseType = "strip_mall"
	UseSupermarketGroceryStore    UseType = "supermarket_grocery_store"
	UseSwimmingPool               UseType = "swimming_pool"
	UseUrgentCareClinic           UseType = "urgent_care_clinic_other_outpatient"
	UseVocationalSchool           UseType = "vocational_school"
	UseWastewaterTreatmentPlant   UseType = "wastewater_treatment_plant"
	UseWholesaleClubSupercenter   UseType = "wholesale_club_supercenter"
	UseWorshipFacility            UseType = "worship_facility"
)

// UseTypeAreas maps use types to floor area in square feet. A quantity that
// is zero or negative carries no meaning and is treated as absent everywhere.
type UseTypeAreas map[UseType]decimal.Decimal

// Positive returns only the entries with a strictly positive area.
func (a UseTypeAreas) Positive() UseTypeAreas {
	out := make(UseTypeAreas, len(a))
	for ut, area := range a {
		if area.IsPositive() {
			out[ut] = area
		}
	}
	return out
}

// CalculatedGFA is the sum of all positive use-type areas. It is derived
// independently of the self-reported gross floor area and the two are never
// reconciled; consumers see both.
func (a UseTypeAreas) CalculatedGFA() decimal.Decimal {
	sum := decimal.Zero
	for _, area := range a {
		if area.IsPositive() {
			sum = sum.Add(area)
		}
	}
	return sum
}
