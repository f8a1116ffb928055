package penalty

import (
	"github.com/shopspring/decimal"
)

// emissionsFactors maps (period, use type) to the emissions allowance in
// tCO2e per square foot. A use type with no factor for a period contributes
// zero to the limit rather than erroring; the upstream datasets report some
// use types the rate schedule never priced.
var emissionsFactors = map[Period]map[UseType]decimal.Decimal{
	Period2024to2029: {
		UseAdultEducation:             decimal.RequireFromString("0.00758"),
		UseAmbulatorySurgicalCenter:   decimal.RequireFromString("0.01181"),
		UseAutomobileDealership:       decimal.RequireFromString("0.00675"),
		UseBankBranch:                 decimal.RequireFromString("0.00987"),
		UseBowlingAlley:               decimal.RequireFromString("0.00574"),
		UseCollegeUniversity:          decimal.RequireFromString("0.00987"),
		UseConvenienceStoreWithoutGas: decimal.RequireFromString("0.00675"),
		UseCourthouse:                 decimal.RequireFromString("0.00426"),
		UseDataCenter:                 decimal.RequireFromString("0.02381"),
		UseDistributionCenter:         decimal.RequireFromString("0.00574"),
		UseEnclosedMall:               decimal.RequireFromString("0.01074"),
		UseFinancialOffice:            decimal.RequireFromString("0.00846"),
		UseFitnessCenter:              decimal.RequireFromString("0.00987"),
		UseFoodSales:                  decimal.RequireFromString("0.01181"),
		UseFoodService:                decimal.RequireFromString("0.01181"),
		UseHospital:                   decimal.RequireFromString("0.02381"),
		UseHotel:                      decimal.RequireFromString("0.00987"),
		UseK12School:                  decimal.RequireFromString("0.00675"),
		UseLaboratory:                 decimal.RequireFromString("0.02381"),
		UseLibrary:                    decimal.RequireFromString("0.00675"),
		UseLifestyleCenter:            decimal.RequireFromString("0.00846"),
		UseMailingCenterPostOffice:    decimal.RequireFromString("0.00426"),
		UseMedicalOffice:              decimal.RequireFromString("0.01074"),
		UseMovieTheater:               decimal.RequireFromString("0.01181"),
		UseMultifamilyHousing:         decimal.RequireFromString("0.00675"),
		UseMuseum:                     decimal.RequireFromString("0.01181"),
		UseNonRefrigeratedWarehouse:   decimal.RequireFromString("0.00426"),
		UseOffice:                     decimal.RequireFromString("0.00758"),
		UseOther:                      decimal.RequireFromString("0.02381"), // Other - Restaurant/Bar
		UseOtherEducation:             decimal.RequireFromString("0.00846"),
		UseOtherEntertainment:         decimal.RequireFromString("0.00987"),
		UseOtherLodgingResidential:    decimal.RequireFromString("0.00758"),
		UseOtherMall:                  decimal.RequireFromString("0.01074"),
		UseOtherPublicServices:        decimal.RequireFromString("0.00758"),
		UseOtherRecreation:            decimal.RequireFromString("0.00987"),
		UseOtherServices:              decimal.RequireFromString("0.01074"),
		UseOtherTechnologyScience:     decimal.RequireFromString("0.02381"),
		UseOutpatientRehabilitation:   decimal.RequireFromString("0.01181"),
		UseParking:                    decimal.RequireFromString("0.00426"),
		UsePerformingArts:             decimal.RequireFromString("0.00846"),
		UsePersonalServices:           decimal.RequireFromString("0.00574"),
		UsePreSchoolDaycare:           decimal.RequireFromString("0.00675"),
		UseRefrigeratedWarehouse:      decimal.RequireFromString("0.00987"),
		UseResidenceHallDormitory:     decimal.RequireFromString("0.00758"),
		UseRestaurant:                 decimal.RequireFromString("0.01181"),
		UseRetailStore:                decimal.RequireFromString("0.00758"),
		UseSelfStorageFacility:        decimal.RequireFromString("0.00426"),
		UseSeniorCareCommunity:        decimal.RequireFromString("0.01138"),
		UseSocialMeetingHall:          decimal.RequireFromString("0.00987"),
		UseStripMall:                  decimal.RequireFromString("0.01181"),
		UseSupermarketGroceryStore:    decimal.RequireFromString("0.02381"),
		UseUrgentCareClinic:           decimal.RequireFromString("0.01181"),
		UseVocationalSchool:           decimal.RequireFromString("0.00574"),
		UseWholesaleClubSupercenter:   decimal.RequireFromString("0.01138"),
		UseWorshipFacility:            decimal.RequireFromString("0.00574"),
	},
	Period2030to2034: {
		UseAdultEducation:             decimal.RequireFromString("0.003565528"),
		UseAmbulatorySurgicalCenter:   decimal.RequireFromString("0.008980612"),
		UseAutomobileDealership:       decimal.RequireFromString("0.002824097"),
		UseBankBranch:                 decimal.RequireFromString("0.004036172"),
		UseBowlingAlley:               decimal.RequireFromString("0.003103815"),
		UseCollegeUniversity:          decimal.RequireFromString("0.002099748"),
		UseConvenienceStoreWithoutGas: decimal.RequireFromString("0.003540032"),
		UseCourthouse:                 decimal.RequireFromString("0.001480533"),
		UseDataCenter:                 decimal.RequireFromString("0.014791131"),
		UseDistributionCenter:         decimal.RequireFromString("0.0009916"),
		UseEnclosedMall:               decimal.RequireFromString("0.003983803"),
		UseFinancialOffice:            decimal.RequireFromString("0.003697004"),
		UseFitnessCenter:              decimal.RequireFromString("0.003946728"),
		UseFoodSales:                  decimal.RequireFromString("0.00520888"),
		UseFoodService:                decimal.RequireFromString("0.007749414"),
		UseHospital:                   decimal.RequireFromString("0.007335204"),
		UseHotel:                      decimal.RequireFromString("0.003850668"),
		UseK12School:                  decimal.RequireFromString("0.002230588"),
		UseLaboratory:                 decimal.RequireFromString("0.026029868"),
		UseLibrary:                    decimal.RequireFromString("0.002218412"),
		UseLifestyleCenter:            decimal.RequireFromString("0.00470585"),
		UseMailingCenterPostOffice:    decimal.RequireFromString("0.00198044"),
		UseMedicalOffice:              decimal.RequireFromString("0.002912778"),
		UseMovieTheater:               decimal.RequireFromString("0.005395268"),
		UseMultifamilyHousing:         decimal.RequireFromString("0.00334664"),
		UseMuseum:                     decimal.RequireFromString("0.0053958"),
		UseNonRefrigeratedWarehouse:   decimal.RequireFromString("0.000883187"),
		UseOffice:                     decimal.RequireFromString("0.002690852"),
		UseOther:                      decimal.RequireFromString("0.008505075"), // Other - Restaurant/Bar
		UseOtherEducation:             decimal.RequireFromString("0.002934006"),
		UseOtherEntertainment:         decimal.RequireFromString("0.002956738"),
		UseOtherLodgingResidential:    decimal.RequireFromString("0.001901982"),
		UseOtherMall:                  decimal.RequireFromString("0.001928226"),
		UseOtherPublicServices:        decimal.RequireFromString("0.003808033"),
		UseOtherRecreation:            decimal.RequireFromString("0.00447957"),
		UseOtherServices:              decimal.RequireFromString("0.001823381"),
		UseOtherTechnologyScience:     decimal.RequireFromString("0.010446456"),
		UseOutpatientRehabilitation:   decimal.RequireFromString("0.006018323"),
		UseParking:                    decimal.RequireFromString("0.000214421"),
		UsePerformingArts:             decimal.RequireFromString("0.002472539"),
		UsePersonalServices:           decimal.RequireFromString("0.004843037"),
		UsePreSchoolDaycare:           decimal.RequireFromString("0.002362874"),
		UseRefrigeratedWarehouse:      decimal.RequireFromString("0.002852131"),
		UseResidenceHallDormitory:     decimal.RequireFromString("0.002464089"),
		UseRestaurant:                 decimal.RequireFromString("0.004038374"),
		UseRetailStore:                decimal.RequireFromString("0.00210449"),
		UseSelfStorageFacility:        decimal.RequireFromString("0.00061183"),
		UseSeniorCareCommunity:        decimal.RequireFromString("0.004410123"),
		UseSocialMeetingHall:          decimal.RequireFromString("0.003833108"),
		UseStripMall:                  decimal.RequireFromString("0.001361842"),
		UseSupermarketGroceryStore:    decimal.RequireFromString("0.00675519"),
		UseUrgentCareClinic:           decimal.RequireFromString("0.05772375"),
		UseVocationalSchool:           decimal.RequireFromString("0.004613122"),
		UseWholesaleClubSupercenter:   decimal.RequireFromString("0.004264962"),
		UseWorshipFacility:            decimal.RequireFromString("0.001230602"),
	},
}

// EmissionsFactor returns the tCO2e-per-sqft allowance factor for a use type
// in a period. ok is false when the period has no factor for the use type.
func EmissionsFactor(p Period, ut UseType) (decimal.Decimal, bool) {
	f, ok := emissionsFactors[p][ut]
	return f, ok
}
