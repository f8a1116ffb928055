package building

import "github.com/shopspring/decimal"

// Energy unit conversion factors. Each fuel is reported in its native unit;
// conversion is for display alongside kBtu, never applied before the carbon
// coefficients.
var (
	// 1 kWh = 3.412 kBtu
	KWHToKBTU = decimal.NewFromFloat(3.412)
	// 1 therm = 100 kBtu
	ThermsToKBTU = decimal.NewFromInt(100)
	// 1 gallon of fuel oil #2 = 138.5 kBtu
	GallonsFuelOilToKBTU = decimal.NewFromFloat(138.5)
	// 1 Mlb (thousand pounds) of district steam = 1,194 kBtu
	MlbsSteamToKBTU = decimal.NewFromInt(1194)
)

// KWHAsKBTU converts electricity from kWh to kBtu.
func KWHAsKBTU(kwh decimal.Decimal) decimal.Decimal {
	return kwh.Mul(KWHToKBTU)
}

// KBTUAsTherms converts natural gas from kBtu to therms.
func KBTUAsTherms(kbtu decimal.Decimal) decimal.Decimal {
	return kbtu.Div(ThermsToKBTU)
}

// KBTUAsGallonsFuelOil converts fuel oil #2 from kBtu to gallons.
func KBTUAsGallonsFuelOil(kbtu decimal.Decimal) decimal.Decimal {
	return kbtu.Div(GallonsFuelOilToKBTU)
}

// KBTUAsMlbsSteam converts district steam from kBtu to Mlbs.
func KBTUAsMlbsSteam(kbtu decimal.Decimal) decimal.Decimal {
	return kbtu.Div(MlbsSteamToKBTU)
}
