// Package penalty implements the deterministic Article 320 penalty engine:
// energy usage and floor-area-by-use-type in, emissions, emissions limit and
// monetary penalty out, for both compliance periods.
//
// All arithmetic is decimal; binary floating point would drift in a value
// ultimately expressed as currency. The coefficient and factor tables are
// rate-law constants loaded once into read-only package state and never
// mutated at runtime.
package penalty

import "github.com/shopspring/decimal"

// Period is one of the two fixed compliance periods, each with its own
// carbon coefficients and emissions factors.
type Period string

const (
	Period2024to2029 Period = "2024-2029"
	Period2030to2034 Period = "2030-2034"
)

// Periods returns the compliance periods in chronological order.
func Periods() []Period {
	return []Period{Period2024to2029, Period2030to2034}
}

// Fuel is one of the four energy sources a building reports, each in its own
// native unit.
type Fuel string

const (
	FuelElectricity Fuel = "electricity" // kWh
	FuelNaturalGas  Fuel = "natural_gas" // kBtu
	FuelFuelOil     Fuel = "fuel_oil"    // kBtu
	FuelSteam       Fuel = "steam"       // kBtu
)

// PenaltyRatePerTon is the monetary penalty per ton of CO2e over the limit,
// in dollars. Period-independent.
var PenaltyRatePerTon = decimal.NewFromInt(268)

// carbonCoefficients maps (period, fuel) to tCO2e per native unit.
var carbonCoefficients = map[Period]map[Fuel]decimal.Decimal{
	Period2024to2029: {
		FuelElectricity: decimal.RequireFromString("0.000288962"), // tCO2e per kWh
		FuelNaturalGas:  decimal.RequireFromString("0.00005311"),  // tCO2e per kBtu
		FuelFuelOil:     decimal.RequireFromString("0.00007421"),  // tCO2e per kBtu
		FuelSteam:       decimal.RequireFromString("0.00004493"),  // tCO2e per kBtu
	},
	Period2030to2034: {
		FuelElectricity: decimal.RequireFromString("0.000145"),
		FuelNaturalGas:  decimal.RequireFromString("0.00005311"),
		FuelFuelOil:     decimal.RequireFromString("0.00007421"),
		FuelSteam:       decimal.RequireFromString("0.0000432"),
	},
}

// CarbonCoefficient returns the tCO2e-per-native-unit coefficient for a fuel
// in a period.
func CarbonCoefficient(p Period, f Fuel) decimal.Decimal {
	return carbonCoefficients[p][f]
}
