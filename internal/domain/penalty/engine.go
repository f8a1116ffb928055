package penalty

import (
	"github.com/shopspring/decimal"
)

// Result holds the three figures for one compliance period, each quantized to
// two fractional digits, round half up.
type Result struct {
	Emissions decimal.Decimal `json:"emissions"` // tCO2e
	Limit     decimal.Decimal `json:"limit"`     // tCO2e
	Penalty   decimal.Decimal `json:"penalty"`   // dollars
}

// Assessment holds the penalty results for both compliance periods. A nil
// *Assessment means no energy data was available; a non-nil Assessment always
// carries all six values. There is no partial state in between: a building
// with no usage data must never read as "compliant, zero penalty".
type Assessment struct {
	ByPeriod map[Period]Result `json:"by_period"`
}

// Calculate runs the three-step penalty formula for both compliance periods:
//
//  1. emissions = sum over fuels of quantity x carbon coefficient
//  2. limit     = sum over use-type areas of area x emissions factor
//  3. penalty   = max(emissions - limit, 0) x $268/tCO2e
//
// Quantities at or below zero are absent. When all four fuels are absent the
// result is nil regardless of areas. Pure: no I/O, no shared state.
func Calculate(electricityKWH, naturalGasKBTU, fuelOilKBTU, steamKBTU decimal.Decimal, areas UseTypeAreas) *Assessment {
	hasEnergy := electricityKWH.IsPositive() ||
		naturalGasKBTU.IsPositive() ||
		fuelOilKBTU.IsPositive() ||
		steamKBTU.IsPositive()
	if !hasEnergy {
		return nil
	}

	assessment := &Assessment{ByPeriod: make(map[Period]Result, 2)}
	for _, p := range Periods() {
		emissions := Emissions(electricityKWH, naturalGasKBTU, fuelOilKBTU, steamKBTU, p)
		limit := EmissionsLimit(areas, p)

		excess := emissions.Sub(limit)
		if excess.IsNegative() {
			excess = decimal.Zero
		}
		assessment.ByPeriod[p] = Result{
			Emissions: emissions,
			Limit:     limit,
			Penalty:   excess.Mul(PenaltyRatePerTon).Round(2),
		}
	}
	return assessment
}

// Emissions computes total GHG emissions in tCO2e for a period, quantized to
// two fractional digits. Non-positive quantities contribute nothing.
func Emissions(electricityKWH, naturalGasKBTU, fuelOilKBTU, steamKBTU decimal.Decimal, p Period) decimal.Decimal {
	total := decimal.Zero
	for _, fq := range []struct {
		fuel Fuel
		qty  decimal.Decimal
	}{
		{FuelElectricity, electricityKWH},
		{FuelNaturalGas, naturalGasKBTU},
		{FuelFuelOil, fuelOilKBTU},
		{FuelSteam, steamKBTU},
	} {
		if fq.qty.IsPositive() {
			total = total.Add(fq.qty.Mul(CarbonCoefficient(p, fq.fuel)))
		}
	}
	return total.Round(2)
}

// EmissionsLimit computes the regulatory emissions ceiling in tCO2e for a
// period from floor area by use type, quantized to two fractional digits.
// Use types with no factor for the period contribute zero.
func EmissionsLimit(areas UseTypeAreas, p Period) decimal.Decimal {
	limit := decimal.Zero
	for ut, area := range areas {
		if !area.IsPositive() {
			continue
		}
		factor, ok := EmissionsFactor(p, ut)
		if !ok {
			continue
		}
		limit = limit.Add(area.Mul(factor))
	}
	return limit.Round(2)
}
