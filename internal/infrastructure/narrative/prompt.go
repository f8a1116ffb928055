package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/buildingcarbon/backend/internal/domain/building"
)

// categoryKeywords groups audit payload fields under a narrative category by
// substring match on the field name. The payload schema varies by reporting
// period, so matching is by keyword rather than a fixed field list.
var categoryKeywords = map[building.NarrativeCategory][]string{
	building.NarrativeEnvelope:        {"envelope", "wall", "roof", "window", "insulation", "facade"},
	building.NarrativeHeating:         {"heating", "boiler", "burner", "heat_exchanger", "furnace", "radiator"},
	building.NarrativeCooling:         {"cooling", "chiller", "cooling_tower", "condenser", "chilled_water"},
	building.NarrativeAirDistribution: {"air_handling", "ahu", "rooftop_unit", "packaged_unit", "ductwork", "vav"},
	building.NarrativeVentilation:     {"ventilation", "makeup_air", "doas", "energy_recovery", "exhaust_fan"},
	building.NarrativeHotWater:        {"hot_water", "dhw", "water_heater", "storage_tank"},
}

// extractEquipmentData pulls the payload fields relevant to one category,
// rendered as "field: value" lines in stable order.
func extractEquipmentData(payload map[string]any, category building.NarrativeCategory) string {
	if len(payload) == 0 {
		return "No audit data available for this building."
	}

	keywords := categoryKeywords[category]
	var lines []string
	for field, value := range payload {
		if value == nil {
			continue
		}
		lower := strings.ToLower(field)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				lines = append(lines, fmt.Sprintf("%s: %v", field, value))
				break
			}
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("No %s data documented in the audit.", strings.ToLower(string(category)))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// buildPrompt assembles the per-category user prompt from the building
// context and the category's audit payload fields.
func buildPrompt(rec *building.Record, category building.NarrativeCategory) string {
	yearBuilt := "Not documented"
	if rec.YearBuilt != nil {
		yearBuilt = fmt.Sprintf("%d", *rec.YearBuilt)
	}
	propertyType := rec.PropertyType
	if propertyType == "" {
		propertyType = "Not documented"
	}
	gfa := "0"
	if rec.GFA != nil {
		gfa = fmt.Sprintf("%.0f", *rec.GFA)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s Narrative for this building.\n\n", category)
	b.WriteString("BUILDING CONTEXT:\n")
	fmt.Fprintf(&b, "- Year Built: %s\n", yearBuilt)
	fmt.Fprintf(&b, "- Property Type: %s\n", propertyType)
	fmt.Fprintf(&b, "- Gross Floor Area: %s sqft\n", gfa)
	fmt.Fprintf(&b, "- Electricity Use: %s kWh\n", rec.ElectricityKWH.String())
	fmt.Fprintf(&b, "- Natural Gas Use: %s kBtu\n", rec.NaturalGasKBTU.String())
	fmt.Fprintf(&b, "- Fuel Oil #2 Use: %s kBtu\n", rec.FuelOilKBTU.String())
	fmt.Fprintf(&b, "- District Steam Use: %s kBtu\n", rec.SteamKBTU.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "AUDIT DATA FOR %s:\n", strings.ToUpper(string(category)))
	b.WriteString(extractEquipmentData(rec.AuditPayload, category))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Write a factual 1-2 paragraph narrative about the %s. ", strings.ToLower(string(category)))
	b.WriteString("If equipment details are not available, state that the specific systems are not documented in the available audit data.")
	return b.String()
}
