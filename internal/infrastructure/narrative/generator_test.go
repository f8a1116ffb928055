package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubModel struct {
	prompts  []string
	response string
	failOn   string // substring; prompts containing it fail
}

func (s *stubModel) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.failOn != "" && strings.Contains(prompt, s.failOn) {
		return "", errors.New("model overloaded")
	}
	return s.response, nil
}

func auditedRecord() *building.Record {
	year := 1971
	gfa := 2300000.0
	rec := building.NewRecord("1011190036")
	rec.YearBuilt = &year
	rec.PropertyType = "Office"
	rec.GFA = &gfa
	rec.ElectricityKWH = decimal.RequireFromString("12250000")
	rec.AuditPayload = map[string]any{
		"heating_system_type": "steam boiler",
		"chiller_count":       2,
		"roof_construction":   "built-up membrane",
		"owner_contact":       "should never appear in equipment data",
	}
	return rec
}

func TestGeneratorProducesAllSixCategories(t *testing.T) {
	model := &stubModel{response: "The system is documented."}
	gen := NewGeneratorWithModel(model, config.NarrativeConfig{}, zap.NewNop())

	out, err := gen.Generate(context.Background(), auditedRecord())
	require.NoError(t, err)

	require.Len(t, out, 6)
	for _, category := range building.NarrativeCategories() {
		assert.Equal(t, "The system is documented.", out[category])
	}
	assert.Len(t, model.prompts, 6)
}

func TestGeneratorCapturesPerCategoryFailures(t *testing.T) {
	model := &stubModel{
		response: "The system is documented.",
		failOn:   "Cooling System Narrative",
	}
	gen := NewGeneratorWithModel(model, config.NarrativeConfig{}, zap.NewNop())

	out, err := gen.Generate(context.Background(), auditedRecord())
	require.NoError(t, err)

	require.Len(t, out, 6)
	assert.Equal(t, "Error generating narrative: model overloaded", out[building.NarrativeCooling])
	assert.Equal(t, "The system is documented.", out[building.NarrativeHeating])
}

func TestExtractEquipmentData(t *testing.T) {
	payload := auditedRecord().AuditPayload

	t.Run("groups fields by keyword", func(t *testing.T) {
		heating := extractEquipmentData(payload, building.NarrativeHeating)
		assert.Contains(t, heating, "heating_system_type: steam boiler")
		assert.NotContains(t, heating, "chiller_count")

		cooling := extractEquipmentData(payload, building.NarrativeCooling)
		assert.Contains(t, cooling, "chiller_count: 2")

		envelope := extractEquipmentData(payload, building.NarrativeEnvelope)
		assert.Contains(t, envelope, "roof_construction: built-up membrane")
		assert.NotContains(t, envelope, "owner_contact")
	})

	t.Run("category with no matching fields reads as not documented", func(t *testing.T) {
		hotWater := extractEquipmentData(payload, building.NarrativeHotWater)
		assert.Equal(t, "No domestic hot water system data documented in the audit.", hotWater)
	})

	t.Run("nil payload reads as no audit data", func(t *testing.T) {
		assert.Equal(t, "No audit data available for this building.",
			extractEquipmentData(nil, building.NarrativeHeating))
	})
}

func TestBuildPromptCarriesBuildingContext(t *testing.T) {
	prompt := buildPrompt(auditedRecord(), building.NarrativeHeating)

	assert.Contains(t, prompt, "Generate a Heating System Narrative")
	assert.Contains(t, prompt, "- Year Built: 1971")
	assert.Contains(t, prompt, "- Property Type: Office")
	assert.Contains(t, prompt, "- Gross Floor Area: 2300000 sqft")
	assert.Contains(t, prompt, "- Electricity Use: 12250000 kWh")
	assert.Contains(t, prompt, "AUDIT DATA FOR HEATING SYSTEM:")
	assert.Contains(t, prompt, "heating_system_type: steam boiler")
}

func TestBuildPromptWithMissingContext(t *testing.T) {
	rec := building.NewRecord("2000010001")
	prompt := buildPrompt(rec, building.NarrativeEnvelope)

	assert.Contains(t, prompt, "- Year Built: Not documented")
	assert.Contains(t, prompt, "- Property Type: Not documented")
	assert.Contains(t, prompt, "No audit data available for this building.")
}
