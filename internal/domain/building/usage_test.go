package building

import (
	"testing"

	"github.com/buildingcarbon/backend/internal/domain/penalty"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUseTypeAreas_CalculatedGFA(t *testing.T) {
	areas := UseTypeAreas{
		penalty.UseOffice:             decimal.NewFromInt(50000),
		penalty.UseHotel:              decimal.NewFromInt(30000),
		penalty.UseParking:            decimal.NewFromInt(-200), // negative is absent
		penalty.UseRetailStore:        decimal.Zero,             // zero is absent
		penalty.UseMultifamilyHousing: decimal.NewFromInt(20000),
	}

	assert.True(t, decimal.NewFromInt(100000).Equal(areas.CalculatedGFA()))
}

func TestUseTypeAreas_CalculatedGFA_Empty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(UseTypeAreas{}.CalculatedGFA()))
	assert.True(t, decimal.Zero.Equal(UseTypeAreas(nil).CalculatedGFA()))
}

func TestUseTypeAreas_Positive(t *testing.T) {
	areas := UseTypeAreas{
		penalty.UseOffice:  decimal.NewFromInt(50000),
		penalty.UseParking: decimal.NewFromInt(-1),
		penalty.UseHotel:   decimal.Zero,
	}

	positive := areas.Positive()
	assert.Len(t, positive, 1)
	assert.Contains(t, positive, penalty.UseOffice)
}

func TestUsageRecord_HasEnergyData(t *testing.T) {
	tests := []struct {
		name     string
		record   UsageRecord
		expected bool
	}{
		{"all zero", UsageRecord{}, false},
		{"electricity only", UsageRecord{ElectricityKWH: decimal.NewFromInt(100)}, true},
		{"gas only", UsageRecord{NaturalGasKBTU: decimal.NewFromInt(1)}, true},
		{"fuel oil only", UsageRecord{FuelOilKBTU: decimal.NewFromFloat(0.5)}, true},
		{"steam only", UsageRecord{SteamKBTU: decimal.NewFromInt(9)}, true},
		{"negative electricity is absent", UsageRecord{ElectricityKWH: decimal.NewFromInt(-5)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.HasEnergyData())
		})
	}
}
