package waterfall

import (
	"context"
	"testing"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsageFetcher(usage UsageSource, chars CharacteristicsSource) *UsageFetcher {
	return NewUsageFetcher(usage, chars, testPolicy(), testLogger())
}

func TestUsagePrimaryHitByBBL(t *testing.T) {
	usage := &stubUsageSource{byBBL: &building.UsageRecord{
		BBL:            testBBL,
		ElectricityKWH: decimal.NewFromInt(1200000),
	}}
	chars := &stubCharacteristicsSource{}

	rec := building.NewRecord(testBBL)
	newUsageFetcher(usage, chars).Fetch(context.Background(), rec)

	assert.Equal(t, []building.Source{building.SourceUsageLive}, rec.Provenance)
	assert.Empty(t, usage.binCalls, "a BBL hit must not trigger BIN lookups")
	assert.True(t, rec.ElectricityKWH.IsPositive())
}

func TestUsageSecondaryLookupGuardDiscardsFalseMatch(t *testing.T) {
	// The BIN resolves to a record for a different BBL. The guard must
	// discard it and fall through to characteristics.
	year := 1931
	usage := &stubUsageSource{
		byBBLErr: shared.ErrNotFound,
		byBIN: map[string]*building.UsageRecord{
			"1034482": {BBL: building.BBL("1000050001"), ElectricityKWH: decimal.NewFromInt(99)},
		},
	}
	chars := &stubCharacteristicsSource{rec: &building.Characteristics{YearBuilt: &year}}

	rec := building.NewRecord(testBBL)
	rec.BIN = "1034482"
	newUsageFetcher(usage, chars).Fetch(context.Background(), rec)

	assert.Equal(t, []building.Source{building.SourceCharacteristics}, rec.Provenance)
	assert.True(t, rec.ElectricityKWH.IsZero(), "a guarded-out record must contribute nothing")
	assert.Equal(t, 1931, *rec.YearBuilt)
}

func TestUsageSecondaryLookupAcceptsGuardedHit(t *testing.T) {
	usage := &stubUsageSource{
		byBBLErr: shared.ErrNotFound,
		byBIN: map[string]*building.UsageRecord{
			"1034482": {BBL: testBBL, NaturalGasKBTU: decimal.NewFromInt(500000)},
		},
	}
	chars := &stubCharacteristicsSource{}

	rec := building.NewRecord(testBBL)
	rec.BIN = "1034482"
	newUsageFetcher(usage, chars).Fetch(context.Background(), rec)

	assert.Equal(t, []building.Source{building.SourceUsageLive}, rec.Provenance)
	assert.True(t, rec.NaturalGasKBTU.IsPositive())
}

func TestUsageTriesEachBINOnCampusLots(t *testing.T) {
	usage := &stubUsageSource{
		byBBLErr: shared.ErrNotFound,
		byBIN: map[string]*building.UsageRecord{
			"1034483": {BBL: testBBL, SteamKBTU: decimal.NewFromInt(1000)},
		},
	}
	chars := &stubCharacteristicsSource{}

	rec := building.NewRecord(testBBL)
	rec.BIN = "1034482; 1034483"
	newUsageFetcher(usage, chars).Fetch(context.Background(), rec)

	require.Equal(t, []string{"1034482", "1034483"}, usage.binCalls)
	assert.Equal(t, []building.Source{building.SourceUsageLive}, rec.Provenance)
}

func TestUsageCharacteristicsFallbackFillsYearAndGFAOnly(t *testing.T) {
	year := 1931
	gfa := 104500.0
	usage := &stubUsageSource{byBBLErr: shared.ErrNotFound}
	chars := &stubCharacteristicsSource{rec: &building.Characteristics{
		YearBuilt: &year,
		GFA:       &gfa,
		OwnerName: "ACME HOLDINGS LLC",
	}}

	rec := building.NewRecord(testBBL)
	newUsageFetcher(usage, chars).Fetch(context.Background(), rec)

	assert.Equal(t, []building.Source{building.SourceCharacteristics}, rec.Provenance)
	assert.Equal(t, 1931, *rec.YearBuilt)
	assert.Equal(t, 104500.0, *rec.GFA)
	assert.Empty(t, rec.OwnerName, "usage fallback takes year-built and floor area only")
}

func TestUsageCompleteMissLeavesRecordUntouched(t *testing.T) {
	usage := &stubUsageSource{byBBLErr: shared.ErrNotFound}
	chars := &stubCharacteristicsSource{err: shared.ErrNotFound}

	rec := building.NewRecord(testBBL)
	newUsageFetcher(usage, chars).Fetch(context.Background(), rec)

	assert.Empty(t, rec.Provenance)
	assert.Nil(t, rec.YearBuilt)
}

func TestCandidateBINs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "1034482", []string{"1034482"}},
		{"campus", "1034482;1034483; 1034484", []string{"1034482", "1034483", "1034484"}},
		{"trailing separator", "1034482;", []string{"1034482"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, candidateBINs(tt.in))
		})
	}
}
