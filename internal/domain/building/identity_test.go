package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathwayLabel(t *testing.T) {
	tests := []struct {
		name     string
		flags    []PathwayFlag
		expected string
	}{
		{"no flags", nil, "None assigned"},
		{"empty slice", []PathwayFlag{}, "None assigned"},
		{"single", []PathwayFlag{PathwayArticle320For2024}, "CP0 (2024)"},
		{
			"two in order",
			[]PathwayFlag{PathwayArticle320For2024, PathwayCityPortfolio},
			"CP0 (2024), CP4 (City Portfolio)",
		},
		{
			"order is fixed regardless of input order",
			[]PathwayFlag{PathwayCityPortfolio, PathwayArticle320For2024, PathwayArticle320For2026},
			"CP0 (2024), CP1 (2026), CP4 (City Portfolio)",
		},
		{
			"all flags",
			[]PathwayFlag{
				PathwayArticle321OneTime, PathwayArticle320For2035, PathwayCityPortfolio,
				PathwayArticle320For2026, PathwayArticle320For2024,
			},
			"CP0 (2024), CP1 (2026), CP2 (2035), CP3 (One-Time), CP4 (City Portfolio)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PathwayLabel(tt.flags))
		})
	}
}

func TestGeocodeResult_Accepted(t *testing.T) {
	assert.True(t, (&GeocodeResult{Confidence: 0.8}).Accepted())
	assert.True(t, (&GeocodeResult{Confidence: 1.0}).Accepted())
	assert.False(t, (&GeocodeResult{Confidence: 0.79}).Accepted())
	assert.False(t, (&GeocodeResult{Confidence: 0}).Accepted())
}
