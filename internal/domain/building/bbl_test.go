package building

import (
	"testing"

	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBBL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"manhattan", "1011190036", false},
		{"bronx", "2028370001", false},
		{"brooklyn", "3000010001", false},
		{"queens", "4000010001", false},
		{"staten island", "5000010001", false},
		{"empty", "", true},
		{"too short", "101119003", true},
		{"too long", "10111900361", true},
		{"non digit", "10111900a6", true},
		{"embedded space", "1011 90036", true},
		{"borough zero", "0011190036", true},
		{"borough six", "6011190036", true},
		{"borough nine", "9011190036", true},
		{"dashed form rejected by canonical parser", "1-01119-0036", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bbl, err := ParseBBL(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidBBL)
				assert.Empty(t, bbl)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input, bbl.String())
			}
		})
	}
}

func TestBBL_Dashed_RoundTrip(t *testing.T) {
	for _, s := range []string{"1011190036", "2000010001", "3999999999", "4012340567", "5000320099"} {
		bbl, err := ParseBBL(s)
		require.NoError(t, err)

		back, err := ParseDashedBBL(bbl.Dashed())
		require.NoError(t, err)
		assert.Equal(t, bbl, back)
	}
}

func TestBBL_Dashed_Format(t *testing.T) {
	bbl, err := ParseBBL("1011190036")
	require.NoError(t, err)
	assert.Equal(t, "1-01119-0036", bbl.Dashed())
	assert.Equal(t, "01119", bbl.Block())
	assert.Equal(t, "0036", bbl.Lot())
}

func TestParseDashedBBL_Invalid(t *testing.T) {
	_, err := ParseDashedBBL("1-01119-003")
	assert.ErrorIs(t, err, shared.ErrInvalidBBL)

	_, err = ParseDashedBBL("6-01119-0036")
	assert.ErrorIs(t, err, shared.ErrInvalidBBL)
}

func TestBBL_BoroughName(t *testing.T) {
	tests := []struct {
		bbl      string
		expected string
	}{
		{"1011190036", "Manhattan"},
		{"2011190036", "Bronx"},
		{"3011190036", "Brooklyn"},
		{"4011190036", "Queens"},
		{"5011190036", "Staten Island"},
	}

	for _, tt := range tests {
		bbl, err := ParseBBL(tt.bbl)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, bbl.BoroughName())
	}
}
