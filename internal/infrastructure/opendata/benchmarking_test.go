package opendata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/penalty"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const benchmarkingRow = `[{
	"bbl_10_digits": "1011190036",
	"year_built": "1931",
	"largest_property_use_type": "Office",
	"property_gfa_self_reported": "104500",
	"electricity_use_grid_purchase_1": "10000000",
	"natural_gas_use_kbtu": "5000000",
	"fuel_oil_2_use_kbtu": "",
	"district_steam_use_kbtu": "0",
	"site_eui_kbtu_ft": "143.5",
	"energy_star_score": "Not Available",
	"office_gross_floor_area_ft": "90000",
	"retail_store_gross_floor": "14500",
	"parking_gross_floor_area": "0"
}]`

func newBenchmarkingServer(t *testing.T, body string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r.URL.Query().Get("$where")
		}
		w.Write([]byte(body))
	}))
}

func TestGetByBBLMapsRow(t *testing.T) {
	var where string
	srv := newBenchmarkingServer(t, benchmarkingRow, &where)
	defer srv.Close()

	c := NewBenchmarkingClient(NewClient(2*time.Second, "", zap.NewNop()), srv.URL, zap.NewNop())
	rec, err := c.GetByBBL(context.Background(), building.BBL("1011190036"))
	require.NoError(t, err)

	assert.Equal(t, "bbl_10_digits='1011190036'", where)
	assert.Equal(t, building.BBL("1011190036"), rec.BBL)
	assert.Equal(t, 1931, *rec.YearBuilt)
	assert.Equal(t, "Office", rec.PropertyType)
	assert.Equal(t, 104500.0, *rec.GFA)
	assert.Nil(t, rec.EnergyStarScore, "non-numeric score stays absent")
	assert.Equal(t, "10000000", rec.ElectricityKWH.String())
	assert.Equal(t, "5000000", rec.NaturalGasKBTU.String())
	assert.True(t, rec.FuelOilKBTU.IsZero())

	// Only positive areas are carried; the zero parking figure is absent data.
	require.Len(t, rec.UseTypeAreas, 2)
	assert.Equal(t, "90000", rec.UseTypeAreas[penalty.UseOffice].String())
	assert.Equal(t, "14500", rec.UseTypeAreas[penalty.UseRetailStore].String())
}

func TestGetByBINUsesSubstringMatch(t *testing.T) {
	var where string
	srv := newBenchmarkingServer(t, benchmarkingRow, &where)
	defer srv.Close()

	c := NewBenchmarkingClient(NewClient(2*time.Second, "", zap.NewNop()), srv.URL, zap.NewNop())
	_, err := c.GetByBIN(context.Background(), "1034482")
	require.NoError(t, err)
	assert.Equal(t, "nyc_building_identification LIKE '%1034482%'", where)
}

func TestBenchmarkingEmptyResultIsNotFound(t *testing.T) {
	srv := newBenchmarkingServer(t, `[]`, nil)
	defer srv.Close()

	c := NewBenchmarkingClient(NewClient(2*time.Second, "", zap.NewNop()), srv.URL, zap.NewNop())
	_, err := c.GetByBBL(context.Background(), building.BBL("1011190036"))
	require.ErrorIs(t, err, shared.ErrNotFound)
}
