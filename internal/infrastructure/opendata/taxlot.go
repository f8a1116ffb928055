package opendata

import (
	"context"
	"fmt"
	"net/url"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TaxLotClient queries the city tax-lot dataset for basic building
// characteristics. It is the characteristics fallback of both the identity
// and usage stages; it never supplies energy quantities.
type TaxLotClient struct {
	client   *Client
	endpoint string
	logger   *zap.Logger
}

// NewTaxLotClient creates a tax-lot dataset client.
func NewTaxLotClient(client *Client, endpoint string, logger *zap.Logger) *TaxLotClient {
	return &TaxLotClient{client: client, endpoint: endpoint, logger: logger}
}

// Get fetches the tax-lot row for a BBL.
func (t *TaxLotClient) Get(ctx context.Context, bbl building.BBL) (*building.Characteristics, error) {
	params := url.Values{}
	params.Set("$where", fmt.Sprintf("bbl='%s'", bbl))
	params.Set("$limit", "1")

	var rows []map[string]any
	if err := t.client.getJSON(ctx, t.endpoint, params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}

	row := rows[0]
	c := &building.Characteristics{
		YearBuilt: asIntPtr(row["yearbuilt"]),
		NumFloors: asIntPtr(row["numfloors"]),
		GFA:       asFloatPtr(row["bldgarea"]),
		OwnerName: asString(row["ownername"]),
		Address:   asString(row["address"]),
		ZipCode:   asString(row["zipcode"]),
	}
	t.logger.Debug("tax lot row fetched",
		zap.String("bbl", string(bbl)),
		zap.Bool("has_address", c.Address != ""))
	return c, nil
}
