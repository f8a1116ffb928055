package opendata

import (
	"context"
	"net/url"
	"strings"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GeoSearchClient resolves postal addresses through the city's GeoSearch
// service. The confidence gate lives in the identity resolver, not here; the
// client reports whatever the top candidate scored.
type GeoSearchClient struct {
	client   *Client
	endpoint string
	logger   *zap.Logger
}

// NewGeoSearchClient creates a geocoder client.
func NewGeoSearchClient(client *Client, endpoint string, logger *zap.Logger) *GeoSearchClient {
	return &GeoSearchClient{client: client, endpoint: endpoint, logger: logger}
}

type geoSearchResponse struct {
	Features []struct {
		Properties struct {
			Confidence float64 `json:"confidence"`
			Label      string  `json:"label"`
			Addendum   struct {
				PAD struct {
					BBL string `json:"bbl"`
					BIN string `json:"bin"`
				} `json:"pad"`
			} `json:"addendum"`
		} `json:"properties"`
	} `json:"features"`
}

// Resolve geocodes an address and returns the top candidate.
func (g *GeoSearchClient) Resolve(ctx context.Context, address string) (*building.GeocodeResult, error) {
	if strings.TrimSpace(address) == "" {
		return nil, shared.ErrInvalidAddress
	}

	params := url.Values{}
	params.Set("text", address)

	var resp geoSearchResponse
	if err := g.client.getJSON(ctx, g.endpoint, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Features) == 0 {
		g.logger.Debug("geocoder returned no candidates", zap.String("address", address))
		return nil, shared.ErrNotFound
	}

	props := resp.Features[0].Properties
	return &building.GeocodeResult{
		BBL:        props.Addendum.PAD.BBL,
		BIN:        props.Addendum.PAD.BIN,
		Confidence: props.Confidence,
		Label:      props.Label,
	}, nil
}
