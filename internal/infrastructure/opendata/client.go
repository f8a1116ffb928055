// Package opendata implements the external data source clients: the energy
// benchmarking and tax-lot Socrata datasets and the GeoSearch geocoder.
// Clients classify failures into the shared error taxonomy; retrying is the
// caller's job.
package opendata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client is the shared HTTP layer under the dataset clients. One per-call
// timeout and one app token apply to every request.
type Client struct {
	httpClient *http.Client
	appToken   string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient creates a shared open-data HTTP client.
func NewClient(timeout time.Duration, appToken string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		appToken:   appToken,
		timeout:    timeout,
		logger:     logger,
	}
}

// getJSON issues a GET and decodes the body into out. HTTP status codes map
// onto the error taxonomy: 429 is rate limiting, 5xx is a server-side
// failure, everything else non-2xx is a miss.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := endpoint
	if len(params) > 0 {
		u = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", endpoint, shared.ErrTimeout)
		}
		return fmt.Errorf("%s: %v: %w", endpoint, err, shared.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", endpoint, shared.ErrRateLimited)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s: status %d: %w", endpoint, resp.StatusCode, shared.ErrSourceUnavailable)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: status %d: %w", endpoint, resp.StatusCode, shared.ErrNotFound)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}

// Socrata returns every value as a string; newer datasets mix in numbers.
// The helpers below accept both.

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asIntPtr(v any) *int {
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		if n == "" {
			return nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		i := int(f)
		return &i
	default:
		return nil
	}
}

func asFloatPtr(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if n == "" {
			return nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func asDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case string:
		if n == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
