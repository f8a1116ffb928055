package opendata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	return NewClient(2*time.Second, "test-token", zap.NewNop())
}

func TestGetJSONSendsAppToken(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-App-Token")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var out []map[string]any
	err := newTestClient(t).getJSON(context.Background(), srv.URL, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "test-token", gotToken)
}

func TestGetJSONErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, shared.ErrRateLimited},
		{"server error", http.StatusInternalServerError, shared.ErrSourceUnavailable},
		{"bad gateway", http.StatusBadGateway, shared.ErrSourceUnavailable},
		{"not found", http.StatusNotFound, shared.ErrNotFound},
		{"bad request", http.StatusBadRequest, shared.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			var out []map[string]any
			err := newTestClient(t).getJSON(context.Background(), srv.URL, nil, &out)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(20*time.Millisecond, "", zap.NewNop())
	var out []map[string]any
	err := c.getJSON(context.Background(), srv.URL, nil, &out)
	require.Error(t, err)
	assert.True(t, shared.IsTransient(err), "a deadline overrun is a transient failure, got %v", err)
}

func TestConversionHelpers(t *testing.T) {
	assert.Equal(t, "x", asString("x"))
	assert.Equal(t, "", asString(nil))

	require.NotNil(t, asIntPtr("1931"))
	assert.Equal(t, 1931, *asIntPtr("1931"))
	assert.Equal(t, 12, *asIntPtr(12.0))
	assert.Nil(t, asIntPtr("Not Available"))
	assert.Nil(t, asIntPtr(""))

	require.NotNil(t, asFloatPtr("104500.5"))
	assert.Equal(t, 104500.5, *asFloatPtr("104500.5"))
	assert.Nil(t, asFloatPtr(nil))

	assert.Equal(t, "3155.17", asDecimal("3155.17").String())
	assert.True(t, asDecimal("garbage").IsZero())
	assert.True(t, asDecimal(nil).IsZero())
}
