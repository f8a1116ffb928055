package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/cache"
	"github.com/buildingcarbon/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	rec   *building.Record
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, rawBBL string) (*building.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.rec != nil {
		return s.rec, nil
	}
	bbl, err := building.ParseBBL(rawBBL)
	if err != nil {
		return nil, err
	}
	return building.NewRecord(bbl), nil
}

type stubStore struct {
	rec     *building.Record
	recErr  error
	updated *time.Time
	updErr  error
}

func (s *stubStore) Get(_ context.Context, _ building.BBL) (*building.Record, error) {
	if s.recErr != nil {
		return nil, s.recErr
	}
	return s.rec, nil
}

func (s *stubStore) LastUpdated(_ context.Context, _ building.BBL) (*time.Time, error) {
	if s.updErr != nil {
		return nil, s.updErr
	}
	return s.updated, nil
}

func newTestRouter(h *BuildingHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func resolvedRecord() *building.Record {
	rec := building.NewRecord("1011190036")
	rec.ApplyIdentity(&building.IdentityRecord{
		BBL:      "1011190036",
		BIN:      "1033284",
		Pathways: []building.PathwayFlag{building.PathwayArticle320For2024},
	})
	rec.AddSource(building.SourcePrimaryIdentity)
	return rec
}

func doRequest(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestBuildingHandler_Resolve(t *testing.T) {
	t.Run("resolves and returns the record", func(t *testing.T) {
		resolver := &stubResolver{rec: resolvedRecord()}
		resolutionCache := cache.NewInMemoryResolutionCache()
		h := NewBuildingHandler(resolver, &stubStore{}, resolutionCache, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodPost, "/api/v1/buildings/1011190036/resolve")

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "1011190036", data["bbl"])
		assert.Equal(t, "Manhattan", data["borough"])
		assert.Equal(t, []any{"primary_identity"}, data["data_sources"])

		ts, err := resolutionCache.LastResolved(context.Background(), "1011190036")
		require.NoError(t, err)
		assert.NotNil(t, ts)
	})

	t.Run("malformed bbl is a validation error", func(t *testing.T) {
		resolver := &stubResolver{err: shared.ErrInvalidBBL}
		h := NewBuildingHandler(resolver, &stubStore{}, nil, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodPost, "/api/v1/buildings/99/resolve")

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_VALIDATION", errInfo["code"])
		assert.NotEmpty(t, errInfo["request_id"])
	})

	t.Run("unexpected failure is an internal error", func(t *testing.T) {
		resolver := &stubResolver{err: errors.New("boom")}
		h := NewBuildingHandler(resolver, &stubStore{}, nil, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodPost, "/api/v1/buildings/1011190036/resolve")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestBuildingHandler_Get(t *testing.T) {
	t.Run("returns the stored record", func(t *testing.T) {
		h := NewBuildingHandler(&stubResolver{}, &stubStore{rec: resolvedRecord()}, nil, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodGet, "/api/v1/buildings/1011190036")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, "CP0 (2024)", data["pathway_label"])
	})

	t.Run("unresolved building is not found", func(t *testing.T) {
		h := NewBuildingHandler(&stubResolver{}, &stubStore{recErr: shared.ErrNotFound}, nil, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodGet, "/api/v1/buildings/1011190036")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("dashed bbl is accepted", func(t *testing.T) {
		h := NewBuildingHandler(&stubResolver{}, &stubStore{rec: resolvedRecord()}, nil, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodGet, "/api/v1/buildings/1-01119-0036")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, "1011190036", data["bbl"])
	})

	t.Run("malformed bbl is rejected before the store", func(t *testing.T) {
		h := NewBuildingHandler(&stubResolver{}, &stubStore{recErr: errors.New("must not be reached")}, nil, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodGet, "/api/v1/buildings/abc")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBuildingHandler_Status(t *testing.T) {
	resolvedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("cache hit skips the store", func(t *testing.T) {
		resolutionCache := cache.NewInMemoryResolutionCache()
		require.NoError(t, resolutionCache.MarkResolved(context.Background(), "1011190036", resolvedAt, time.Hour))
		store := &stubStore{updErr: errors.New("must not be reached")}
		h := NewBuildingHandler(&stubResolver{}, store, resolutionCache, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodGet, "/api/v1/buildings/1011190036/status")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, true, data["processed"])
		assert.NotEmpty(t, data["last_resolved_at"])
	})

	t.Run("store hit repopulates the cache", func(t *testing.T) {
		resolutionCache := cache.NewInMemoryResolutionCache()
		store := &stubStore{updated: &resolvedAt}
		h := NewBuildingHandler(&stubResolver{}, store, resolutionCache, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodGet, "/api/v1/buildings/1011190036/status")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, true, data["processed"])

		ts, err := resolutionCache.LastResolved(context.Background(), "1011190036")
		require.NoError(t, err)
		require.NotNil(t, ts)
		assert.True(t, ts.Equal(resolvedAt))
	})

	t.Run("never-resolved building reads as unprocessed", func(t *testing.T) {
		store := &stubStore{updErr: shared.ErrNotFound}
		h := NewBuildingHandler(&stubResolver{}, store, nil, zap.NewNop())

		w := doRequest(newTestRouter(h), http.MethodGet, "/api/v1/buildings/1011190036/status")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, false, data["processed"])
		assert.NotContains(t, data, "last_resolved_at")
	})
}
