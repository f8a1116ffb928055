package handler

import (
	"context"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/cache"
	"github.com/buildingcarbon/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// defaultStatusCacheTTL bounds how long a status read can skip the store.
const defaultStatusCacheTTL = time.Hour

// Resolver runs the full resolution pipeline for one building key.
type Resolver interface {
	Resolve(ctx context.Context, rawBBL string) (*building.Record, error)
}

// RecordStore reads resolved records and their checkpoint times.
type RecordStore interface {
	Get(ctx context.Context, bbl building.BBL) (*building.Record, error)
	LastUpdated(ctx context.Context, bbl building.BBL) (*time.Time, error)
}

// BuildingHandler serves the buildings API: trigger a resolution, read the
// stored record, check processing status.
type BuildingHandler struct {
	BaseHandler
	resolver Resolver
	store    RecordStore
	cache    cache.ResolutionCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewBuildingHandler creates a new BuildingHandler
func NewBuildingHandler(resolver Resolver, store RecordStore, resolutionCache cache.ResolutionCache, logger *zap.Logger) *BuildingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingHandler{
		resolver: resolver,
		store:    store,
		cache:    resolutionCache,
		cacheTTL: defaultStatusCacheTTL,
		logger:   logger,
	}
}

// RegisterRoutes registers the buildings routes on the API group.
func (h *BuildingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	buildings := rg.Group("/buildings")
	{
		buildings.POST("/:bbl/resolve", h.Resolve)
		buildings.GET("/:bbl", h.Get)
		buildings.GET("/:bbl/status", h.Status)
	}
}

// Resolve runs the resolution pipeline for a BBL and returns the resulting
// record. Accepts dashed input; a malformed BBL is the only client error.
func (h *BuildingHandler) Resolve(c *gin.Context) {
	rawBBL := c.Param("bbl")

	rec, err := h.resolver.Resolve(c.Request.Context(), rawBBL)
	if err != nil {
		if shared.IsValidation(err) {
			h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
			return
		}
		h.logger.Error("resolution failed",
			zap.String("bbl", rawBBL),
			zap.Error(err))
		h.InternalError(c, "resolution failed")
		return
	}

	h.markResolved(c.Request.Context(), rec)
	h.Success(c, dto.NewBuildingResponse(rec))
}

// Get returns the stored record for a BBL without re-resolving.
func (h *BuildingHandler) Get(c *gin.Context) {
	bbl, err := building.ParseDashedBBL(c.Param("bbl"))
	if err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	rec, err := h.store.Get(c.Request.Context(), bbl)
	if err != nil {
		if shared.IsNotFound(err) {
			h.NotFound(c, "building has not been resolved")
			return
		}
		h.logger.Error("record read failed",
			zap.String("bbl", string(bbl)),
			zap.Error(err))
		h.InternalError(c, "failed to read building record")
		return
	}

	h.Success(c, dto.NewBuildingResponse(rec))
}

// Status answers whether a BBL has been resolved and when, consulting the
// cache before the store.
func (h *BuildingHandler) Status(c *gin.Context) {
	bbl, err := building.ParseDashedBBL(c.Param("bbl"))
	if err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}
	ctx := c.Request.Context()

	if h.cache != nil {
		if ts, err := h.cache.LastResolved(ctx, string(bbl)); err == nil && ts != nil {
			h.Success(c, dto.StatusResponse{BBL: string(bbl), Processed: true, LastResolvedAt: ts})
			return
		}
	}

	ts, err := h.store.LastUpdated(ctx, bbl)
	if err != nil {
		if shared.IsNotFound(err) {
			h.Success(c, dto.StatusResponse{BBL: string(bbl), Processed: false})
			return
		}
		h.logger.Error("status read failed",
			zap.String("bbl", string(bbl)),
			zap.Error(err))
		h.InternalError(c, "failed to read building status")
		return
	}

	if h.cache != nil {
		if err := h.cache.MarkResolved(ctx, string(bbl), *ts, h.cacheTTL); err != nil {
			h.logger.Warn("failed to repopulate resolution cache",
				zap.String("bbl", string(bbl)),
				zap.Error(err))
		}
	}
	h.Success(c, dto.StatusResponse{BBL: string(bbl), Processed: true, LastResolvedAt: ts})
}

// markResolved records a fresh checkpoint in the cache, best-effort.
func (h *BuildingHandler) markResolved(ctx context.Context, rec *building.Record) {
	if h.cache == nil {
		return
	}
	if err := h.cache.MarkResolved(ctx, string(rec.BBL), rec.ResolvedAt, h.cacheTTL); err != nil {
		h.logger.Warn("failed to update resolution cache",
			zap.String("bbl", string(rec.BBL)),
			zap.Error(err))
	}
}
