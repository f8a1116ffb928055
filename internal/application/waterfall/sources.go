// Package waterfall sequences the resolution pipeline for one building key:
// identity, usage, audit, penalty, narrative. Each stage is optional to
// succeed but always attempted in order, and each appends its provenance
// token only when it actually contributed data.
package waterfall

import (
	"context"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
)

// IdentitySource is the authoritative roll of covered buildings.
type IdentitySource interface {
	Get(ctx context.Context, bbl building.BBL) (*building.IdentityRecord, error)
}

// CharacteristicsSource supplies basic tax-lot facts. It never supplies
// energy quantities.
type CharacteristicsSource interface {
	Get(ctx context.Context, bbl building.BBL) (*building.Characteristics, error)
}

// GeocodeSource resolves a postal address to building keys with a
// confidence score.
type GeocodeSource interface {
	Resolve(ctx context.Context, address string) (*building.GeocodeResult, error)
}

// UsageSource is the live benchmarking dataset. Records fetched by BIN embed
// their own BBL so callers can reject false matches.
type UsageSource interface {
	GetByBBL(ctx context.Context, bbl building.BBL) (*building.UsageRecord, error)
	GetByBIN(ctx context.Context, bin string) (*building.UsageRecord, error)
}

// AuditSource returns every audit row on file for a key, across both
// reporting-period datasets. Ordering is the caller's concern.
type AuditSource interface {
	Rows(ctx context.Context, bbl building.BBL) ([]building.AuditRecord, error)
}

// MetricsStore is the persistence collaborator the orchestrator checkpoints
// to. Upsert writes the full accumulated record, superseding any earlier
// checkpoint for the same key.
type MetricsStore interface {
	Upsert(ctx context.Context, rec *building.Record) error
	Get(ctx context.Context, bbl building.BBL) (*building.Record, error)
	LastUpdated(ctx context.Context, bbl building.BBL) (*time.Time, error)
}

// NarrativeGenerator turns the audit payload into per-category prose.
// Best-effort: per-category failures are reported inside the returned map as
// error markers, never as a pipeline failure.
type NarrativeGenerator interface {
	Generate(ctx context.Context, rec *building.Record) (map[building.NarrativeCategory]string, error)
}

// AuditArchiver stores raw audit payloads out of band. Failures are logged
// and ignored.
type AuditArchiver interface {
	Archive(ctx context.Context, rec *building.Record) error
}
