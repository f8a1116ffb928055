package waterfall

import (
	"context"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/penalty"
	"github.com/buildingcarbon/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Orchestrator runs the five resolution stages for one building key and
// checkpoints the accumulated record to the metrics store after usage, after
// penalty and after narrative. Each checkpoint writes the full record, so a
// later checkpoint supersedes earlier partial data for the same run.
//
// Only key validation fails a run. Every other failure is absorbed: the
// caller always receives a best-effort record reflecting whichever stages
// contributed, with the provenance list saying which those were.
type Orchestrator struct {
	identity  *IdentityResolver
	usage     *UsageFetcher
	audits    *AuditRetriever
	store     MetricsStore
	narrative NarrativeGenerator
	archive   AuditArchiver // optional
	logger    *zap.Logger
}

// NewOrchestrator creates a new orchestrator. narrative and archive may be
// nil when those stages are disabled.
func NewOrchestrator(
	identity *IdentityResolver,
	usage *UsageFetcher,
	audits *AuditRetriever,
	store MetricsStore,
	narrative NarrativeGenerator,
	archive AuditArchiver,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		identity:  identity,
		usage:     usage,
		audits:    audits,
		store:     store,
		narrative: narrative,
		archive:   archive,
		logger:    logger,
	}
}

// Resolve runs the full pipeline for a BBL string, canonical or dashed. The only error
// it returns is a key validation failure; "no data for this key" is a normal
// outcome readable from the returned record.
func (o *Orchestrator) Resolve(ctx context.Context, rawBBL string) (*building.Record, error) {
	bbl, err := building.ParseDashedBBL(rawBBL)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "waterfall.resolve")
	defer span.End()

	rec := building.NewRecord(bbl)

	o.identity.Resolve(ctx, rec)
	o.usage.Fetch(ctx, rec)
	o.checkpoint(ctx, rec, "usage")

	o.audits.Retrieve(ctx, rec)
	if o.archive != nil && rec.AuditID != nil {
		if err := o.archive.Archive(ctx, rec); err != nil {
			o.logger.Warn("audit payload archive failed",
				zap.String("bbl", string(bbl)), zap.Error(err))
		}
	}

	rec.ApplyAssessment(penalty.Calculate(
		rec.ElectricityKWH,
		rec.NaturalGasKBTU,
		rec.FuelOilKBTU,
		rec.SteamKBTU,
		rec.UseTypeAreas,
	))
	o.checkpoint(ctx, rec, "penalty")

	o.generateNarratives(ctx, rec)
	o.checkpoint(ctx, rec, "narrative")

	o.logger.Info("resolution complete",
		zap.String("bbl", string(bbl)),
		zap.Int("sources", len(rec.Provenance)),
		zap.Bool("assessed", rec.Assessment != nil))
	return rec, nil
}

// checkpoint upserts the full accumulated record. Persistence failures are
// logged and absorbed; the pipeline continues on the in-memory record.
func (o *Orchestrator) checkpoint(ctx context.Context, rec *building.Record, stage string) {
	if err := o.store.Upsert(ctx, rec); err != nil {
		o.logger.Error("checkpoint write failed, continuing in memory",
			zap.String("bbl", string(rec.BBL)),
			zap.String("stage", stage),
			zap.Error(err))
	}
}

// generateNarratives runs the narrative stage. The generator reports
// per-category failures inside its result; a failure of the generator as a
// whole just leaves the record without narratives.
func (o *Orchestrator) generateNarratives(ctx context.Context, rec *building.Record) {
	if o.narrative == nil || rec.AuditPayload == nil {
		return
	}
	texts, err := o.narrative.Generate(ctx, rec)
	if err != nil {
		o.logger.Warn("narrative generation failed",
			zap.String("bbl", string(rec.BBL)), zap.Error(err))
		return
	}
	rec.ApplyNarratives(texts)
}
