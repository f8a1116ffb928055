package waterfall

import (
	"context"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/retry"
	"go.uber.org/zap"
)

// AuditRetriever picks the single most recent mechanical-audit row for a
// key: newer reporting period first, then highest audit id within it.
type AuditRetriever struct {
	audits AuditSource
	retry  retry.Policy
	logger *zap.Logger
}

// NewAuditRetriever creates a new audit retriever.
func NewAuditRetriever(audits AuditSource, policy retry.Policy, logger *zap.Logger) *AuditRetriever {
	return &AuditRetriever{
		audits: audits,
		retry:  policy,
		logger: logger,
	}
}

// Retrieve merges the latest audit row, if any, into rec.
func (a *AuditRetriever) Retrieve(ctx context.Context, rec *building.Record) {
	bbl := rec.BBL

	var rows []building.AuditRecord
	err := a.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		rows, err = a.audits.Rows(ctx, bbl)
		return err
	})
	if err != nil {
		if shared.IsNotFound(err) {
			a.logger.Debug("no audit rows", zap.String("bbl", string(bbl)))
		} else {
			a.logger.Warn("audit source failed, treating as miss",
				zap.String("bbl", string(bbl)), zap.Error(err))
		}
		return
	}

	latest := building.LatestAudit(rows)
	if latest == nil {
		return
	}
	rec.ApplyAudit(latest)
	rec.AddSource(building.SourceAudit)
}
