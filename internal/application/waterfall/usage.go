package waterfall

import (
	"context"
	"strings"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/retry"
	"go.uber.org/zap"
)

// UsageFetcher resolves annual energy usage for a building: the live
// benchmarking source by BBL first, then by BIN with a false-match guard,
// then the characteristics source for year-built and floor area only.
type UsageFetcher struct {
	usage  UsageSource
	chars  CharacteristicsSource
	retry  retry.Policy
	logger *zap.Logger
}

// NewUsageFetcher creates a new usage fetcher.
func NewUsageFetcher(
	usage UsageSource,
	chars CharacteristicsSource,
	policy retry.Policy,
	logger *zap.Logger,
) *UsageFetcher {
	return &UsageFetcher{
		usage:  usage,
		chars:  chars,
		retry:  policy,
		logger: logger,
	}
}

// Fetch merges usage data into rec. BIN lookups are guarded: a record whose
// embedded BBL differs from the key being resolved is a false match (BINs
// legitimately map to multiple buildings) and is discarded as a miss.
func (f *UsageFetcher) Fetch(ctx context.Context, rec *building.Record) {
	bbl := rec.BBL

	var u *building.UsageRecord
	err := f.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		u, err = f.usage.GetByBBL(ctx, bbl)
		return err
	})
	if err == nil && u != nil {
		rec.ApplyUsage(u)
		rec.AddSource(building.SourceUsageLive)
		return
	}
	f.logMiss("benchmarking by BBL", bbl, err)

	for _, bin := range candidateBINs(rec.BIN) {
		err = f.retry.Do(ctx, func(ctx context.Context) error {
			var err error
			u, err = f.usage.GetByBIN(ctx, bin)
			return err
		})
		if err != nil || u == nil {
			f.logMiss("benchmarking by BIN "+bin, bbl, err)
			continue
		}
		if u.BBL != "" && u.BBL != bbl {
			f.logger.Warn("BIN lookup returned a different building, discarding",
				zap.String("bbl", string(bbl)),
				zap.String("bin", bin),
				zap.String("matched_bbl", string(u.BBL)))
			continue
		}
		rec.ApplyUsage(u)
		rec.AddSource(building.SourceUsageLive)
		return
	}

	// Last resort. Characteristics never carry energy quantities; only
	// year-built and floor area are taken from here.
	var chars *building.Characteristics
	err = f.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		chars, err = f.chars.Get(ctx, bbl)
		return err
	})
	if err != nil || chars.Empty() {
		f.logMiss("tax lot characteristics", bbl, err)
		return
	}
	if rec.YearBuilt == nil {
		rec.YearBuilt = chars.YearBuilt
	}
	if rec.GFA == nil {
		rec.GFA = chars.GFA
	}
	rec.AddSource(building.SourceCharacteristics)
}

// candidateBINs splits a possibly multi-valued BIN field. Campus lots list
// several BINs separated by semicolons.
func candidateBINs(bin string) []string {
	if bin == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(bin, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (f *UsageFetcher) logMiss(source string, bbl building.BBL, err error) {
	if err == nil || shared.IsNotFound(err) {
		f.logger.Debug("usage source miss",
			zap.String("source", source),
			zap.String("bbl", string(bbl)))
		return
	}
	f.logger.Warn("usage source failed, treating as miss",
		zap.String("source", source),
		zap.String("bbl", string(bbl)),
		zap.Error(err))
}
