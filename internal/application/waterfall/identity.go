package waterfall

import (
	"context"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/retry"
	"go.uber.org/zap"
)

// IdentityResolver resolves a building key to its regulatory identity through
// an ordered fallback chain: covered-buildings roll, tax-lot characteristics,
// then geocoding the characteristics address. Exhausting the chain is not an
// error; the record keeps whatever fields were discovered.
type IdentityResolver struct {
	roll    IdentitySource
	chars   CharacteristicsSource
	geocode GeocodeSource
	retry   retry.Policy
	logger  *zap.Logger
}

// NewIdentityResolver creates a new identity resolver.
func NewIdentityResolver(
	roll IdentitySource,
	chars CharacteristicsSource,
	geocode GeocodeSource,
	policy retry.Policy,
	logger *zap.Logger,
) *IdentityResolver {
	return &IdentityResolver{
		roll:    roll,
		chars:   chars,
		geocode: geocode,
		retry:   policy,
		logger:  logger,
	}
}

// Resolve walks the fallback chain and merges whatever it finds into rec.
// All source failures are absorbed here: a transient failure that survives
// the retry budget counts as a miss for that source, nothing more.
func (r *IdentityResolver) Resolve(ctx context.Context, rec *building.Record) {
	bbl := rec.BBL

	var id *building.IdentityRecord
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		id, err = r.roll.Get(ctx, bbl)
		return err
	})
	if err == nil && id != nil {
		rec.ApplyIdentity(id)
		rec.AddSource(building.SourcePrimaryIdentity)
		return
	}
	r.logMiss("covered buildings roll", bbl, err)

	var chars *building.Characteristics
	err = r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		chars, err = r.chars.Get(ctx, bbl)
		return err
	})
	if err != nil || chars.Empty() {
		r.logMiss("tax lot characteristics", bbl, err)
		return
	}
	rec.ApplyCharacteristics(chars)
	rec.AddSource(building.SourceCharacteristics)

	// Geocoding needs an address. Characteristics without one end the chain.
	if chars.Address == "" {
		return
	}

	var geo *building.GeocodeResult
	err = r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		geo, err = r.geocode.Resolve(ctx, chars.Address)
		return err
	})
	if err != nil || geo == nil {
		r.logMiss("geocoder", bbl, err)
		return
	}
	if !geo.Accepted() {
		r.logger.Warn("geocoder match below confidence threshold, discarding",
			zap.String("bbl", string(bbl)),
			zap.String("address", chars.Address),
			zap.Float64("confidence", geo.Confidence))
		return
	}
	// An accepted match without a BIN carries nothing; the provenance token
	// is only owed when the stage actually contributed data.
	if geo.BIN == "" {
		return
	}
	rec.ApplyGeocode(geo)
	rec.AddSource(building.SourceGeocode)
}

func (r *IdentityResolver) logMiss(source string, bbl building.BBL, err error) {
	if err == nil || shared.IsNotFound(err) {
		r.logger.Debug("identity source miss",
			zap.String("source", source),
			zap.String("bbl", string(bbl)))
		return
	}
	r.logger.Warn("identity source failed, treating as miss",
		zap.String("source", source),
		zap.String("bbl", string(bbl)),
		zap.Error(err))
}
