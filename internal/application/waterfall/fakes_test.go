package waterfall

import (
	"context"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/building"
	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/buildingcarbon/backend/internal/infrastructure/retry"
	"go.uber.org/zap"
)

// Stub sources for exercising the waterfall without network or database.

type stubIdentitySource struct {
	rec   *building.IdentityRecord
	err   error
	calls int
}

func (s *stubIdentitySource) Get(ctx context.Context, bbl building.BBL) (*building.IdentityRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

type stubCharacteristicsSource struct {
	rec   *building.Characteristics
	err   error
	calls int
}

func (s *stubCharacteristicsSource) Get(ctx context.Context, bbl building.BBL) (*building.Characteristics, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

type stubGeocodeSource struct {
	rec   *building.GeocodeResult
	err   error
	calls int
}

func (s *stubGeocodeSource) Resolve(ctx context.Context, address string) (*building.GeocodeResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

type stubUsageSource struct {
	byBBL    *building.UsageRecord
	byBBLErr error
	byBIN    map[string]*building.UsageRecord
	binCalls []string
}

func (s *stubUsageSource) GetByBBL(ctx context.Context, bbl building.BBL) (*building.UsageRecord, error) {
	if s.byBBLErr != nil {
		return nil, s.byBBLErr
	}
	return s.byBBL, nil
}

func (s *stubUsageSource) GetByBIN(ctx context.Context, bin string) (*building.UsageRecord, error) {
	s.binCalls = append(s.binCalls, bin)
	if u, ok := s.byBIN[bin]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

type stubAuditSource struct {
	rows []building.AuditRecord
	err  error
}

func (s *stubAuditSource) Rows(ctx context.Context, bbl building.BBL) ([]building.AuditRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

type memStore struct {
	upserts []building.Record
	err     error
}

func (m *memStore) Upsert(ctx context.Context, rec *building.Record) error {
	if m.err != nil {
		return m.err
	}
	m.upserts = append(m.upserts, *rec)
	return nil
}

func (m *memStore) Get(ctx context.Context, bbl building.BBL) (*building.Record, error) {
	if len(m.upserts) == 0 {
		return nil, shared.ErrNotFound
	}
	last := m.upserts[len(m.upserts)-1]
	return &last, nil
}

func (m *memStore) LastUpdated(ctx context.Context, bbl building.BBL) (*time.Time, error) {
	if len(m.upserts) == 0 {
		return nil, shared.ErrNotFound
	}
	ts := m.upserts[len(m.upserts)-1].ResolvedAt
	return &ts, nil
}

type stubNarrativeGenerator struct {
	texts map[building.NarrativeCategory]string
	err   error
}

func (s *stubNarrativeGenerator) Generate(ctx context.Context, rec *building.Record) (map[building.NarrativeCategory]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.texts, nil
}

// flakyIdentitySource fails with a transient error a fixed number of times
// before succeeding, for retry-demotion tests.
type flakyIdentitySource struct {
	failures int
	rec      *building.IdentityRecord
	calls    int
}

func (s *flakyIdentitySource) Get(ctx context.Context, bbl building.BBL) (*building.IdentityRecord, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, shared.ErrRateLimited
	}
	return s.rec, nil
}

func testPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
