package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestAudit_Empty(t *testing.T) {
	assert.Nil(t, LatestAudit(nil))
	assert.Nil(t, LatestAudit([]AuditRecord{}))
}

func TestLatestAudit_NewerPeriodWinsOverHigherID(t *testing.T) {
	rows := []AuditRecord{
		{AuditID: 9001, Period: AuditPeriod2012to2018},
		{AuditID: 12, Period: AuditPeriod2019to2024},
	}

	got := LatestAudit(rows)
	require.NotNil(t, got)
	assert.Equal(t, AuditPeriod2019to2024, got.Period)
	assert.Equal(t, 12, got.AuditID)
}

func TestLatestAudit_HighestIDWithinPeriod(t *testing.T) {
	rows := []AuditRecord{
		{AuditID: 101, Period: AuditPeriod2019to2024},
		{AuditID: 305, Period: AuditPeriod2019to2024},
		{AuditID: 204, Period: AuditPeriod2019to2024},
	}

	got := LatestAudit(rows)
	require.NotNil(t, got)
	assert.Equal(t, 305, got.AuditID)
}

func TestLatestAudit_OlderPeriodOnly(t *testing.T) {
	rows := []AuditRecord{
		{AuditID: 7, Period: AuditPeriod2012to2018},
		{AuditID: 3, Period: AuditPeriod2012to2018},
	}

	got := LatestAudit(rows)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.AuditID)
	assert.Equal(t, AuditPeriod2012to2018, got.Period)
}

func TestAuditRecord_MoreRecentThan_TotalOrder(t *testing.T) {
	newerLow := &AuditRecord{AuditID: 1, Period: AuditPeriod2019to2024}
	olderHigh := &AuditRecord{AuditID: 999, Period: AuditPeriod2012to2018}

	assert.True(t, newerLow.MoreRecentThan(olderHigh))
	assert.False(t, olderHigh.MoreRecentThan(newerLow))
}
