package building

// ReportingPeriod labels one of the two disjoint audit reporting windows.
type ReportingPeriod string

const (
	AuditPeriod2019to2024 ReportingPeriod = "2019-2024"
	AuditPeriod2012to2018 ReportingPeriod = "2012-2018"
)

// AuditRecord is one mechanical-audit filing for a building. The payload is
// free-form and varies by reporting period; nothing here validates it beyond
// carrying it to the narrative generator.
type AuditRecord struct {
	BBL     BBL
	AuditID int // monotonically increasing within a reporting period
	Period  ReportingPeriod
	Payload map[string]any
}

// periodRank orders reporting periods newest first.
func periodRank(p ReportingPeriod) int {
	if p == AuditPeriod2019to2024 {
		return 0
	}
	return 1
}

// MoreRecentThan reports whether a wins over b under the audit selection
// order: the newer reporting period first, the highest audit id within it.
func (a *AuditRecord) MoreRecentThan(b *AuditRecord) bool {
	if ra, rb := periodRank(a.Period), periodRank(b.Period); ra != rb {
		return ra < rb
	}
	return a.AuditID > b.AuditID
}

// LatestAudit selects the single audit row to use for a building, or nil when
// no rows exist. The order is total: newer period beats older period even when
// the older row carries a higher audit id.
func LatestAudit(rows []AuditRecord) *AuditRecord {
	var best *AuditRecord
	for i := range rows {
		if best == nil || rows[i].MoreRecentThan(best) {
			best = &rows[i]
		}
	}
	return best
}
