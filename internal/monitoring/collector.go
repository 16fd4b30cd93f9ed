// Package monitoring aggregates stored analyses into health snapshots
// and raises webhook alerts when the cohort quality degrades.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/store"
)

// collectScanLimit bounds how many records one snapshot considers.
const collectScanLimit = 10000

// MetricsSnapshot holds a point-in-time view of the analysis store.
type MetricsSnapshot struct {
	// Analysis metrics (within lookback window).
	AnalysesTotal int     `json:"analyses_total"`
	AvgTrustScore float64 `json:"avg_trust_score"`
	MinTrustScore float64 `json:"min_trust_score"`
	MaxTrustScore float64 `json:"max_trust_score"`

	// Risk distribution.
	LowRisk       int     `json:"low_risk"`
	ModerateRisk  int     `json:"moderate_risk"`
	HighRisk      int     `json:"high_risk"`
	HighRiskShare float64 `json:"high_risk_share"`

	// Quote hygiene.
	ExpiredQuotes int `json:"expired_quotes"`

	// Audit activity.
	AuditEntries int `json:"audit_entries"`

	// Metadata.
	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers metrics from the analysis store.
type Collector struct {
	store store.Store
}

// NewCollector creates a new metrics collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// Collect gathers a snapshot over the given lookback window. A
// non-positive lookback covers the whole store.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*MetricsSnapshot, error) {
	snap := &MetricsSnapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   time.Now().UTC(),
	}

	var cutoff time.Time
	if lookbackHours > 0 {
		cutoff = time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)
	}

	analyses, err := c.store.ListAnalyses(ctx, store.ListFilter{Limit: collectScanLimit})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list analyses")
	}

	var totalScore float64
	for _, a := range analyses {
		if !cutoff.IsZero() && a.CreatedAt.Before(cutoff) {
			continue
		}
		snap.AnalysesTotal++
		totalScore += a.NexusTrustScore
		if snap.AnalysesTotal == 1 || a.NexusTrustScore < snap.MinTrustScore {
			snap.MinTrustScore = a.NexusTrustScore
		}
		if a.NexusTrustScore > snap.MaxTrustScore {
			snap.MaxTrustScore = a.NexusTrustScore
		}

		switch a.Risk.RiskLevel {
		case model.RiskLow:
			snap.LowRisk++
		case model.RiskModerate:
			snap.ModerateRisk++
		case model.RiskHigh:
			snap.HighRisk++
		}
		if a.Metadata.Expired {
			snap.ExpiredQuotes++
		}
	}

	if snap.AnalysesTotal > 0 {
		snap.AvgTrustScore = totalScore / float64(snap.AnalysesTotal)
		snap.HighRiskShare = float64(snap.HighRisk) / float64(snap.AnalysesTotal)
	}

	entries, err := c.store.ListAudit(ctx, collectScanLimit)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list audit entries")
	}
	for _, e := range entries {
		if !cutoff.IsZero() && e.Timestamp.Before(cutoff) {
			continue
		}
		snap.AuditEntries++
	}

	return snap, nil
}
