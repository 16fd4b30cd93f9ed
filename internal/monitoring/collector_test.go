package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/store"
)

func seedAnalysis(t *testing.T, st store.Store, name string, score float64, level model.RiskLevel, expired bool, age time.Duration) {
	t.Helper()
	a := &model.VendorAnalysis{
		VendorName:      name,
		CreatedAt:       time.Now().UTC().Add(-age),
		NexusTrustScore: score,
	}
	a.Record.VendorName = name
	a.Risk.RiskLevel = level
	a.Metadata.Expired = expired
	require.NoError(t, st.SaveAnalysis(context.Background(), a))
}

func TestCollector_Snapshot(t *testing.T) {
	st := store.NewMemory()
	seedAnalysis(t, st, "Alpha", 70, model.RiskLow, false, time.Hour)
	seedAnalysis(t, st, "Beta", 50, model.RiskModerate, false, time.Hour)
	seedAnalysis(t, st, "Gamma", 30, model.RiskHigh, true, time.Hour)
	require.NoError(t, st.AppendAudit(context.Background(), model.AuditEntry{Action: "SINGLE_ANALYSIS"}))

	snap, err := NewCollector(st).Collect(context.Background(), 24)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.AnalysesTotal)
	assert.InDelta(t, 50.0, snap.AvgTrustScore, 0.001)
	assert.InDelta(t, 30.0, snap.MinTrustScore, 0.001)
	assert.InDelta(t, 70.0, snap.MaxTrustScore, 0.001)
	assert.Equal(t, 1, snap.LowRisk)
	assert.Equal(t, 1, snap.ModerateRisk)
	assert.Equal(t, 1, snap.HighRisk)
	assert.InDelta(t, 1.0/3.0, snap.HighRiskShare, 0.001)
	assert.Equal(t, 1, snap.ExpiredQuotes)
	assert.Equal(t, 1, snap.AuditEntries)
	assert.Equal(t, 24, snap.LookbackHours)
	assert.False(t, snap.CollectedAt.IsZero())
}

func TestCollector_LookbackFiltersOld(t *testing.T) {
	st := store.NewMemory()
	seedAnalysis(t, st, "Fresh", 80, model.RiskLow, false, time.Hour)
	seedAnalysis(t, st, "Stale", 20, model.RiskHigh, false, 48*time.Hour)

	snap, err := NewCollector(st).Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.AnalysesTotal)
	assert.InDelta(t, 80.0, snap.AvgTrustScore, 0.001)
	assert.Equal(t, 0, snap.HighRisk)

	// A non-positive lookback covers everything.
	all, err := NewCollector(st).Collect(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, all.AnalysesTotal)
	assert.Equal(t, 1, all.HighRisk)
}

func TestCollector_EmptyStore(t *testing.T) {
	snap, err := NewCollector(store.NewMemory()).Collect(context.Background(), 24)
	require.NoError(t, err)

	assert.Equal(t, 0, snap.AnalysesTotal)
	assert.Zero(t, snap.AvgTrustScore)
	assert.Zero(t, snap.HighRiskShare)
	assert.Zero(t, snap.AuditEntries)
}
