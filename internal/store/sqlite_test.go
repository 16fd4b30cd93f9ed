package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-group/quote-intel/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_SaveAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := makeAnalysis("Alpha Forge", 71.5, time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC))
	require.NoError(t, st.SaveAnalysis(ctx, a))
	require.NotEmpty(t, a.ID)

	got, err := st.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alpha Forge", got.VendorName)
	assert.InDelta(t, 71.5, got.NexusTrustScore, 0.001)
	assert.InDelta(t, 100, got.ScoreBreakdown.CostScore, 0.001)
	assert.Equal(t, model.RiskLow, got.Record.RiskLevel)
	assert.Equal(t, model.AnalysisSourceRuleBased, got.Source)
}

func TestSQLite_GetMissing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.GetAnalysis(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_DuplicateIDRejected(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := makeAnalysis("Alpha Forge", 71.5, time.Now().UTC())
	a.ID = "dup"
	require.NoError(t, st.SaveAnalysis(ctx, a))

	b := makeAnalysis("Borealis Supply", 44.4, time.Now().UTC())
	b.ID = "dup"
	require.Error(t, st.SaveAnalysis(ctx, b))
}

func TestSQLite_ListAnalyses(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)

	require.NoError(t, st.SaveAnalysis(ctx, makeAnalysis("Alpha Forge", 71.5, base)))
	require.NoError(t, st.SaveAnalysis(ctx, makeAnalysis("Borealis Supply", 44.4, base.Add(time.Minute))))
	require.NoError(t, st.SaveAnalysis(ctx, makeAnalysis("Alpha Forge", 70.1, base.Add(2*time.Minute))))

	all, err := st.ListAnalyses(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.InDelta(t, 70.1, all[0].NexusTrustScore, 0.001) // newest first

	filtered, err := st.ListAnalyses(ctx, ListFilter{VendorName: "alpha forge"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	limited, err := st.ListAnalyses(ctx, ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Borealis Supply", limited[0].VendorName)
}

func TestSQLite_SaveBatch(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	batch := []*model.VendorAnalysis{
		makeAnalysis("Alpha Forge", 71.5, now),
		makeAnalysis("Borealis Supply", 44.4, now),
	}
	require.NoError(t, st.SaveAnalyses(ctx, batch))

	all, err := st.ListAnalyses(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLite_ClearAnalyses(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveAnalysis(ctx, makeAnalysis("Alpha Forge", 71.5, time.Now().UTC())))
	require.NoError(t, st.SaveAnalysis(ctx, makeAnalysis("Borealis Supply", 44.4, time.Now().UTC())))

	n, err := st.ClearAnalyses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := st.ListAnalyses(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLite_Audit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.August, 25, 11, 0, 0, 0, time.UTC)

	require.NoError(t, st.AppendAudit(ctx, model.AuditEntry{
		Action:    "analyze",
		Timestamp: base,
	}))
	require.NoError(t, st.AppendAudit(ctx, model.AuditEntry{
		Action:    "compare",
		Details:   map[string]any{"vendors": float64(2)},
		Timestamp: base.Add(time.Minute),
	}))

	got, err := st.ListAudit(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "compare", got[0].Action)
	assert.Equal(t, map[string]any{"vendors": float64(2)}, got[0].Details)
	assert.Equal(t, "analyze", got[1].Action)
	assert.Nil(t, got[1].Details)

	one, err := st.ListAudit(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
