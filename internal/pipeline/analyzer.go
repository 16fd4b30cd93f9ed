// Package pipeline orchestrates quotation analysis end to end: intake
// normalization feeds the scoring engine, comparisons fan out across
// the cohort, and every result lands in a storable analysis envelope.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nexus-group/quote-intel/internal/intake"
	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/scoring"
)

// Analyzer runs quotations through intake and scoring.
type Analyzer struct {
	normalizer *intake.Normalizer
	policy     scoring.Policy
	now        func() time.Time
}

// NewAnalyzer builds an analyzer around the given intake normalizer
// and scoring policy. A nil normalizer falls back to the built-in
// currency rates.
func NewAnalyzer(n *intake.Normalizer, policy scoring.Policy) *Analyzer {
	if n == nil {
		n = intake.NewNormalizer(nil)
	}
	return &Analyzer{normalizer: n, policy: policy, now: time.Now}
}

// WithClock pins the timestamp source. Tests use this.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Policy returns the scoring policy the analyzer was built with.
func (a *Analyzer) Policy() scoring.Policy {
	return a.policy
}

// AnalyzeOne normalizes and scores a single quotation. Cohort
// quotations, when given, stretch the envelope the relative criteria
// score against; a solo vendor takes 100 on both.
func (a *Analyzer) AnalyzeOne(ctx context.Context, q model.Quotation, intel *model.MarketIntelligence, pr model.BuyerPriorities, cohort []model.Quotation) (*model.VendorAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: analyze")
	}

	log := zap.L().With(zap.String("vendor", q.VendorName))

	start := time.Now()
	norm := a.normalizer.Normalize(q)
	cohortRecords := make([]model.VendorRecord, 0, len(cohort))
	for _, cq := range cohort {
		cohortRecords = append(cohortRecords, a.normalizer.Normalize(cq).Record)
	}
	log.Debug("pipeline: intake complete",
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		zap.Strings("integrity_flags", norm.Metadata.IntegrityFlags),
	)

	start = time.Now()
	breakdown, score, err := scoring.ScoreOne(norm.Record, cohortRecords, pr, a.policy)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: score vendor")
	}
	log.Debug("pipeline: scoring complete",
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		zap.Float64("trust_score", score),
	)

	analysis := a.assemble(norm, intel, breakdown, score)

	log.Info("pipeline: analysis complete",
		zap.String("analysis_id", analysis.ID),
		zap.Float64("trust_score", analysis.NexusTrustScore),
		zap.String("weakest_dimension", string(analysis.Copilot.WeakestDimension)),
	)
	return analysis, nil
}

// ComparisonReport bundles the ranked comparison with the per-vendor
// analysis envelopes, reassembled in input order.
type ComparisonReport struct {
	Result   model.ComparisonResult
	Analyses []*model.VendorAnalysis
}

// Compare normalizes every quotation, ranks the cohort, and assembles
// one analysis envelope per vendor. The cohort envelope is snapshotted
// once; per-vendor scoring then fans out and results keep input order.
func (a *Analyzer) Compare(ctx context.Context, quotes []model.Quotation, pr model.BuyerPriorities) (*ComparisonReport, error) {
	log := zap.L().With(zap.Int("cohort_size", len(quotes)))

	start := time.Now()
	norms := make([]intake.Normalized, len(quotes))
	records := make([]model.VendorRecord, len(quotes))

	g, gCtx := errgroup.WithContext(ctx)
	for i, q := range quotes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			norms[i] = a.normalizer.Normalize(q)
			records[i] = norms[i].Record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: normalize cohort")
	}
	log.Debug("pipeline: intake complete",
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	start = time.Now()
	result, err := scoring.Compare(records, pr, a.policy)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: rank cohort")
	}

	cohort := scoring.NewCohort(records)
	analyses := make([]*model.VendorAnalysis, len(records))

	g, gCtx = errgroup.WithContext(ctx)
	for i := range records {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			b := scoring.ComputeBreakdown(records[i], cohort, a.policy)
			analyses[i] = a.assemble(norms[i], nil, b, scoring.Aggregate(b, pr))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: score cohort")
	}

	log.Info("pipeline: comparison complete",
		zap.String("recommended", result.Comparison.RecommendedVendor),
		zap.Float64("savings", result.Comparison.SavingsVsMostExpensive),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return &ComparisonReport{Result: result, Analyses: analyses}, nil
}

func (a *Analyzer) assemble(norm intake.Normalized, intel *model.MarketIntelligence, b model.ScoreBreakdown, score float64) *model.VendorAnalysis {
	return &model.VendorAnalysis{
		ID:              uuid.New().String(),
		CreatedAt:       a.now().UTC(),
		VendorName:      norm.Record.VendorName,
		Record:          norm.Record,
		Metadata:        norm.Metadata,
		Commercial:      norm.Commercial,
		Terms:           norm.Terms,
		Quality:         norm.Quality,
		Risk:            norm.Risk,
		NexusTrustScore: score,
		ScoreBreakdown:  b,
		Copilot:         scoring.WeakestDimension(b),
		Market:          intel,
		Source:          model.AnalysisSourceRuleBased,
	}
}
