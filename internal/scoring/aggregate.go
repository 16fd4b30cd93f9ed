package scoring

import (
	"go.uber.org/zap"

	"github.com/nexus-group/quote-intel/internal/model"
)

// ComputeBreakdown scores one vendor against a cohort snapshot. The
// record is normalized internally; sub-scores are rounded to one decimal
// place, matching what callers persist and serve.
func ComputeBreakdown(rec model.VendorRecord, c Cohort, p Policy) model.ScoreBreakdown {
	n := NormalizeRecord(rec)
	return model.ScoreBreakdown{
		CostScore:    round1(scoreCost(n.TotalLandedCost, c)),
		QualityScore: round1(scoreQuality(n, p.Quality)),
		SpeedScore:   round1(scoreSpeed(n.DeliveryDays, c)),
		RiskScore:    round1(scoreRisk(n, p.Risk)),
	}
}

// Aggregate blends a breakdown into the Nexus Trust Score using the
// buyer's weights. Priorities are assumed validated.
func Aggregate(b model.ScoreBreakdown, pr model.BuyerPriorities) float64 {
	total := pr.Cost*b.CostScore +
		pr.Quality*b.QualityScore +
		pr.Speed*b.SpeedScore +
		pr.Risk*b.RiskScore
	return round1(total)
}

// ScoreOne validates and scores a single vendor against a cohort. The
// vendor always counts as a cohort member, so a vendor with no
// competitors scores 100 on both relative criteria. Cohort members are
// validated too; the first invalid record aborts the call.
func ScoreOne(rec model.VendorRecord, cohort []model.VendorRecord, pr model.BuyerPriorities, p Policy) (model.ScoreBreakdown, float64, error) {
	if err := ValidatePriorities(pr); err != nil {
		return model.ScoreBreakdown{}, 0, err
	}
	if err := ValidateRecord(rec); err != nil {
		return model.ScoreBreakdown{}, 0, err
	}
	for i := range cohort {
		if err := ValidateRecord(cohort[i]); err != nil {
			return model.ScoreBreakdown{}, 0, err
		}
	}

	snapshot := NewCohort(cohort).including(rec)
	breakdown := ComputeBreakdown(rec, snapshot, p)
	score := Aggregate(breakdown, pr)

	zap.L().Debug("scoring: scored vendor",
		zap.String("vendor", rec.VendorName),
		zap.Float64("nexus_trust_score", score),
		zap.Int("cohort_size", snapshot.Size),
	)

	return breakdown, score, nil
}
