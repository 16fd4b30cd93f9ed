package scoring

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/money"
)

// Compare scores a full cohort and produces the ranked comparison:
// descending trust score, ties broken by lower landed cost, then vendor
// name. The cohort envelope is snapshotted once before any vendor is
// scored.
func Compare(vendors []model.VendorRecord, pr model.BuyerPriorities, p Policy) (model.ComparisonResult, error) {
	if err := ValidatePriorities(pr); err != nil {
		return model.ComparisonResult{}, err
	}
	if len(vendors) == 0 {
		return model.ComparisonResult{}, &EmptyCohortError{}
	}
	for i := range vendors {
		if err := ValidateRecord(vendors[i]); err != nil {
			return model.ComparisonResult{}, err
		}
	}

	snapshot := NewCohort(vendors)

	ranked := make([]model.RankedVendor, 0, len(vendors))
	for _, rec := range vendors {
		breakdown := ComputeBreakdown(rec, snapshot, p)
		n := NormalizeRecord(rec)
		ranked = append(ranked, model.RankedVendor{
			VendorName:      rec.VendorName,
			NexusTrustScore: Aggregate(breakdown, pr),
			TotalLandedCost: rec.TotalLandedCost,
			RiskLevel:       n.RiskLevel,
			ScoreBreakdown:  breakdown,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return rankLess(ranked[i], ranked[j])
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	winner := ranked[0]
	savings := snapshot.MaxCost - winner.TotalLandedCost
	if savings < 0 {
		savings = 0
	}

	result := model.ComparisonResult{
		Vendors: ranked,
		Comparison: model.Comparison{
			RecommendedVendor:           winner.VendorName,
			RecommendationJustification: buildJustification(ranked, pr),
			SavingsVsMostExpensive:      round2(savings),
		},
	}

	zap.L().Info("scoring: comparison complete",
		zap.Int("cohort_size", len(vendors)),
		zap.String("recommended", winner.VendorName),
		zap.Float64("top_score", winner.NexusTrustScore),
	)

	return result, nil
}

// rankLess orders vendors best-first: higher score, then lower landed
// cost, then name ascending. The three keys make the order total, so
// equal inputs always rank identically.
func rankLess(a, b model.RankedVendor) bool {
	if a.NexusTrustScore != b.NexusTrustScore {
		return a.NexusTrustScore > b.NexusTrustScore
	}
	if a.TotalLandedCost != b.TotalLandedCost {
		return a.TotalLandedCost < b.TotalLandedCost
	}
	return a.VendorName < b.VendorName
}

// buildJustification renders the recommendation sentence: winner, score,
// landed cost, risk profile, and the criterion contributing the most
// weighted points, plus a runner-up clause when the cohort has one.
func buildJustification(ranked []model.RankedVendor, pr model.BuyerPriorities) string {
	winner := ranked[0]

	s := fmt.Sprintf("%s is recommended with a Nexus Trust Score of %.1f/100. "+
		"Total landed cost is %s with a %s risk profile. Strongest weighted criterion: %s.",
		winner.VendorName,
		winner.NexusTrustScore,
		money.FormatUSD(winner.TotalLandedCost),
		winner.RiskLevel,
		topContributor(winner.ScoreBreakdown, pr),
	)

	if len(ranked) > 1 {
		runnerUp := ranked[1]
		s += fmt.Sprintf(" Runner-up: %s (Score: %.1f/100).", runnerUp.VendorName, runnerUp.NexusTrustScore)
	}
	return s
}

// topContributor picks the criterion with the highest weighted
// contribution. Ties resolve in the fixed dimension priority order.
func topContributor(b model.ScoreBreakdown, pr model.BuyerPriorities) model.Dimension {
	weights := map[model.Dimension]float64{
		model.DimensionCost:    pr.Cost,
		model.DimensionQuality: pr.Quality,
		model.DimensionSpeed:   pr.Speed,
		model.DimensionRisk:    pr.Risk,
	}

	top := dimensionPriority[0]
	best := weights[top] * b.Dimension(top)
	for _, d := range dimensionPriority[1:] {
		if contribution := weights[d] * b.Dimension(d); contribution > best {
			top, best = d, contribution
		}
	}
	return top
}
