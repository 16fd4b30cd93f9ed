package scoring

import (
	"math"

	"github.com/nexus-group/quote-intel/internal/model"
)

// scoreCost returns the cohort-relative cost score on a 0-100 scale.
// The cheapest vendor in the cohort scores 100 and the most expensive
// scores 0. A degenerate cohort (every cost equal, including a cohort of
// one) scores 100 for everyone.
func scoreCost(cost float64, c Cohort) float64 {
	if c.MaxCost <= c.MinCost {
		return 100
	}
	return clamp(100 * (1 - (cost-c.MinCost)/(c.MaxCost-c.MinCost)))
}

// scoreSpeed returns the cohort-relative speed score on a 0-100 scale.
// Shorter delivery scores higher; the degenerate rule matches scoreCost.
func scoreSpeed(days int, c Cohort) float64 {
	if c.MaxDays <= c.MinDays {
		return 100
	}
	spread := float64(c.MaxDays - c.MinDays)
	return clamp(100 * (1 - float64(days-c.MinDays)/spread))
}

// scoreQuality returns the absolute quality score on a 0-100 scale:
// a weighted blend of rating, ESG tier, and brand tier, plus a capped
// per-certification bonus. Expects a normalized record (unrated vendors
// already carry the 2.5 scoring default).
func scoreQuality(rec model.VendorRecord, p QualityPolicy) float64 {
	ratingPts := rec.Rating / 5 * 100

	esgPts, ok := p.ESGPoints[rec.ESGTier]
	if !ok {
		esgPts = p.ESGPoints[model.ESGUnknown]
	}
	brandPts, ok := p.BrandPoints[rec.BrandTier]
	if !ok {
		brandPts = p.BrandPoints[model.BrandTier2]
	}

	score := p.RatingWeight*ratingPts + p.ESGWeight*esgPts + p.BrandWeight*brandPts

	bonus := math.Min(float64(len(rec.Certifications))*p.CertBonus, p.CertBonusCap)

	return clamp(score + bonus)
}

// scoreRisk returns the absolute risk score on a 0-100 scale: start at
// 100, deduct per flagged clause, deduct for the risk level, floor at 0.
func scoreRisk(rec model.VendorRecord, p RiskPolicy) float64 {
	score := 100.0
	score -= float64(len(rec.RiskyClauses)) * p.ClauseDeduction
	score -= p.LevelDeductions[rec.RiskLevel]
	return clamp(score)
}

// clamp bounds a score to the 0-100 scale.
func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
