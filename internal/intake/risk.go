package intake

import (
	"github.com/nexus-group/quote-intel/internal/model"
)

// Risk points contributed by each structured signal. The point total
// only drives the risk level; per-clause score deductions happen in the
// scoring engine.
const (
	pointsFullUpfront         = 20
	pointsHalfUpfront         = 10
	pointsWarrantyPoor        = 10
	pointsWarrantyUnspecified = 15
	pointsBrandTier3          = 15
	pointsBrandTier2          = 5
	pointsLowRating           = 10
	pointsMidRating           = 5
	pointsPerClause           = 8
)

// Risk level thresholds over the accumulated points.
const (
	highRiskThreshold     = 30
	moderateRiskThreshold = 15
)

// ProfileRisk accumulates risk points from the quotation's structured
// signals and maps the total to a risk level. Clause text is taken as
// declared; nothing here scans contract language.
func ProfileRisk(q model.Quotation, terms model.TermsProfile, quality model.QualityProfile) model.RiskProfile {
	points := 0

	switch {
	case terms.UpfrontPct >= 100:
		points += pointsFullUpfront
	case terms.UpfrontPct >= 50:
		points += pointsHalfUpfront
	}

	switch terms.WarrantyClass {
	case model.WarrantyPoor:
		points += pointsWarrantyPoor
	case model.WarrantyNotSpecified:
		points += pointsWarrantyUnspecified
	}

	switch quality.BrandTier {
	case model.BrandTier3:
		points += pointsBrandTier3
	case model.BrandTier2:
		points += pointsBrandTier2
	}

	// Unrated vendors are not punished here; the scoring default
	// already lands them mid-scale.
	if r := quality.Rating; r > 0 {
		switch {
		case r < 3.0:
			points += pointsLowRating
		case r < 3.5:
			points += pointsMidRating
		}
	}

	clauses := model.CleanClauses(q.RiskyClauses)
	points += len(clauses) * pointsPerClause

	level := model.RiskLow
	switch {
	case points >= highRiskThreshold:
		level = model.RiskHigh
	case points >= moderateRiskThreshold:
		level = model.RiskModerate
	}

	return model.RiskProfile{
		RiskPoints:   points,
		RiskLevel:    level,
		RiskyClauses: clauses,
	}
}
