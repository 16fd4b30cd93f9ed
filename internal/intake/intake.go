// Package intake turns raw vendor quotations into the normalized
// records the scoring engine consumes. It parses free-text commercial
// terms, rolls up landed cost in USD, classifies quality and risk
// signals, and flags integrity problems, without rejecting anything:
// validation is the scoring engine's job.
package intake

import (
	"strings"
	"time"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/money"
)

// Normalized bundles everything intake derives from one quotation. The
// Record is what downstream scoring consumes; the profiles preserve the
// intermediate classifications for reporting.
type Normalized struct {
	Record     model.VendorRecord
	Metadata   model.QuoteMetadata
	Commercial model.CommercialRollup
	Terms      model.TermsProfile
	Quality    model.QualityProfile
	Risk       model.RiskProfile
}

// Normalizer converts quotations using a fixed currency table and
// clock. The zero value is not usable; construct with NewNormalizer.
type Normalizer struct {
	conv *money.Converter
	now  func() time.Time
}

// NewNormalizer returns a Normalizer backed by conv. A nil conv falls
// back to the built-in rate table.
func NewNormalizer(conv *money.Converter) *Normalizer {
	if conv == nil {
		conv = money.NewConverter(nil)
	}
	return &Normalizer{conv: conv, now: time.Now}
}

// WithClock overrides the clock used for quote expiry checks. Tests
// use this to pin "now".
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Normalize derives the vendor record and supporting profiles from a
// raw quotation. It never returns an error: missing or malformed
// fields degrade to documented defaults and integrity flags, and the
// scoring engine decides what is fatal.
func (n *Normalizer) Normalize(q model.Quotation) Normalized {
	commercial := RollupCommercial(q, n.conv)
	terms := ProfileTerms(q)
	quality := ProfileQuality(q)
	risk := ProfileRisk(q, terms, quality)
	metadata := EvaluateMetadata(q, n.now())

	record := model.VendorRecord{
		VendorName:      strings.TrimSpace(q.VendorName),
		TotalLandedCost: commercial.TotalLandedUSD,
		DeliveryDays:    terms.DeliveryDays,
		Rating:          quality.Rating,
		ESGTier:         quality.ESGTier,
		BrandTier:       quality.BrandTier,
		Certifications:  quality.Certifications,
		RiskLevel:       risk.RiskLevel,
		RiskyClauses:    risk.RiskyClauses,
	}

	return Normalized{
		Record:     record,
		Metadata:   metadata,
		Commercial: commercial,
		Terms:      terms,
		Quality:    quality,
		Risk:       risk,
	}
}
