package model

import "time"

// AnalysisSourceRuleBased tags analyses produced by the deterministic engine.
const AnalysisSourceRuleBased = "rule_based"

// ScoreBreakdown holds the four criterion scores, each on a 0-100 scale.
type ScoreBreakdown struct {
	CostScore    float64 `json:"cost_score"`
	QualityScore float64 `json:"quality_score"`
	SpeedScore   float64 `json:"speed_score"`
	RiskScore    float64 `json:"risk_score"`
}

// Dimension returns the breakdown value for a named criterion.
func (b ScoreBreakdown) Dimension(d Dimension) float64 {
	switch d {
	case DimensionCost:
		return b.CostScore
	case DimensionQuality:
		return b.QualityScore
	case DimensionSpeed:
		return b.SpeedScore
	case DimensionRisk:
		return b.RiskScore
	}
	return 0
}

// RankedVendor is one row of a comparison, ordered best first.
type RankedVendor struct {
	Rank            int            `json:"rank"`
	VendorName      string         `json:"vendor_name"`
	NexusTrustScore float64        `json:"nexus_trust_score"`
	TotalLandedCost float64        `json:"total_landed_cost"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown"`
}

// Comparison summarizes the outcome of ranking a cohort.
type Comparison struct {
	RecommendedVendor           string  `json:"recommended_vendor"`
	RecommendationJustification string  `json:"recommendation_justification"`
	SavingsVsMostExpensive      float64 `json:"savings_vs_most_expensive"`
}

// ComparisonResult is the full output of comparing a quotation cohort.
type ComparisonResult struct {
	Vendors    []RankedVendor `json:"vendors"`
	Comparison Comparison     `json:"comparison"`
}

// NegotiationCopilot tags the dimension a buyer should press on.
type NegotiationCopilot struct {
	WeakestDimension Dimension `json:"weakest_dimension"`
	DimensionScore   float64   `json:"dimension_score"`
}

// QuoteMetadata holds integrity findings from the raw quotation.
type QuoteMetadata struct {
	ValidUntil     string   `json:"valid_until,omitempty"`
	Expired        bool     `json:"expired"`
	IntegrityFlags []string `json:"integrity_flags,omitempty"`
}

// CommercialRollup is the landed-cost computation for one quotation.
type CommercialRollup struct {
	Currency       string  `json:"original_currency_code"`
	Subtotal       float64 `json:"subtotal"`
	Tax            float64 `json:"tax"`
	Logistics      float64 `json:"logistics"`
	TotalOriginal  float64 `json:"total_original_currency"`
	ConversionRate float64 `json:"conversion_rate"`
	TotalLandedUSD float64 `json:"total_landed_cost_usd"`
}

// TermsProfile holds normalized delivery, payment, and warranty terms.
type TermsProfile struct {
	DeliveryDays  int           `json:"delivery_days"`
	PaymentTerms  string        `json:"payment_terms,omitempty"`
	UpfrontPct    float64       `json:"upfront_payment_pct"`
	WarrantyClass WarrantyClass `json:"warranty_class"`
	WarrantyRaw   string        `json:"warranty_raw,omitempty"`
}

// QualityProfile holds normalized quality signals.
type QualityProfile struct {
	Rating         float64   `json:"rating"`
	ESGTier        ESGTier   `json:"esg_tier"`
	BrandTier      BrandTier `json:"brand_tier"`
	Certifications []string  `json:"certifications,omitempty"`
}

// RiskProfile holds the accumulated risk assessment.
type RiskProfile struct {
	RiskPoints   int       `json:"risk_points"`
	RiskLevel    RiskLevel `json:"risk_level"`
	RiskyClauses []string  `json:"risky_clauses,omitempty"`
}

// VendorAnalysis is the stored envelope for one analyzed quotation.
type VendorAnalysis struct {
	ID              string              `json:"id"`
	CreatedAt       time.Time           `json:"created_at"`
	VendorName      string              `json:"vendor_name"`
	Record          VendorRecord        `json:"vendor_record"`
	Metadata        QuoteMetadata       `json:"metadata"`
	Commercial      CommercialRollup    `json:"commercial"`
	Terms           TermsProfile        `json:"terms"`
	Quality         QualityProfile      `json:"quality"`
	Risk            RiskProfile         `json:"risk"`
	NexusTrustScore float64             `json:"nexus_trust_score"`
	ScoreBreakdown  ScoreBreakdown      `json:"score_breakdown"`
	Copilot         NegotiationCopilot  `json:"negotiation_copilot"`
	Market          *MarketIntelligence `json:"market_intelligence,omitempty"`
	Source          string              `json:"_analysis_source"`
}

// AuditEntry records one user-visible action against the analysis store.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
}
