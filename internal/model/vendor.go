package model

import "strings"

// ESGTier classifies a vendor's sustainability posture.
type ESGTier string

const (
	ESGLeader  ESGTier = "Leader"
	ESGAverage ESGTier = "Average"
	ESGLaggard ESGTier = "Laggard"
	ESGUnknown ESGTier = "Unknown"
)

// BrandTier classifies vendor market standing using canonical labels.
type BrandTier string

const (
	BrandTier1 BrandTier = "Tier 1: Enterprise/Global"
	BrandTier2 BrandTier = "Tier 2: Mid-Market"
	BrandTier3 BrandTier = "Tier 3: Unverified/High-Risk"
)

// RiskLevel is the contractual risk classification of a quotation.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// WarrantyClass buckets warranty coverage by duration.
type WarrantyClass string

const (
	WarrantyPremium      WarrantyClass = "PREMIUM"       // more than 2 years
	WarrantyStandard     WarrantyClass = "STANDARD"      // 1-2 years
	WarrantyPoor         WarrantyClass = "POOR"          // under 1 year
	WarrantyNotSpecified WarrantyClass = "NOT_SPECIFIED"
)

// Dimension names one of the four scoring criteria.
type Dimension string

const (
	DimensionCost    Dimension = "cost"
	DimensionQuality Dimension = "quality"
	DimensionSpeed   Dimension = "speed"
	DimensionRisk    Dimension = "risk"
)

// NoClausesSentinel marks a clause list that was checked and came back clean.
const NoClausesSentinel = "None detected"

// CleanClauses strips sentinel and blank entries from a clause list. A
// list that was checked and came back clean arrives as ["None detected"]
// and must count as zero clauses.
func CleanClauses(clauses []string) []string {
	var out []string
	for _, c := range clauses {
		c = strings.TrimSpace(c)
		if c == "" || strings.EqualFold(c, NoClausesSentinel) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// LineItem is a single priced line on a quotation.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Quotation is a raw structured vendor submission before normalization.
type Quotation struct {
	VendorName       string     `json:"vendor_name"`
	LineItems        []LineItem `json:"line_items,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	Tax              float64    `json:"tax,omitempty"` // rate when < 1, absolute amount otherwise
	Shipping         float64    `json:"shipping,omitempty"`
	Handling         float64    `json:"handling,omitempty"`
	Installation     float64    `json:"installation,omitempty"`
	DeliveryEstimate string     `json:"delivery_estimate,omitempty"`
	PaymentTerms     string     `json:"payment_terms,omitempty"`
	Warranty         string     `json:"warranty,omitempty"`
	ValidUntil       string     `json:"valid_until,omitempty"` // YYYY-MM-DD
	VendorRating     float64    `json:"vendor_rating,omitempty"`
	ESGScore         *float64   `json:"esg_score,omitempty"` // 0-100 when reported
	Brand            string     `json:"brand,omitempty"`
	Certifications   []string   `json:"certifications,omitempty"`
	RiskyClauses     []string   `json:"risky_clauses,omitempty"`
}

// VendorRecord is the normalized per-vendor input to the scoring engine.
type VendorRecord struct {
	VendorName      string    `json:"vendor_name"`
	TotalLandedCost float64   `json:"total_landed_cost"`
	DeliveryDays    int       `json:"delivery_days"`
	Rating          float64   `json:"rating"` // 0-5; 0 means unrated
	ESGTier         ESGTier   `json:"esg_tier"`
	BrandTier       BrandTier `json:"brand_tier"`
	Certifications  []string  `json:"certifications,omitempty"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskyClauses    []string  `json:"risky_clauses,omitempty"`
}

// BuyerPriorities holds the MCDA weights for the four criteria.
// Weights must be non-negative and sum to 1.0.
type BuyerPriorities struct {
	Cost    float64 `json:"cost"`
	Quality float64 `json:"quality"`
	Speed   float64 `json:"speed"`
	Risk    float64 `json:"risk"`
}

// MarketIntelligence is optional market context attached to an analysis.
// It is carried through to the output envelope and never consumed by scoring.
type MarketIntelligence struct {
	AverageMarketPrice  float64 `json:"average_market_price,omitempty"`
	TypicalLeadTimeDays int     `json:"typical_lead_time_days,omitempty"`
}
