package intake

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/nexus-group/quote-intel/internal/model"
)

// UnparseableDeliveryDays is the lead time assigned when a delivery
// estimate cannot be read. It is deliberately punitive so vague quotes
// lose the speed criterion instead of winning it.
const UnparseableDeliveryDays = 999

var (
	firstNumberRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	upfrontPctRe  = regexp.MustCompile(`(\d{1,3})\s*%`)
)

// ParseDeliveryDays normalizes a free-text delivery estimate to days.
// Recognized forms: "N days", "N weeks", "N months", and a bare number
// (read as days). Anything else maps to UnparseableDeliveryDays.
func ParseDeliveryDays(estimate string) int {
	s := strings.ToLower(strings.TrimSpace(estimate))
	if s == "" {
		return UnparseableDeliveryDays
	}

	m := firstNumberRe.FindString(s)
	if m == "" {
		return UnparseableDeliveryDays
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return UnparseableDeliveryDays
	}

	switch {
	case strings.Contains(s, "week"):
		n *= 7
	case strings.Contains(s, "month"):
		n *= 30
	}
	return int(math.Round(n))
}

// ParseUpfrontPct extracts the advance-payment percentage from payment
// terms. Only percentages tied to upfront language count; "Net 30" and
// similar deferred terms return 0.
func ParseUpfrontPct(terms string) float64 {
	s := strings.ToLower(terms)
	if s == "" {
		return 0
	}

	upfront := strings.Contains(s, "advance") ||
		strings.Contains(s, "upfront") ||
		strings.Contains(s, "up-front") ||
		strings.Contains(s, "up front") ||
		strings.Contains(s, "prepay")
	if !upfront {
		return 0
	}

	if m := upfrontPctRe.FindStringSubmatch(s); m != nil {
		pct, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return math.Min(pct, 100)
		}
	}

	// Upfront language with no figure: "full payment in advance".
	if strings.Contains(s, "full") || strings.Contains(s, "100") {
		return 100
	}
	return 0
}

// ClassifyWarranty buckets warranty text by covered duration: over two
// years is PREMIUM, one to two years STANDARD, under a year POOR, and
// silence NOT_SPECIFIED.
func ClassifyWarranty(text string) model.WarrantyClass {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return model.WarrantyNotSpecified
	}
	if strings.Contains(s, "lifetime") {
		return model.WarrantyPremium
	}

	m := firstNumberRe.FindString(s)
	if m == "" {
		return model.WarrantyNotSpecified
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return model.WarrantyNotSpecified
	}

	years := n // bare numbers read as years
	switch {
	case strings.Contains(s, "month"):
		years = n / 12
	case strings.Contains(s, "week"):
		years = n / 52
	case strings.Contains(s, "day"):
		years = n / 365
	}

	switch {
	case years > 2:
		return model.WarrantyPremium
	case years >= 1:
		return model.WarrantyStandard
	default:
		return model.WarrantyPoor
	}
}

// ProfileTerms derives the normalized terms profile for a quotation.
func ProfileTerms(q model.Quotation) model.TermsProfile {
	return model.TermsProfile{
		DeliveryDays:  ParseDeliveryDays(q.DeliveryEstimate),
		PaymentTerms:  strings.TrimSpace(q.PaymentTerms),
		UpfrontPct:    ParseUpfrontPct(q.PaymentTerms),
		WarrantyClass: ClassifyWarranty(q.Warranty),
		WarrantyRaw:   strings.TrimSpace(q.Warranty),
	}
}
