package intake

import (
	"time"

	"github.com/nexus-group/quote-intel/internal/model"
)

// validUntilLayout is the date format quotations carry for expiry.
const validUntilLayout = "2006-01-02"

// EvaluateMetadata runs the integrity checks on a raw quotation:
// expiry against the valid-until date and structural red flags in the
// line items. Flags never block an analysis; they ride along so the
// buyer sees them.
func EvaluateMetadata(q model.Quotation, now time.Time) model.QuoteMetadata {
	meta := model.QuoteMetadata{ValidUntil: q.ValidUntil}

	if q.ValidUntil != "" {
		until, err := time.Parse(validUntilLayout, q.ValidUntil)
		switch {
		case err != nil:
			meta.IntegrityFlags = append(meta.IntegrityFlags, "unreadable_valid_until")
		case now.After(until.Add(24 * time.Hour)):
			meta.Expired = true
			meta.IntegrityFlags = append(meta.IntegrityFlags, "quote_expired")
		}
	}

	if len(q.LineItems) == 0 {
		meta.IntegrityFlags = append(meta.IntegrityFlags, "no_line_items")
	}

	var zeroPriced, negative bool
	for _, item := range q.LineItems {
		if item.Quantity > 0 && item.UnitPrice == 0 {
			zeroPriced = true
		}
		if item.Quantity < 0 || item.UnitPrice < 0 {
			negative = true
		}
	}
	if zeroPriced {
		meta.IntegrityFlags = append(meta.IntegrityFlags, "zero_priced_line_items")
	}
	if negative {
		meta.IntegrityFlags = append(meta.IntegrityFlags, "negative_line_values")
	}

	return meta
}
