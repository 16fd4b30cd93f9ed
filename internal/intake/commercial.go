package intake

import (
	"math"
	"strings"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/money"
)

// RollupCommercial computes the landed cost for a quotation: line-item
// subtotal, tax (a rate when under 1, an absolute amount otherwise),
// logistics, then conversion to USD.
func RollupCommercial(q model.Quotation, conv *money.Converter) model.CommercialRollup {
	currency := strings.ToUpper(strings.TrimSpace(q.Currency))
	if currency == "" {
		currency = "USD"
	}

	var subtotal float64
	for _, item := range q.LineItems {
		subtotal += item.Quantity * item.UnitPrice
	}

	tax := q.Tax
	if tax > 0 && tax < 1 {
		tax = subtotal * q.Tax
	}

	logistics := q.Shipping + q.Handling + q.Installation

	totalOriginal := subtotal + tax + logistics
	totalUSD, rate := conv.ToUSD(totalOriginal, currency)

	return model.CommercialRollup{
		Currency:       currency,
		Subtotal:       round2(subtotal),
		Tax:            round2(tax),
		Logistics:      round2(logistics),
		TotalOriginal:  round2(totalOriginal),
		ConversionRate: rate,
		TotalLandedUSD: round2(totalUSD),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
