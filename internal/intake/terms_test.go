package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexus-group/quote-intel/internal/model"
)

func TestParseDeliveryDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		estimate string
		want     int
	}{
		{"plain days", "10 days", 10},
		{"single day", "1 day", 1},
		{"weeks multiply by seven", "2 weeks", 14},
		{"months multiply by thirty", "1 month", 30},
		{"range takes first number", "3-4 weeks", 21},
		{"fractional weeks round", "1.5 weeks", 11}, // 10.5 rounds up
		{"bare number reads as days", "45", 45},
		{"noise around number", "approx. 12 days ARO", 12},
		{"unparseable text", "TBD", UnparseableDeliveryDays},
		{"empty estimate", "", UnparseableDeliveryDays},
		{"whitespace only", "   ", UnparseableDeliveryDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseDeliveryDays(tt.estimate))
		})
	}
}

func TestParseUpfrontPct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		terms string
		want  float64
	}{
		{"net terms carry no upfront", "Net 30", 0},
		{"half advance", "50% advance, 50% on delivery", 50},
		{"full upfront", "100% upfront", 100},
		{"full payment wording", "Full payment in advance", 100},
		{"quarter up-front", "25% up-front, Net 60 balance", 25},
		{"prepay wording", "30% prepay", 30},
		{"advance with no figure", "payment in advance", 0},
		{"percentage without upfront language", "2% discount for Net 10", 0},
		{"empty terms", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ParseUpfrontPct(tt.terms), 0.001)
		})
	}
}

func TestClassifyWarranty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want model.WarrantyClass
	}{
		{"three years is premium", "3 year parts and labour", model.WarrantyPremium},
		{"lifetime is premium", "Lifetime warranty", model.WarrantyPremium},
		{"two years is standard", "2 years", model.WarrantyStandard},
		{"one year is standard", "12 months", model.WarrantyStandard},
		{"eighteen months is standard", "18 month coverage", model.WarrantyStandard},
		{"six months is poor", "6 months", model.WarrantyPoor},
		{"ninety days is poor", "90 days", model.WarrantyPoor},
		{"bare number reads as years", "5", model.WarrantyPremium},
		{"no duration given", "manufacturer warranty applies", model.WarrantyNotSpecified},
		{"empty warranty", "", model.WarrantyNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyWarranty(tt.text))
		})
	}
}

func TestProfileTerms(t *testing.T) {
	t.Parallel()

	got := ProfileTerms(model.Quotation{
		DeliveryEstimate: "4 weeks",
		PaymentTerms:     "  50% advance, balance Net 30  ",
		Warranty:         " 2 years ",
	})

	assert.Equal(t, 28, got.DeliveryDays)
	assert.Equal(t, "50% advance, balance Net 30", got.PaymentTerms)
	assert.InDelta(t, 50, got.UpfrontPct, 0.001)
	assert.Equal(t, model.WarrantyStandard, got.WarrantyClass)
	assert.Equal(t, "2 years", got.WarrantyRaw)
}
