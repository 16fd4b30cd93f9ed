package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexus-group/quote-intel/internal/model"
)

func TestCanonicalBrandTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		brand string
		want  model.BrandTier
	}{
		{"enterprise keyword", "Global enterprise supplier", model.BrandTier1},
		{"tier 1 label", "Tier 1", model.BrandTier1},
		{"startup keyword", "Regional startup", model.BrandTier3},
		{"unverified keyword", "unverified reseller", model.BrandTier3},
		{"tier3 label", "tier3", model.BrandTier3},
		{"unrecognized lands mid-market", "Acme Industrial Co", model.BrandTier2},
		{"empty brand", "", model.BrandTier2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanonicalBrandTier(tt.brand))
		})
	}
}

func TestClassifyESG(t *testing.T) {
	t.Parallel()

	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		score *float64
		want  model.ESGTier
	}{
		{"missing score", nil, model.ESGUnknown},
		{"leader threshold", ptr(80), model.ESGLeader},
		{"high score", ptr(93), model.ESGLeader},
		{"average threshold", ptr(60), model.ESGAverage},
		{"low-information band", ptr(45), model.ESGUnknown},
		{"unknown threshold", ptr(40), model.ESGUnknown},
		{"laggard", ptr(25), model.ESGLaggard},
		{"zero score", ptr(0), model.ESGLaggard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyESG(tt.score))
		})
	}
}

func TestRecognizeCertifications(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared []string
		want     []string
	}{
		{
			name:     "known families pass through",
			declared: []string{"ISO 9001", "CE", "RoHS", "UL Listed", "FDA registered", "Six Sigma"},
			want:     []string{"ISO 9001", "CE", "RoHS", "UL Listed", "FDA registered", "Six Sigma"},
		},
		{
			name:     "iso variants",
			declared: []string{"ISO-14001", "ISO 14001:2015", "iso 9001"},
			want:     []string{"ISO-14001", "ISO 14001:2015", "iso 9001"},
		},
		{
			name:     "marketing strings are dropped",
			declared: []string{"Preferred Partner 2025", "Best Vendor Award"},
			want:     nil,
		},
		{
			name:     "duplicates collapse case-insensitively",
			declared: []string{"ISO 9001", "iso 9001", "ISO 9001"},
			want:     []string{"ISO 9001"},
		},
		{
			name:     "blank entries are skipped",
			declared: []string{"", "  ", "CE"},
			want:     []string{"CE"},
		},
		{
			name:     "nil declared list",
			declared: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RecognizeCertifications(tt.declared))
		})
	}
}

func TestProfileQuality(t *testing.T) {
	t.Parallel()

	esg := 72.0
	got := ProfileQuality(model.Quotation{
		VendorRating:   4.4,
		ESGScore:       &esg,
		Brand:          "Tier 1 enterprise",
		Certifications: []string{"ISO 9001", "house brand"},
	})

	assert.InDelta(t, 4.4, got.Rating, 0.001)
	assert.Equal(t, model.ESGAverage, got.ESGTier)
	assert.Equal(t, model.BrandTier1, got.BrandTier)
	assert.Equal(t, []string{"ISO 9001"}, got.Certifications)
}
