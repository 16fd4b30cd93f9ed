package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexus-group/quote-intel/internal/model"
)

func TestProfileRisk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		clauses    []string
		terms      model.TermsProfile
		quality    model.QualityProfile
		wantPoints int
		wantLevel  model.RiskLevel
	}{
		{
			name:       "clean vendor scores zero",
			terms:      model.TermsProfile{WarrantyClass: model.WarrantyStandard},
			quality:    model.QualityProfile{Rating: 4.5, BrandTier: model.BrandTier1},
			wantPoints: 0,
			wantLevel:  model.RiskLow,
		},
		{
			name:    "everything wrong at once",
			clauses: []string{"auto-renewal", "unilateral price change"},
			terms:   model.TermsProfile{UpfrontPct: 100, WarrantyClass: model.WarrantyNotSpecified},
			quality: model.QualityProfile{Rating: 2.5, BrandTier: model.BrandTier3},
			// 20 upfront + 15 warranty + 15 brand + 10 rating + 16 clauses
			wantPoints: 76,
			wantLevel:  model.RiskHigh,
		},
		{
			name:    "mid-market with one clause",
			clauses: []string{"late delivery penalty waiver"},
			terms:   model.TermsProfile{WarrantyClass: model.WarrantyStandard},
			quality: model.QualityProfile{Rating: 3.2, BrandTier: model.BrandTier2},
			// 5 brand + 5 rating + 8 clause
			wantPoints: 18,
			wantLevel:  model.RiskModerate,
		},
		{
			name:       "missing warranty alone reaches moderate",
			terms:      model.TermsProfile{WarrantyClass: model.WarrantyNotSpecified},
			quality:    model.QualityProfile{Rating: 4.0, BrandTier: model.BrandTier1},
			wantPoints: 15,
			wantLevel:  model.RiskModerate,
		},
		{
			name:  "half upfront poor warranty low rating reach high",
			terms: model.TermsProfile{UpfrontPct: 50, WarrantyClass: model.WarrantyPoor},
			// 10 upfront + 10 warranty + 10 rating
			quality:    model.QualityProfile{Rating: 2.0, BrandTier: model.BrandTier1},
			wantPoints: 30,
			wantLevel:  model.RiskHigh,
		},
		{
			name:       "upfront below half is free",
			terms:      model.TermsProfile{UpfrontPct: 40, WarrantyClass: model.WarrantyStandard},
			quality:    model.QualityProfile{Rating: 4.8, BrandTier: model.BrandTier1},
			wantPoints: 0,
			wantLevel:  model.RiskLow,
		},
		{
			name:       "unrated vendor attracts no rating points",
			terms:      model.TermsProfile{WarrantyClass: model.WarrantyStandard},
			quality:    model.QualityProfile{Rating: 0, BrandTier: model.BrandTier1},
			wantPoints: 0,
			wantLevel:  model.RiskLow,
		},
		{
			name:       "sentinel clause is ignored",
			clauses:    []string{"None detected"},
			terms:      model.TermsProfile{WarrantyClass: model.WarrantyStandard},
			quality:    model.QualityProfile{Rating: 4.5, BrandTier: model.BrandTier1},
			wantPoints: 0,
			wantLevel:  model.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ProfileRisk(model.Quotation{RiskyClauses: tt.clauses}, tt.terms, tt.quality)

			assert.Equal(t, tt.wantPoints, got.RiskPoints)
			assert.Equal(t, tt.wantLevel, got.RiskLevel)
		})
	}
}

func TestProfileRiskCleansClauses(t *testing.T) {
	t.Parallel()

	got := ProfileRisk(model.Quotation{
		RiskyClauses: []string{"  auto-renewal  ", "", "none detected", "exclusive jurisdiction"},
	}, model.TermsProfile{WarrantyClass: model.WarrantyStandard}, model.QualityProfile{Rating: 5, BrandTier: model.BrandTier1})

	assert.Equal(t, []string{"auto-renewal", "exclusive jurisdiction"}, got.RiskyClauses)
	assert.Equal(t, 16, got.RiskPoints)
	assert.Equal(t, model.RiskModerate, got.RiskLevel)
}
