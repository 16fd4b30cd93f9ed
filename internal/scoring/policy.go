// Package scoring implements the Nexus Trust Score engine: cohort-relative
// criterion scoring, MCDA aggregation, vendor ranking, and negotiation
// weakness tagging.
package scoring

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/nexus-group/quote-intel/internal/model"
)

// WeightSumTolerance is the allowed deviation of the priority weight sum
// from 1.0 before the weights are rejected.
const WeightSumTolerance = 1e-6

// QualityPolicy holds the tunable constants of the quality criterion.
type QualityPolicy struct {
	RatingWeight float64                     `yaml:"rating_weight" mapstructure:"rating_weight"`
	ESGWeight    float64                     `yaml:"esg_weight" mapstructure:"esg_weight"`
	BrandWeight  float64                     `yaml:"brand_weight" mapstructure:"brand_weight"`
	ESGPoints    map[model.ESGTier]float64   `yaml:"esg_points" mapstructure:"esg_points"`
	BrandPoints  map[model.BrandTier]float64 `yaml:"brand_points" mapstructure:"brand_points"`
	CertBonus    float64                     `yaml:"cert_bonus" mapstructure:"cert_bonus"`
	CertBonusCap float64                     `yaml:"cert_bonus_cap" mapstructure:"cert_bonus_cap"`
}

// RiskPolicy holds the tunable constants of the risk criterion.
type RiskPolicy struct {
	ClauseDeduction float64                     `yaml:"clause_deduction" mapstructure:"clause_deduction"`
	LevelDeductions map[model.RiskLevel]float64 `yaml:"level_deductions" mapstructure:"level_deductions"`
}

// Policy bundles every tunable constant of the scoring model. The zero
// value is not usable; start from DefaultPolicy or LoadPolicy.
type Policy struct {
	Quality QualityPolicy `yaml:"quality" mapstructure:"quality"`
	Risk    RiskPolicy    `yaml:"risk" mapstructure:"risk"`
}

// DefaultPolicy returns the standard scoring constants.
func DefaultPolicy() Policy {
	return Policy{
		Quality: QualityPolicy{
			RatingWeight: 0.40,
			ESGWeight:    0.30,
			BrandWeight:  0.30,
			ESGPoints: map[model.ESGTier]float64{
				model.ESGLeader:  100,
				model.ESGAverage: 60,
				model.ESGLaggard: 20,
				model.ESGUnknown: 40,
			},
			BrandPoints: map[model.BrandTier]float64{
				model.BrandTier1: 100,
				model.BrandTier2: 65,
				model.BrandTier3: 30,
			},
			CertBonus:    2,
			CertBonusCap: 10,
		},
		Risk: RiskPolicy{
			ClauseDeduction: 8,
			LevelDeductions: map[model.RiskLevel]float64{
				model.RiskLow:      0,
				model.RiskModerate: 15,
				model.RiskHigh:     40,
			},
		},
	}
}

// LoadPolicy reads a scoring policy from a YAML file. Omitted sections
// fall back to the defaults so a policy file only needs to state the
// constants it overrides.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, eris.Wrapf(err, "scoring: read policy %s", path)
	}

	// The YAML has a top-level "scoring" key.
	wrapper := struct {
		Scoring Policy `yaml:"scoring"`
	}{Scoring: DefaultPolicy()}

	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Policy{}, eris.Wrap(err, "scoring: parse policy")
	}

	p := wrapper.Scoring
	defaults := DefaultPolicy()
	if p.Quality.ESGPoints == nil {
		p.Quality.ESGPoints = defaults.Quality.ESGPoints
	}
	if p.Quality.BrandPoints == nil {
		p.Quality.BrandPoints = defaults.Quality.BrandPoints
	}
	if p.Risk.LevelDeductions == nil {
		p.Risk.LevelDeductions = defaults.Risk.LevelDeductions
	}

	if err := ValidatePolicy(p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// ValidatePolicy checks that a Policy is internally consistent.
func ValidatePolicy(p Policy) error {
	var errs []string

	weights := map[string]float64{
		"rating_weight": p.Quality.RatingWeight,
		"esg_weight":    p.Quality.ESGWeight,
		"brand_weight":  p.Quality.BrandWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	// The quality blend must itself be a weighting.
	blend := p.Quality.RatingWeight + p.Quality.ESGWeight + p.Quality.BrandWeight
	if math.Abs(blend-1.0) > 0.01 {
		errs = append(errs, fmt.Sprintf("quality blend should sum to 1.0, got %.3f", blend))
	}

	if p.Quality.CertBonus < 0 {
		errs = append(errs, "cert_bonus must be >= 0")
	}
	if p.Quality.CertBonusCap < 0 {
		errs = append(errs, "cert_bonus_cap must be >= 0")
	}
	if len(p.Quality.ESGPoints) == 0 {
		errs = append(errs, "esg_points must not be empty")
	}
	if len(p.Quality.BrandPoints) == 0 {
		errs = append(errs, "brand_points must not be empty")
	}

	if p.Risk.ClauseDeduction < 0 {
		errs = append(errs, "clause_deduction must be >= 0")
	}
	if len(p.Risk.LevelDeductions) == 0 {
		errs = append(errs, "level_deductions must not be empty")
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: policy validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultPriorities returns the standard buyer weighting: cost-dominant
// with quality, speed, and risk trailing.
func DefaultPriorities() model.BuyerPriorities {
	return model.BuyerPriorities{
		Cost:    0.40,
		Quality: 0.30,
		Speed:   0.20,
		Risk:    0.10,
	}
}

// ValidatePriorities rejects priorities containing a negative weight or a
// weight sum outside 1.0 +/- WeightSumTolerance. Weights are never
// silently renormalized.
func ValidatePriorities(pr model.BuyerPriorities) error {
	var reasons []string

	weights := []struct {
		name string
		w    float64
	}{
		{"cost", pr.Cost},
		{"quality", pr.Quality},
		{"speed", pr.Speed},
		{"risk", pr.Risk},
	}
	for _, it := range weights {
		if it.w < 0 {
			reasons = append(reasons, fmt.Sprintf("%s weight must be >= 0, got %v", it.name, it.w))
		}
	}

	sum := pr.Cost + pr.Quality + pr.Speed + pr.Risk
	if math.Abs(sum-1.0) > WeightSumTolerance {
		reasons = append(reasons, fmt.Sprintf("weights must sum to 1.0, got %.6f", sum))
	}

	if len(reasons) > 0 {
		return &InvalidWeightsError{Sum: sum, Reasons: reasons}
	}
	return nil
}
