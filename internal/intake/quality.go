package intake

import (
	"regexp"
	"strings"

	"github.com/nexus-group/quote-intel/internal/model"
)

// knownCertPatterns matches the certification families the quality
// criterion rewards. Matching runs against declared certification
// strings, never against document text.
var knownCertPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bISO[ -]?\d{4,5}(?::\d{4})?\b`),
	regexp.MustCompile(`(?i)\bCE\b`),
	regexp.MustCompile(`(?i)\bRoHS\b`),
	regexp.MustCompile(`(?i)\bUL\b`),
	regexp.MustCompile(`(?i)\bFDA\b`),
	regexp.MustCompile(`(?i)\bsix\s*sigma\b`),
}

// CanonicalBrandTier maps a free-form brand descriptor onto the three
// canonical tiers. Unrecognized descriptors land in the middle rather
// than penalizing vendors for wording.
func CanonicalBrandTier(brand string) model.BrandTier {
	s := strings.ToLower(strings.TrimSpace(brand))
	switch {
	case strings.Contains(s, "enterprise"),
		strings.Contains(s, "global"),
		strings.Contains(s, "tier 1"),
		strings.Contains(s, "tier1"):
		return model.BrandTier1
	case strings.Contains(s, "startup"),
		strings.Contains(s, "unverified"),
		strings.Contains(s, "tier 3"),
		strings.Contains(s, "tier3"):
		return model.BrandTier3
	default:
		return model.BrandTier2
	}
}

// ClassifyESG converts a reported 0-100 ESG score to a tier. A missing
// score is Unknown, which the scoring tables treat as mid-low rather
// than worst-case.
func ClassifyESG(score *float64) model.ESGTier {
	if score == nil {
		return model.ESGUnknown
	}
	switch v := *score; {
	case v >= 80:
		return model.ESGLeader
	case v >= 60:
		return model.ESGAverage
	case v >= 40:
		return model.ESGUnknown
	default:
		return model.ESGLaggard
	}
}

// RecognizeCertifications filters a declared certification list down to
// entries matching a known certification family, deduplicated
// case-insensitively and order-preserving.
func RecognizeCertifications(declared []string) []string {
	var out []string
	seen := make(map[string]bool, len(declared))
	for _, cert := range declared {
		cert = strings.TrimSpace(cert)
		if cert == "" {
			continue
		}
		key := strings.ToLower(cert)
		if seen[key] {
			continue
		}
		for _, re := range knownCertPatterns {
			if re.MatchString(cert) {
				seen[key] = true
				out = append(out, cert)
				break
			}
		}
	}
	return out
}

// ProfileQuality derives the normalized quality profile for a quotation.
func ProfileQuality(q model.Quotation) model.QualityProfile {
	return model.QualityProfile{
		Rating:         q.VendorRating,
		ESGTier:        ClassifyESG(q.ESGScore),
		BrandTier:      CanonicalBrandTier(q.Brand),
		Certifications: RecognizeCertifications(q.Certifications),
	}
}
