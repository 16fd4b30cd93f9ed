package scoring

import (
	"strings"

	"github.com/nexus-group/quote-intel/internal/model"
)

// UnratedScoringDefault is the rating used when a vendor has no rating.
// The stored record keeps 0 so the UI can show "unrated"; only the
// scoring path sees the default.
const UnratedScoringDefault = 2.5

// ValidateRecord checks that a record carries the fields scoring cannot
// proceed without. The returned ValidationError lists every missing
// field, not just the first.
func ValidateRecord(rec model.VendorRecord) error {
	var missing []string
	if strings.TrimSpace(rec.VendorName) == "" {
		missing = append(missing, "vendor_name")
	}
	if rec.TotalLandedCost <= 0 {
		missing = append(missing, "total_landed_cost")
	}
	if len(missing) > 0 {
		return &ValidationError{VendorName: rec.VendorName, MissingFields: missing}
	}
	return nil
}

// NormalizeRecord returns a copy of rec with scoring defaults applied:
// unrated vendors score as UnratedScoringDefault, a missing risk level
// is treated as Moderate, and sentinel or blank clause entries are
// dropped. The input record is never mutated.
func NormalizeRecord(rec model.VendorRecord) model.VendorRecord {
	out := rec
	if out.Rating == 0 {
		out.Rating = UnratedScoringDefault
	}
	if out.RiskLevel == "" {
		out.RiskLevel = model.RiskModerate
	}
	out.RiskyClauses = model.CleanClauses(rec.RiskyClauses)
	return out
}
