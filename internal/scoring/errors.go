package scoring

import (
	"fmt"
	"strings"
)

// ValidationError reports a vendor record missing the fields required for
// scoring. MissingFields always lists every missing field, not just the
// first one found.
type ValidationError struct {
	VendorName    string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	name := e.VendorName
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("scoring: vendor %q missing required fields: %s",
		name, strings.Join(e.MissingFields, ", "))
}

// InvalidWeightsError reports buyer priorities that are rejected outright:
// a negative weight, or a weight sum outside 1.0 +/- WeightSumTolerance.
type InvalidWeightsError struct {
	Sum     float64
	Reasons []string
}

func (e *InvalidWeightsError) Error() string {
	return fmt.Sprintf("scoring: invalid priority weights (sum=%.6f): %s",
		e.Sum, strings.Join(e.Reasons, "; "))
}

// EmptyCohortError reports a comparison requested over zero vendors.
type EmptyCohortError struct{}

func (e *EmptyCohortError) Error() string {
	return "scoring: cohort contains no vendors"
}
