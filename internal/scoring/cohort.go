package scoring

import "github.com/nexus-group/quote-intel/internal/model"

// Cohort is the immutable min/max envelope the relative criteria score
// against. It is computed once per comparison so every vendor sees the
// same snapshot regardless of evaluation order.
type Cohort struct {
	MinCost float64
	MaxCost float64
	MinDays int
	MaxDays int
	Size    int
}

// NewCohort computes the envelope over a set of records. Records are
// read as-is; callers validate before snapshotting.
func NewCohort(records []model.VendorRecord) Cohort {
	c := Cohort{Size: len(records)}
	for i, rec := range records {
		if i == 0 {
			c.MinCost, c.MaxCost = rec.TotalLandedCost, rec.TotalLandedCost
			c.MinDays, c.MaxDays = rec.DeliveryDays, rec.DeliveryDays
			continue
		}
		if rec.TotalLandedCost < c.MinCost {
			c.MinCost = rec.TotalLandedCost
		}
		if rec.TotalLandedCost > c.MaxCost {
			c.MaxCost = rec.TotalLandedCost
		}
		if rec.DeliveryDays < c.MinDays {
			c.MinDays = rec.DeliveryDays
		}
		if rec.DeliveryDays > c.MaxDays {
			c.MaxDays = rec.DeliveryDays
		}
	}
	return c
}

// including returns the envelope over the cohort plus one extra record,
// used when scoring a vendor that may not be a member of its own cohort
// slice. Duplicates cannot move a min/max, so membership never needs
// checking.
func (c Cohort) including(rec model.VendorRecord) Cohort {
	out := c
	if c.Size == 0 {
		return NewCohort([]model.VendorRecord{rec})
	}
	if rec.TotalLandedCost < out.MinCost {
		out.MinCost = rec.TotalLandedCost
	}
	if rec.TotalLandedCost > out.MaxCost {
		out.MaxCost = rec.TotalLandedCost
	}
	if rec.DeliveryDays < out.MinDays {
		out.MinDays = rec.DeliveryDays
	}
	if rec.DeliveryDays > out.MaxDays {
		out.MaxDays = rec.DeliveryDays
	}
	out.Size = c.Size + 1
	return out
}
