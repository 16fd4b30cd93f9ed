package scoring

import "github.com/nexus-group/quote-intel/internal/model"

// dimensionPriority fixes the order used to resolve score ties, both for
// weakness selection and for the justification's top contributor.
var dimensionPriority = []model.Dimension{
	model.DimensionCost,
	model.DimensionQuality,
	model.DimensionSpeed,
	model.DimensionRisk,
}

// WeakestDimension tags the criterion a buyer should press on in
// negotiation: the lowest sub-score, ties resolved by the fixed priority
// order cost, quality, speed, risk. It emits the dimension tag and its
// score only; composing negotiation language is out of scope here.
func WeakestDimension(b model.ScoreBreakdown) model.NegotiationCopilot {
	weakest := dimensionPriority[0]
	lowest := b.Dimension(weakest)
	for _, d := range dimensionPriority[1:] {
		if v := b.Dimension(d); v < lowest {
			weakest, lowest = d, v
		}
	}
	return model.NegotiationCopilot{
		WeakestDimension: weakest,
		DimensionScore:   lowest,
	}
}
