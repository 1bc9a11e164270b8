package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"drafthours/domain/core"
)

// ParametricEstimator synthesizes P&ID drafting hours from weighted factors
// when no table figure is used.
type ParametricEstimator struct {
	factors Factors
}

// NewParametricEstimator copies f so later changes by the caller are not seen.
func NewParametricEstimator(f Factors) *ParametricEstimator {
	return &ParametricEstimator{factors: f.clone()}
}

// WeightSum sums subtype weights. Duplicates are counted each time; unknown
// subtypes get the default weight.
func (p *ParametricEstimator) WeightSum(subtypes []Subtype) float64 {
	weights := make([]float64, len(subtypes))
	for i, s := range subtypes {
		w, ok := p.factors.SubtypeWeights[s]
		if !ok {
			w = p.factors.DefaultSubtypeWeight
		}
		weights[i] = w
	}
	return floats.Sum(weights)
}

// RevisionFactor is 1 for the first issue plus a linear premium per
// additional revision.
func (p *ParametricEstimator) RevisionFactor(revisionCount int) float64 {
	return 1 + p.factors.RevisionPremium*float64(revisionCount-1)
}

// Estimate returns the hours per document and the total for documentCount
// documents. Tools and starting conditions missing from the factor set are
// rejected rather than defaulted.
func (p *ParametricEstimator) Estimate(documentCount int, subtypes []Subtype, tool Tool, start StartingCondition, revisionCount int) (perDocument, total float64, err error) {
	toolFactor, ok := p.factors.ToolFactors[tool]
	if !ok {
		return 0, 0, core.NewValidationError("tool", fmt.Sprintf("%q has no parametric factor", tool))
	}
	startFactor, ok := p.factors.StartFactors[start]
	if !ok {
		return 0, 0, core.NewValidationError("starting_condition", fmt.Sprintf("%q has no parametric factor", start))
	}

	perDocument = p.WeightSum(subtypes) *
		p.factors.BaseHoursPerDocument *
		toolFactor *
		startFactor *
		p.RevisionFactor(revisionCount)

	return perDocument, perDocument * float64(documentCount), nil
}
