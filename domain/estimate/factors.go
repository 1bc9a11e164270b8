package estimate

// Factors is the weight set used by the parametric estimator. Values are
// copied when an estimator is built, so a Factors value may be reused or
// modified by the caller afterwards without affecting running estimators.
type Factors struct {
	SubtypeWeights       map[Subtype]float64
	DefaultSubtypeWeight float64
	ToolFactors          map[Tool]float64
	StartFactors         map[StartingCondition]float64
	BaseHoursPerDocument float64
	RevisionPremium      float64
}

// DefaultFactors returns the standard weight set.
func DefaultFactors() Factors {
	return Factors{
		SubtypeWeights: map[Subtype]float64{
			SubtypeProcess:         1.0,
			SubtypeDistributive:    0.8,
			SubtypeLegend:          0.8,
			SubtypeInterconnecting: 0.8,
			SubtypeTypical:         0.8,
			SubtypeMachines:        0.8,
		},
		DefaultSubtypeWeight: 0.8,
		ToolFactors: map[Tool]float64{
			ToolAutoCAD:      1.0,
			ToolMicrostation: 1.0,
			ToolSmartPlant:   1.5,
		},
		StartFactors: map[StartingCondition]float64{
			StartFromScratch:      1.2,
			StartFromSemiFinished: 1.0,
			StartDraftingOnly:     0.8,
		},
		BaseHoursPerDocument: 8,
		RevisionPremium:      0.1,
	}
}

func (f Factors) clone() Factors {
	out := f
	out.SubtypeWeights = make(map[Subtype]float64, len(f.SubtypeWeights))
	for k, v := range f.SubtypeWeights {
		out.SubtypeWeights[k] = v
	}
	out.ToolFactors = make(map[Tool]float64, len(f.ToolFactors))
	for k, v := range f.ToolFactors {
		out.ToolFactors[k] = v
	}
	out.StartFactors = make(map[StartingCondition]float64, len(f.StartFactors))
	for k, v := range f.StartFactors {
		out.StartFactors[k] = v
	}
	return out
}

// ManagementPolicy sizes project-management effort.
type ManagementPolicy struct {
	DocumentsPerResource  int
	HoursPerResourceMonth float64
}

// DefaultManagementPolicy: one resource per 150 documents, 160 h per month.
func DefaultManagementPolicy() ManagementPolicy {
	return ManagementPolicy{
		DocumentsPerResource:  150,
		HoursPerResourceMonth: 160,
	}
}

// Limits bounds request fields beyond their structural minimums. Zero
// disables a bound.
type Limits struct {
	MaxRevisions      int
	MaxDurationMonths int
}

// DefaultLimits mirrors the ranges offered by the estimate form.
func DefaultLimits() Limits {
	return Limits{
		MaxRevisions:      5,
		MaxDurationMonths: 60,
	}
}
