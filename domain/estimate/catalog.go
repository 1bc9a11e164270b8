package estimate

// Catalog lists the choices an input surface offers for a request.
type Catalog struct {
	DocumentTypes      []DocumentType      `json:"document_types"`
	Tools              []Tool              `json:"tools"`
	MinRevisions       int                 `json:"min_revisions"`
	MaxRevisions       int                 `json:"max_revisions"`
	MinDurationMonths  int                 `json:"min_duration_months"`
	MaxDurationMonths  int                 `json:"max_duration_months"`
	PIDComplexities    []ComplexityClass   `json:"pid_complexities"`
	PFDComplexity      ComplexityClass     `json:"pfd_complexity"`
	StartingConditions []StartingCondition `json:"starting_conditions"`
	Subtypes           []Subtype           `json:"subtypes"`
	DefaultSubtypes    []Subtype           `json:"default_subtypes"`
	Strategies         []Strategy          `json:"strategies"`
}

// NewCatalog builds the catalog for the given limits.
func NewCatalog(limits Limits) Catalog {
	return Catalog{
		DocumentTypes:     []DocumentType{DocumentPFD, DocumentPID},
		Tools:             []Tool{ToolAutoCAD, ToolMicrostation, ToolSmartPlant},
		MinRevisions:      1,
		MaxRevisions:      limits.MaxRevisions,
		MinDurationMonths: 1,
		MaxDurationMonths: limits.MaxDurationMonths,
		PIDComplexities: []ComplexityClass{
			ComplexityDraftingStandard,
			ComplexityDraftingComplex,
			ComplexityFromScratch,
			ComplexityFromSemiFinished,
			ComplexityAsBuilt,
		},
		PFDComplexity:      ComplexityPFDStandard,
		StartingConditions: []StartingCondition{StartFromScratch, StartFromSemiFinished, StartDraftingOnly},
		Subtypes: []Subtype{
			SubtypeProcess,
			SubtypeDistributive,
			SubtypeLegend,
			SubtypeInterconnecting,
			SubtypeTypical,
			SubtypeMachines,
		},
		DefaultSubtypes: []Subtype{SubtypeProcess},
		Strategies:      []Strategy{StrategyLookup, StrategyParametric},
	}
}
