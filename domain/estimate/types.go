package estimate

import (
	"fmt"
	"strings"

	"drafthours/domain/core"
)

// DocumentType is the drawing class being estimated.
type DocumentType string

const (
	DocumentPFD DocumentType = "PFD"
	DocumentPID DocumentType = "P&ID"
)

// ParseDocumentType accepts the table labels plus the "PID" spelling.
func ParseDocumentType(s string) (DocumentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PFD":
		return DocumentPFD, nil
	case "P&ID", "PID", "P & ID":
		return DocumentPID, nil
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

func (d DocumentType) String() string { return string(d) }

// Valid reports whether d is one of the two supported classes.
func (d DocumentType) Valid() bool {
	return d == DocumentPFD || d == DocumentPID
}

// Tool is the CAD package used for drafting. Labels match the reference table.
type Tool string

const (
	ToolAutoCAD      Tool = "AutoCAD"
	ToolMicrostation Tool = "Microstation"
	ToolSmartPlant   Tool = "SmartPlant P&ID"
)

// ParseTool normalizes case for the known tools; other labels pass through
// trimmed since the reference table may carry them.
func ParseTool(s string) Tool {
	trimmed := strings.TrimSpace(s)
	for _, t := range []Tool{ToolAutoCAD, ToolMicrostation, ToolSmartPlant} {
		if strings.EqualFold(trimmed, string(t)) {
			return t
		}
	}
	return Tool(trimmed)
}

// ComplexityClass is the reference-table label describing rigor and
// starting point of the work.
type ComplexityClass string

const (
	ComplexityDraftingStandard ComplexityClass = "SOLO DRAFTING P&ID STANDARD"
	ComplexityDraftingComplex  ComplexityClass = "SOLO DRAFTING P&ID COMPLESSO"
	ComplexityFromScratch      ComplexityClass = "PARTENDO DA ZERO"
	ComplexityFromSemiFinished ComplexityClass = "PARTENDO DA SEMILAVORATO"
	ComplexityAsBuilt          ComplexityClass = "AS BUILT"

	// ComplexityPFDStandard is the only class parametric PFD estimates use.
	ComplexityPFDStandard ComplexityClass = "SOLO DRAFTING STANDARD"
)

const draftingOnlyMarker = "SOLO DRAFTING"

// IsDraftingOnly reports whether the class denotes a drafting-only
// engagement, where project management is billed separately.
func (c ComplexityClass) IsDraftingOnly() bool {
	return strings.Contains(strings.ToUpper(string(c)), draftingOnlyMarker)
}

func (c ComplexityClass) String() string { return string(c) }

// Subtype is a P&ID drawing subtype contributing a weight to parametric
// estimates.
type Subtype string

const (
	SubtypeProcess         Subtype = "process"
	SubtypeDistributive    Subtype = "distributive"
	SubtypeLegend          Subtype = "legend"
	SubtypeInterconnecting Subtype = "interconnecting"
	SubtypeTypical         Subtype = "typical"
	SubtypeMachines        Subtype = "machines"
)

var subtypeAliases = map[string]Subtype{
	"process":         SubtypeProcess,
	"processo":        SubtypeProcess,
	"distributive":    SubtypeDistributive,
	"distributivo":    SubtypeDistributive,
	"legend":          SubtypeLegend,
	"legenda":         SubtypeLegend,
	"interconnecting": SubtypeInterconnecting,
	"interconnetting": SubtypeInterconnecting,
	"typical":         SubtypeTypical,
	"tipico":          SubtypeTypical,
	"machines":        SubtypeMachines,
	"macchine":        SubtypeMachines,
}

// ParseSubtype maps known labels (English or the legacy Italian ones) to a
// Subtype. Unknown labels are kept as-is and receive the default weight.
func ParseSubtype(s string) Subtype {
	key := strings.ToLower(strings.TrimSpace(s))
	if st, ok := subtypeAliases[key]; ok {
		return st
	}
	return Subtype(key)
}

// StartingCondition describes the state of the input drawings.
type StartingCondition string

const (
	StartFromScratch      StartingCondition = "from_scratch"
	StartFromSemiFinished StartingCondition = "from_semi_finished"
	StartDraftingOnly     StartingCondition = "drafting_only"
)

// ParseStartingCondition accepts the canonical names and the legacy labels.
func ParseStartingCondition(s string) (StartingCondition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "from_scratch", "from scratch", "da zero":
		return StartFromScratch, nil
	case "from_semi_finished", "from semi-finished", "from semi finished", "da semilavorato":
		return StartFromSemiFinished, nil
	case "drafting_only", "drafting only", "solo drafting":
		return StartDraftingOnly, nil
	}
	return "", fmt.Errorf("unknown starting condition %q", s)
}

// Strategy selects how drafting hours are produced.
type Strategy string

const (
	StrategyLookup     Strategy = "lookup"
	StrategyParametric Strategy = "parametric"
)

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lookup", "table":
		return StrategyLookup, nil
	case "parametric":
		return StrategyParametric, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// ReferenceRow is one benchmark entry of the reference table.
type ReferenceRow struct {
	DocumentType    DocumentType    `json:"document_type"`
	Tool            Tool            `json:"tool"`
	RevisionCount   int             `json:"revision_count"`
	ComplexityClass ComplexityClass `json:"complexity_class"`
	TotalHours      float64         `json:"total_hours"`
}

// Key returns the lookup key of the row.
func (r ReferenceRow) Key() LookupKey {
	return LookupKey{
		DocumentType:    r.DocumentType,
		Tool:            r.Tool,
		RevisionCount:   r.RevisionCount,
		ComplexityClass: r.ComplexityClass,
	}
}

// LookupKey is the exact-match tuple used against the reference table.
type LookupKey struct {
	DocumentType    DocumentType    `json:"document_type"`
	Tool            Tool            `json:"tool"`
	RevisionCount   int             `json:"revision_count"`
	ComplexityClass ComplexityClass `json:"complexity_class"`
}

func (k LookupKey) notFound(matches int) error {
	return &core.LookupNotFoundError{
		DocumentType:    string(k.DocumentType),
		Tool:            string(k.Tool),
		RevisionCount:   k.RevisionCount,
		ComplexityClass: string(k.ComplexityClass),
		Matches:         matches,
	}
}

// Request carries the parameters of one estimate.
type Request struct {
	DocumentType    DocumentType    `json:"document_type"`
	Tool            Tool            `json:"tool"`
	RevisionCount   int             `json:"revision_count"`
	ComplexityClass ComplexityClass `json:"complexity_class"`
	DurationMonths  int             `json:"duration_months"`
	DocumentCount   int             `json:"document_count"`

	// P&ID only.
	Subtypes          []Subtype         `json:"subtypes,omitempty"`
	StartingCondition StartingCondition `json:"starting_condition,omitempty"`
}

// Result is the outcome of a successful estimate.
type Result struct {
	ID           core.EstimateID `json:"id"`
	Strategy     Strategy        `json:"strategy"`
	DocumentType DocumentType    `json:"document_type"`

	DraftingHoursPerUnit float64 `json:"drafting_hours_per_unit"`
	BilledUnits          int     `json:"billed_units"`
	DraftingHours        float64 `json:"drafting_hours"`

	ManagementHours float64 `json:"management_hours"`
	Headcount       int     `json:"headcount"`
	// ManagementIncluded marks P&ID lookup estimates whose table figure
	// already covers project management.
	ManagementIncluded bool `json:"management_included"`

	TotalHours float64 `json:"total_hours"`
}
