package estimate

import (
	"strings"

	"drafthours/domain/core"
)

// RequestInput is a request as typed by a user or sent over the wire, before
// labels are normalized.
type RequestInput struct {
	Strategy          string   `json:"strategy" form:"strategy"`
	DocumentType      string   `json:"document_type" form:"document_type"`
	Tool              string   `json:"tool" form:"tool"`
	RevisionCount     int      `json:"revision_count" form:"revision_count"`
	ComplexityClass   string   `json:"complexity_class" form:"complexity_class"`
	DurationMonths    int      `json:"duration_months" form:"duration_months"`
	DocumentCount     int      `json:"document_count" form:"document_count"`
	Subtypes          []string `json:"subtypes" form:"subtypes"`
	StartingCondition string   `json:"starting_condition" form:"starting_condition"`
}

// Build normalizes labels and returns the typed request and strategy. An
// empty strategy means lookup. Range checks are left to Request.Validate.
func (in RequestInput) Build() (Request, Strategy, error) {
	strategy := StrategyLookup
	if strings.TrimSpace(in.Strategy) != "" {
		s, err := ParseStrategy(in.Strategy)
		if err != nil {
			return Request{}, "", core.NewValidationError("strategy", err.Error())
		}
		strategy = s
	}

	docType, err := ParseDocumentType(in.DocumentType)
	if err != nil {
		return Request{}, "", core.NewValidationError("document_type", err.Error())
	}

	req := Request{
		DocumentType:    docType,
		Tool:            ParseTool(in.Tool),
		RevisionCount:   in.RevisionCount,
		ComplexityClass: ComplexityClass(strings.TrimSpace(in.ComplexityClass)),
		DurationMonths:  in.DurationMonths,
		DocumentCount:   in.DocumentCount,
	}

	for _, s := range in.Subtypes {
		if strings.TrimSpace(s) == "" {
			continue
		}
		req.Subtypes = append(req.Subtypes, ParseSubtype(s))
	}

	if strings.TrimSpace(in.StartingCondition) != "" {
		start, err := ParseStartingCondition(in.StartingCondition)
		if err != nil {
			return Request{}, "", core.NewValidationError("starting_condition", err.Error())
		}
		req.StartingCondition = start
	}

	return req, strategy, nil
}
