package estimate

import (
	"fmt"

	"drafthours/domain/core"
)

// Validate checks the structure of r for the given strategy. It runs before
// any lookup or formula so a bad request never produces a number.
func (r Request) Validate(strategy Strategy, limits Limits) error {
	if strategy != StrategyLookup && strategy != StrategyParametric {
		return core.NewValidationError("strategy", fmt.Sprintf("%q is not supported", strategy))
	}
	if !r.DocumentType.Valid() {
		return core.NewValidationError("document_type", fmt.Sprintf("%q is not PFD or P&ID", r.DocumentType))
	}
	if r.Tool == "" {
		return core.NewValidationError("tool", "is required")
	}
	if r.RevisionCount < 1 {
		return core.NewValidationError("revision_count", "must be at least 1")
	}
	if limits.MaxRevisions > 0 && r.RevisionCount > limits.MaxRevisions {
		return core.NewValidationError("revision_count", fmt.Sprintf("must be at most %d", limits.MaxRevisions))
	}
	if r.DurationMonths < 1 {
		return core.NewValidationError("duration_months", "must be at least 1")
	}
	if limits.MaxDurationMonths > 0 && r.DurationMonths > limits.MaxDurationMonths {
		return core.NewValidationError("duration_months", fmt.Sprintf("must be at most %d", limits.MaxDurationMonths))
	}
	if r.DocumentCount < 0 {
		return core.NewValidationError("document_count", "must not be negative")
	}

	// Parametric PFD estimates use the pinned standard class instead.
	needsClass := strategy == StrategyLookup
	if needsClass && r.ComplexityClass == "" {
		return core.NewValidationError("complexity_class", "is required for lookup estimates")
	}

	if r.DocumentType == DocumentPID && strategy == StrategyParametric {
		if len(r.Subtypes) == 0 {
			return core.NewValidationError("subtypes", "at least one P&ID subtype must be selected")
		}
		if _, err := ParseStartingCondition(string(r.StartingCondition)); err != nil {
			return core.NewValidationError("starting_condition", err.Error())
		}
	}
	return nil
}
