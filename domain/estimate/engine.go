package estimate

import (
	"fmt"

	"drafthours/domain/core"
)

// EngineConfig holds the policies an Engine is built from.
type EngineConfig struct {
	Factors    Factors
	Management ManagementPolicy
	Limits     Limits
	// PFDStandardClass is the class parametric PFD estimates look up.
	PFDStandardClass ComplexityClass
}

// DefaultEngineConfig returns the standard policies.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Factors:          DefaultFactors(),
		Management:       DefaultManagementPolicy(),
		Limits:           DefaultLimits(),
		PFDStandardClass: ComplexityPFDStandard,
	}
}

// Engine orchestrates lookup, parametric and management calculations over a
// fixed reference table. An Engine holds no mutable state.
type Engine struct {
	table      *Table
	parametric *ParametricEstimator
	management *ManagementCalculator
	limits     Limits
	pfdClass   ComplexityClass
}

// NewEngine builds an engine over table.
func NewEngine(table *Table, cfg EngineConfig) *Engine {
	pfdClass := cfg.PFDStandardClass
	if pfdClass == "" {
		pfdClass = ComplexityPFDStandard
	}
	return &Engine{
		table:      table,
		parametric: NewParametricEstimator(cfg.Factors),
		management: NewManagementCalculator(cfg.Management),
		limits:     cfg.Limits,
		pfdClass:   pfdClass,
	}
}

// Table returns the reference table the engine resolves against.
func (e *Engine) Table() *Table {
	return e.table
}

// Estimate validates req and produces a complete result or exactly one
// error. No partial result is ever returned.
func (e *Engine) Estimate(req Request, strategy Strategy) (*Result, error) {
	if err := req.Validate(strategy, e.limits); err != nil {
		return nil, err
	}
	if e.table == nil {
		return nil, fmt.Errorf("%w: no reference table loaded", core.ErrTableLoad)
	}

	var (
		res *Result
		err error
	)
	switch strategy {
	case StrategyLookup:
		res, err = e.estimateLookup(req)
	case StrategyParametric:
		if req.DocumentType == DocumentPID {
			res, err = e.estimateParametricPID(req)
		} else {
			res, err = e.estimateParametricPFD(req)
		}
	}
	if err != nil {
		return nil, err
	}

	res.ID = core.NewEstimateID()
	res.Strategy = strategy
	res.DocumentType = req.DocumentType
	return res, nil
}

func (e *Engine) estimateLookup(req Request) (*Result, error) {
	perUnit, err := e.table.Resolve(LookupKey{
		DocumentType:    req.DocumentType,
		Tool:            req.Tool,
		RevisionCount:   req.RevisionCount,
		ComplexityClass: req.ComplexityClass,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{DraftingHoursPerUnit: perUnit}
	if req.DocumentType == DocumentPID {
		if req.ComplexityClass.IsDraftingOnly() {
			res.ManagementHours, res.Headcount = e.management.Compute(req.DocumentCount, req.DurationMonths)
		} else {
			res.ManagementIncluded = true
		}
	}

	// Zero documents are still billed one unit.
	res.BilledUnits = max(req.DocumentCount, 1)
	res.DraftingHours = perUnit * float64(res.BilledUnits)
	res.TotalHours = res.DraftingHours + res.ManagementHours
	return res, nil
}

func (e *Engine) estimateParametricPID(req Request) (*Result, error) {
	start, err := ParseStartingCondition(string(req.StartingCondition))
	if err != nil {
		return nil, core.NewValidationError("starting_condition", err.Error())
	}
	perDoc, drafting, err := e.parametric.Estimate(req.DocumentCount, req.Subtypes, req.Tool, start, req.RevisionCount)
	if err != nil {
		return nil, err
	}

	res := &Result{
		DraftingHoursPerUnit: perDoc,
		BilledUnits:          req.DocumentCount,
		DraftingHours:        drafting,
	}
	res.ManagementHours, res.Headcount = e.management.Compute(req.DocumentCount, req.DurationMonths)
	res.TotalHours = res.DraftingHours + res.ManagementHours
	return res, nil
}

func (e *Engine) estimateParametricPFD(req Request) (*Result, error) {
	perUnit, err := e.table.Resolve(LookupKey{
		DocumentType:    req.DocumentType,
		Tool:            req.Tool,
		RevisionCount:   req.RevisionCount,
		ComplexityClass: e.pfdClass,
	})
	if err != nil {
		return nil, err
	}

	drafting := perUnit * float64(req.DocumentCount)
	return &Result{
		DraftingHoursPerUnit: perUnit,
		BilledUnits:          req.DocumentCount,
		DraftingHours:        drafting,
		TotalHours:           drafting,
	}, nil
}
