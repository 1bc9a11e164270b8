package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drafthours/domain/core"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(mustTable(t, sampleRows()), DefaultEngineConfig())
}

func pidRequest() Request {
	return Request{
		DocumentType:      DocumentPID,
		Tool:              ToolAutoCAD,
		RevisionCount:     1,
		ComplexityClass:   ComplexityDraftingStandard,
		DurationMonths:    6,
		DocumentCount:     300,
		Subtypes:          []Subtype{SubtypeProcess},
		StartingCondition: StartFromScratch,
	}
}

func TestLookupDraftingOnlyAddsManagement(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Estimate(pidRequest(), StrategyLookup)
	require.NoError(t, err)

	assert.False(t, res.ID.String() == "")
	assert.Equal(t, StrategyLookup, res.Strategy)
	assert.Equal(t, DocumentPID, res.DocumentType)
	assert.Equal(t, 6.0, res.DraftingHoursPerUnit)
	assert.Equal(t, 300, res.BilledUnits)
	assert.Equal(t, 1800.0, res.DraftingHours)
	assert.Equal(t, 2, res.Headcount)
	assert.Equal(t, 1920.0, res.ManagementHours)
	assert.False(t, res.ManagementIncluded)
	assert.Equal(t, 3720.0, res.TotalHours)
}

func TestLookupNonDraftingClassHasManagementIncluded(t *testing.T) {
	e := newTestEngine(t)
	req := pidRequest()
	req.ComplexityClass = ComplexityFromScratch
	req.DocumentCount = 10

	res, err := e.Estimate(req, StrategyLookup)
	require.NoError(t, err)
	assert.Zero(t, res.ManagementHours)
	assert.Zero(t, res.Headcount)
	assert.True(t, res.ManagementIncluded)
	assert.Equal(t, 200.0, res.TotalHours)
}

func TestLookupZeroDocumentsBillsOneUnit(t *testing.T) {
	e := newTestEngine(t)
	req := pidRequest()
	req.DocumentCount = 0

	res, err := e.Estimate(req, StrategyLookup)
	require.NoError(t, err)
	assert.Equal(t, 1, res.BilledUnits)
	assert.Zero(t, res.ManagementHours)
	assert.Zero(t, res.Headcount)
	assert.Equal(t, 6.0, res.TotalHours)
}

func TestLookupPFDHasNoManagement(t *testing.T) {
	e := newTestEngine(t)
	req := Request{
		DocumentType:    DocumentPFD,
		Tool:            ToolMicrostation,
		RevisionCount:   3,
		ComplexityClass: ComplexityPFDStandard,
		DurationMonths:  12,
		DocumentCount:   400,
	}

	res, err := e.Estimate(req, StrategyLookup)
	require.NoError(t, err)
	assert.Zero(t, res.ManagementHours)
	assert.False(t, res.ManagementIncluded)
	assert.Equal(t, 2000.0, res.TotalHours)
}

func TestLookupMissingTupleFails(t *testing.T) {
	e := newTestEngine(t)
	req := pidRequest()
	req.RevisionCount = 4

	res, err := e.Estimate(req, StrategyLookup)
	assert.Nil(t, res)
	require.Error(t, err)

	var lnf *core.LookupNotFoundError
	require.True(t, errors.As(err, &lnf))
	assert.Equal(t, "P&ID", lnf.DocumentType)
	assert.Equal(t, 4, lnf.RevisionCount)
	assert.Equal(t, string(ComplexityDraftingStandard), lnf.ComplexityClass)
}

func TestParametricPIDScenario(t *testing.T) {
	e := newTestEngine(t)
	req := pidRequest()
	req.DocumentCount = 1

	res, err := e.Estimate(req, StrategyParametric)
	require.NoError(t, err)
	assert.InDelta(t, 9.6, res.DraftingHoursPerUnit, eps)
	assert.InDelta(t, 9.6, res.DraftingHours, eps)
	assert.Equal(t, 1, res.Headcount)
	assert.Equal(t, 960.0, res.ManagementHours)
	assert.InDelta(t, 969.6, res.TotalHours, 1e-6)
}

func TestParametricPIDZeroDocuments(t *testing.T) {
	e := newTestEngine(t)
	req := pidRequest()
	req.DocumentCount = 0

	res, err := e.Estimate(req, StrategyParametric)
	require.NoError(t, err)
	assert.Zero(t, res.DraftingHours)
	assert.Zero(t, res.ManagementHours)
	assert.Zero(t, res.TotalHours)
}

func TestParametricPIDIgnoresComplexityClass(t *testing.T) {
	e := newTestEngine(t)
	req := pidRequest()
	req.ComplexityClass = "NOT IN TABLE"
	req.DocumentCount = 1

	_, err := e.Estimate(req, StrategyParametric)
	require.NoError(t, err)
}

func TestParametricPFDUsesPinnedClass(t *testing.T) {
	e := newTestEngine(t)
	req := Request{
		DocumentType:    DocumentPFD,
		Tool:            ToolAutoCAD,
		RevisionCount:   1,
		ComplexityClass: "ignored",
		DurationMonths:  6,
		DocumentCount:   5,
	}

	res, err := e.Estimate(req, StrategyParametric)
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.DraftingHoursPerUnit)
	assert.Equal(t, 20.0, res.TotalHours)
	assert.Zero(t, res.ManagementHours)

	// No one-unit floor on this path.
	req.DocumentCount = 0
	res, err = e.Estimate(req, StrategyParametric)
	require.NoError(t, err)
	assert.Zero(t, res.TotalHours)
}

func TestParametricPFDMissingStandardRowFails(t *testing.T) {
	e := newTestEngine(t)
	req := Request{
		DocumentType:   DocumentPFD,
		Tool:           ToolSmartPlant,
		RevisionCount:  1,
		DurationMonths: 6,
		DocumentCount:  5,
	}

	res, err := e.Estimate(req, StrategyParametric)
	assert.Nil(t, res)
	assert.True(t, core.IsLookupNotFound(err))
}

func TestCustomPFDStandardClass(t *testing.T) {
	rows := append(sampleRows(), ReferenceRow{
		DocumentType: DocumentPFD, Tool: ToolSmartPlant, RevisionCount: 1,
		ComplexityClass: "PFD BASE", TotalHours: 3,
	})
	cfg := DefaultEngineConfig()
	cfg.PFDStandardClass = "PFD BASE"
	e := NewEngine(mustTable(t, rows), cfg)

	res, err := e.Estimate(Request{
		DocumentType: DocumentPFD, Tool: ToolSmartPlant, RevisionCount: 1,
		DurationMonths: 1, DocumentCount: 2,
	}, StrategyParametric)
	require.NoError(t, err)
	assert.Equal(t, 6.0, res.TotalHours)
}

func TestInvalidRequestNeverReachesTable(t *testing.T) {
	e := NewEngine(nil, DefaultEngineConfig())
	req := pidRequest()
	req.Subtypes = nil

	_, err := e.Estimate(req, StrategyParametric)
	assert.True(t, core.IsValidationError(err))
}

func TestEngineWithoutTable(t *testing.T) {
	e := NewEngine(nil, DefaultEngineConfig())
	_, err := e.Estimate(pidRequest(), StrategyLookup)
	assert.True(t, core.IsTableLoadError(err))
}

func TestEstimateIDsAreUnique(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.Estimate(pidRequest(), StrategyLookup)
	require.NoError(t, err)
	b, err := e.Estimate(pidRequest(), StrategyLookup)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParametricPIDHugeDocumentCount(t *testing.T) {
	req := pidRequest()
	req.DocumentCount = math.MaxInt

	res, err := newTestEngine(t).Estimate(req, StrategyParametric)
	require.NoError(t, err)
	assert.Positive(t, res.Headcount)
	assert.Greater(t, res.ManagementHours, 0.0)
	assert.Greater(t, res.TotalHours, res.DraftingHours)
}
