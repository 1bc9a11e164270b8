package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drafthours/domain/core"
)

func TestRequestInputBuild(t *testing.T) {
	req, strategy, err := RequestInput{
		Strategy:          "Parametric",
		DocumentType:      "pid",
		Tool:              "smartplant p&id",
		RevisionCount:     2,
		DurationMonths:    4,
		DocumentCount:     12,
		Subtypes:          []string{"Processo", "", "legend"},
		StartingCondition: "Da zero",
	}.Build()
	require.NoError(t, err)

	assert.Equal(t, StrategyParametric, strategy)
	assert.Equal(t, DocumentPID, req.DocumentType)
	assert.Equal(t, ToolSmartPlant, req.Tool)
	assert.Equal(t, []Subtype{SubtypeProcess, SubtypeLegend}, req.Subtypes)
	assert.Equal(t, StartFromScratch, req.StartingCondition)
	assert.Equal(t, 12, req.DocumentCount)
}

func TestRequestInputDefaultsToLookup(t *testing.T) {
	req, strategy, err := RequestInput{
		DocumentType:    "PFD",
		Tool:            "autocad",
		ComplexityClass: " SOLO DRAFTING STANDARD ",
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, StrategyLookup, strategy)
	assert.Equal(t, ToolAutoCAD, req.Tool)
	assert.Equal(t, ComplexityPFDStandard, req.ComplexityClass)
}

func TestRequestInputBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		input RequestInput
		field string
	}{
		{"bad strategy", RequestInput{Strategy: "guess", DocumentType: "PFD"}, "strategy"},
		{"bad document type", RequestInput{DocumentType: "ISO"}, "document_type"},
		{"bad starting condition", RequestInput{DocumentType: "PID", StartingCondition: "halfway"}, "starting_condition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.input.Build()
			require.Error(t, err)
			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
