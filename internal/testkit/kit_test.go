package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drafthours/domain/estimate"
)

func TestSampleRowsHaveUniqueKeys(t *testing.T) {
	table, err := SampleTable()
	require.NoError(t, err)
	assert.Empty(t, table.DuplicateKeys())
	// 3 tools x 2 revisions x (5 P&ID classes + 1 PFD class)
	assert.Equal(t, 36, table.Len())
}

func TestSampleRowsResolveSmartPlantPremium(t *testing.T) {
	table, err := SampleTable()
	require.NoError(t, err)

	hours, err := table.Resolve(estimate.LookupKey{
		DocumentType:    estimate.DocumentPID,
		Tool:            estimate.ToolSmartPlant,
		RevisionCount:   1,
		ComplexityClass: estimate.ComplexityFromScratch,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, hours)
}
