package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagementHeadcount(t *testing.T) {
	m := NewManagementCalculator(DefaultManagementPolicy())

	tests := []struct {
		documents int
		headcount int
	}{
		{0, 0},
		{1, 1},
		{150, 1},
		{151, 2},
		{300, 2},
		{301, 3},
	}
	for _, tt := range tests {
		_, headcount := m.Compute(tt.documents, 6)
		assert.Equal(t, tt.headcount, headcount, "documents=%d", tt.documents)
	}
}

func TestManagementZeroDocumentsAnyDuration(t *testing.T) {
	m := NewManagementCalculator(DefaultManagementPolicy())
	for _, months := range []int{1, 6, 60} {
		hours, headcount := m.Compute(0, months)
		assert.Zero(t, hours)
		assert.Zero(t, headcount)
	}
}

func TestManagementHours(t *testing.T) {
	m := NewManagementCalculator(DefaultManagementPolicy())

	hours, headcount := m.Compute(300, 6)
	assert.Equal(t, 2, headcount)
	assert.Equal(t, 1920.0, hours)

	hours, headcount = m.Compute(10, 1)
	assert.Equal(t, 1, headcount)
	assert.Equal(t, 160.0, hours)
}

func TestManagementCustomPolicy(t *testing.T) {
	m := NewManagementCalculator(ManagementPolicy{DocumentsPerResource: 100, HoursPerResourceMonth: 140})
	hours, headcount := m.Compute(250, 2)
	assert.Equal(t, 3, headcount)
	assert.Equal(t, 840.0, hours)
}

func TestManagementHugeDocumentCountStaysPositive(t *testing.T) {
	m := NewManagementCalculator(DefaultManagementPolicy())

	hours, headcount := m.Compute(math.MaxInt, 6)
	assert.Equal(t, math.MaxInt/150+1, headcount)
	assert.Greater(t, hours, 0.0)
}
