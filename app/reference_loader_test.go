package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"drafthours/domain/core"
	"drafthours/domain/estimate"
	"drafthours/internal"
	"drafthours/internal/testkit"
)

// MockReferenceSource implements ports.ReferenceSource for testing
type MockReferenceSource struct {
	mock.Mock
	name string
}

func (m *MockReferenceSource) Name() string { return m.name }

func (m *MockReferenceSource) LoadRows(ctx context.Context) ([]estimate.ReferenceRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]estimate.ReferenceRow)
	return rows, args.Error(1)
}

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func TestLoaderConcatenatesSourcesInOrder(t *testing.T) {
	pid := &MockReferenceSource{name: "pid.xlsx"}
	pfd := &MockReferenceSource{name: "pfd.csv"}

	var pidRows, pfdRows []estimate.ReferenceRow
	for _, r := range testkit.SampleRows() {
		if r.DocumentType == estimate.DocumentPID {
			pidRows = append(pidRows, r)
		} else {
			pfdRows = append(pfdRows, r)
		}
	}
	pid.On("LoadRows", mock.Anything).Return(pidRows, nil)
	pfd.On("LoadRows", mock.Anything).Return(pfdRows, nil)

	table, err := NewReferenceLoader(quietLogger(), pid, pfd).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(pidRows)+len(pfdRows), table.Len())
	assert.Equal(t, pidRows[0], table.Rows()[0])
	assert.Equal(t, pfdRows[0], table.Rows()[len(pidRows)])

	pid.AssertExpectations(t)
	pfd.AssertExpectations(t)
}

func TestLoaderFailsWhenAnySourceFails(t *testing.T) {
	good := &MockReferenceSource{name: "good.xlsx"}
	bad := &MockReferenceSource{name: "bad.csv"}
	good.On("LoadRows", mock.Anything).Return(testkit.SampleRows(), nil).Maybe()
	bad.On("LoadRows", mock.Anything).Return(nil, core.NewTableLoadError("bad.csv", 3, "ORE TOTALI", "not a number"))

	table, err := NewReferenceLoader(quietLogger(), good, bad).Load(context.Background())
	assert.Nil(t, table)
	assert.True(t, core.IsTableLoadError(err))
}

func TestLoaderCrossSourceDuplicatesAreAmbiguous(t *testing.T) {
	a := &MockReferenceSource{name: "a.xlsx"}
	b := &MockReferenceSource{name: "b.xlsx"}
	row := testkit.SampleRows()[0]
	a.On("LoadRows", mock.Anything).Return([]estimate.ReferenceRow{row}, nil)
	b.On("LoadRows", mock.Anything).Return([]estimate.ReferenceRow{row}, nil)

	table, err := NewReferenceLoader(quietLogger(), a, b).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []estimate.LookupKey{row.Key()}, table.DuplicateKeys())

	_, err = table.Resolve(row.Key())
	assert.True(t, core.IsLookupNotFound(err))
}

func TestLoaderRejectsInvalidRows(t *testing.T) {
	src := &MockReferenceSource{name: "db"}
	src.On("LoadRows", mock.Anything).Return([]estimate.ReferenceRow{{DocumentType: estimate.DocumentPFD}}, nil)

	_, err := NewReferenceLoader(quietLogger(), src).Load(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsTableLoadError(err))
	assert.Contains(t, err.Error(), "reference row 1")
}

func TestLoaderHonorsCancelledContext(t *testing.T) {
	src := &MockReferenceSource{name: "db"}
	src.On("LoadRows", mock.Anything).Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReferenceLoader(quietLogger(), src).Load(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
