package app

import (
	"context"
	"strings"
	"time"

	"drafthours/domain/core"
	"drafthours/domain/estimate"
	"drafthours/internal"
	"drafthours/ports"

	"golang.org/x/sync/errgroup"
)

// ReferenceLoader builds the reference table from one or more sources
type ReferenceLoader struct {
	sources []ports.ReferenceSource
	logger  *internal.Logger
}

// NewReferenceLoader creates a loader over sources, read in the given order
func NewReferenceLoader(logger *internal.Logger, sources ...ports.ReferenceSource) *ReferenceLoader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReferenceLoader{sources: sources, logger: logger}
}

// Load reads every source concurrently and concatenates their rows in
// source order. Any source failure fails the whole load. Keys repeated
// across sources make those lookups ambiguous, as duplicates within one
// source do.
func (l *ReferenceLoader) Load(ctx context.Context) (*estimate.Table, error) {
	startTime := time.Now()
	perSource := make([][]estimate.ReferenceRow, len(l.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range l.sources {
		g.Go(func() error {
			rows, err := src.LoadRows(gctx)
			if err != nil {
				return err
			}
			l.logger.Debug("[ReferenceLoader] %s: %d rows", src.Name(), len(rows))
			perSource[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.logger.Error("[ReferenceLoader] load failed: %v", err)
		return nil, err
	}

	var rows []estimate.ReferenceRow
	for _, r := range perSource {
		rows = append(rows, r...)
	}

	table, err := estimate.NewTable(rows)
	if err != nil {
		return nil, core.NewTableLoadError(l.sourceNames(), 0, "", err.Error())
	}

	for _, key := range table.DuplicateKeys() {
		l.logger.Warn("[ReferenceLoader] ambiguous reference key, lookups will fail: %s / %s / %d / %s",
			key.DocumentType, key.Tool, key.RevisionCount, key.ComplexityClass)
	}
	l.logger.Info("[ReferenceLoader] loaded %d reference rows from %d source(s) in %.2fms",
		table.Len(), len(l.sources), float64(time.Since(startTime).Nanoseconds())/1e6)

	return table, nil
}

func (l *ReferenceLoader) sourceNames() string {
	names := make([]string, len(l.sources))
	for i, src := range l.sources {
		names[i] = src.Name()
	}
	return strings.Join(names, ",")
}
