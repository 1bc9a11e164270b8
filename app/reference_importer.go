package app

import (
	"context"
	"fmt"

	"drafthours/domain/estimate"
	"drafthours/internal"
	"drafthours/ports"
)

// ImportResult reports what an import left in the store
type ImportResult struct {
	Loaded    int
	Stored    int
	Ambiguous []estimate.LookupKey
}

// ReferenceImporter copies a freshly loaded reference table into a store
type ReferenceImporter struct {
	loader TableLoader
	store  ports.ReferenceStore
	logger *internal.Logger
}

// NewReferenceImporter creates an importer from loader into store
func NewReferenceImporter(loader TableLoader, store ports.ReferenceStore, logger *internal.Logger) *ReferenceImporter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReferenceImporter{loader: loader, store: store, logger: logger}
}

// Import loads the table, replaces the stored rows and reads back the
// stored count. Nothing is written if the load fails.
func (i *ReferenceImporter) Import(ctx context.Context, origin string) (*ImportResult, error) {
	table, err := i.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := i.store.ReplaceRows(ctx, table.Rows(), origin); err != nil {
		return nil, err
	}

	stored, err := i.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if stored != table.Len() {
		return nil, fmt.Errorf("%s holds %d rows after importing %d", i.store.Name(), stored, table.Len())
	}

	i.logger.Info("[ReferenceImporter] imported %d rows from %s into %s", stored, origin, i.store.Name())
	return &ImportResult{Loaded: table.Len(), Stored: stored, Ambiguous: table.DuplicateKeys()}, nil
}
