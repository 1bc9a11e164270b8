package ports

import (
	"context"

	"drafthours/domain/estimate"
)

// ReferenceSource delivers the rows of the reference table. Implementations
// reject malformed rows with a *core.TableLoadError instead of coercing them.
type ReferenceSource interface {
	// Name identifies the source in logs and load errors
	Name() string
	// LoadRows reads every reference row from the source
	LoadRows(ctx context.Context) ([]estimate.ReferenceRow, error)
}

// ReferenceStore is a ReferenceSource whose rows can be replaced, used to
// import a spreadsheet into a database.
type ReferenceStore interface {
	ReferenceSource
	// ReplaceRows atomically swaps all stored rows for rows
	ReplaceRows(ctx context.Context, rows []estimate.ReferenceRow, origin string) error
	// Count returns the number of stored rows
	Count(ctx context.Context) (int, error)
}
