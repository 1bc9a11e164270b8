package migration

import (
	"context"

	"drafthours/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations. Statements are kept
// portable between PostgreSQL and SQLite.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createReferenceRowsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create reference_rows table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

// No uniqueness constraint on the lookup key: duplicate rows must survive
// import so lookups can report them as ambiguous.
func (r *MigrationRunner) createReferenceRowsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS reference_rows (
			seq INTEGER NOT NULL,
			document_type TEXT NOT NULL,
			tool TEXT NOT NULL,
			revision_count INTEGER NOT NULL CHECK (revision_count >= 1),
			complexity_class TEXT NOT NULL,
			total_hours DOUBLE PRECISION NOT NULL CHECK (total_hours >= 0),
			origin TEXT NOT NULL DEFAULT '',
			imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_reference_rows_lookup
			ON reference_rows (document_type, tool, revision_count, complexity_class)`,
		`CREATE INDEX IF NOT EXISTS idx_reference_rows_seq ON reference_rows (seq)`,
	}

	for _, query := range indexes {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
