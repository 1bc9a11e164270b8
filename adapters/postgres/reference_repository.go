package postgres

import (
	"context"
	"fmt"
	"time"

	"drafthours/domain/core"
	"drafthours/domain/estimate"
	"drafthours/internal/errors"
	"drafthours/ports"

	"github.com/jmoiron/sqlx"
)

// referenceRecord is the database shape of a reference row
type referenceRecord struct {
	Position        int     `db:"seq"`
	DocumentType    string  `db:"document_type"`
	Tool            string  `db:"tool"`
	RevisionCount   int     `db:"revision_count"`
	ComplexityClass string  `db:"complexity_class"`
	TotalHours      float64 `db:"total_hours"`
	Origin          string  `db:"origin"`
}

// ReferenceRepository stores the reference table. Queries are written with
// '?' placeholders and rebound for the driver, so the same code serves
// PostgreSQL (lib/pq) and SQLite.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new reference repository
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

var _ ports.ReferenceStore = (*ReferenceRepository)(nil)

// Name identifies the source in logs and load errors
func (r *ReferenceRepository) Name() string {
	return "database:" + r.db.DriverName() + ":reference_rows"
}

// LoadRows returns every stored row in import order
func (r *ReferenceRepository) LoadRows(ctx context.Context) ([]estimate.ReferenceRow, error) {
	query := `SELECT seq, document_type, tool, revision_count, complexity_class, total_hours, origin
		FROM reference_rows ORDER BY seq`

	var records []referenceRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, core.NewTableLoadError(r.Name(), 0, "", fmt.Sprintf("query failed: %v", err))
	}
	if len(records) == 0 {
		return nil, core.NewTableLoadError(r.Name(), 0, "", "no data rows")
	}

	rows := make([]estimate.ReferenceRow, 0, len(records))
	for _, rec := range records {
		docType, err := estimate.ParseDocumentType(rec.DocumentType)
		if err != nil {
			return nil, core.NewTableLoadError(r.Name(), rec.Position, "document_type", err.Error())
		}
		rows = append(rows, estimate.ReferenceRow{
			DocumentType:    docType,
			Tool:            estimate.Tool(rec.Tool),
			RevisionCount:   rec.RevisionCount,
			ComplexityClass: estimate.ComplexityClass(rec.ComplexityClass),
			TotalHours:      rec.TotalHours,
		})
	}
	return rows, nil
}

// ReplaceRows deletes every stored row and inserts rows in one transaction
func (r *ReferenceRepository) ReplaceRows(ctx context.Context, rows []estimate.ReferenceRow, origin string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reference_rows`); err != nil {
		return dbError(err, "failed to clear reference rows")
	}

	insert := tx.Rebind(`INSERT INTO reference_rows (
		seq, document_type, tool, revision_count, complexity_class, total_hours, origin, imported_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	stmt, err := tx.PreparexContext(ctx, insert)
	if err != nil {
		return dbError(err, "failed to prepare insert")
	}
	defer stmt.Close()

	importedAt := time.Now().UTC()
	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			i+1, string(row.DocumentType), string(row.Tool), row.RevisionCount,
			string(row.ComplexityClass), row.TotalHours, origin, importedAt,
		); err != nil {
			return dbError(err, "failed to insert reference row %d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit reference rows")
	}
	return nil
}

// Count returns the number of stored rows
func (r *ReferenceRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reference_rows`); err != nil {
		return 0, dbError(err, "failed to count reference rows")
	}
	return n, nil
}

// dbError wraps a driver error with the DATABASE_ERROR code
func dbError(err error, format string, args ...interface{}) error {
	return errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, format, args...))
}
