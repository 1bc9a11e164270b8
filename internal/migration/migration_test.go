package migration

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.ConnectContext(ctx, "sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	runner := NewRunner()
	require.NoError(t, runner.Run(ctx, db))
	require.NoError(t, runner.Run(ctx, db))

	var indexes []string
	require.NoError(t, db.SelectContext(ctx, &indexes,
		`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'reference_rows' ORDER BY name`))
	assert.Equal(t, []string{"idx_reference_rows_lookup", "idx_reference_rows_seq"}, indexes)
}

func TestSchemaRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.ConnectContext(ctx, "sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)
	require.NoError(t, NewRunner().Run(ctx, db))

	insert := `INSERT INTO reference_rows (seq, document_type, tool, revision_count, complexity_class, total_hours)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err = db.ExecContext(ctx, insert, 1, "PFD", "AutoCAD", 1, "SOLO DRAFTING STANDARD", 4.0)
	assert.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, 2, "PFD", "AutoCAD", 0, "SOLO DRAFTING STANDARD", 4.0)
	assert.Error(t, err)
	_, err = db.ExecContext(ctx, insert, 3, "PFD", "AutoCAD", 1, "SOLO DRAFTING STANDARD", -1.0)
	assert.Error(t, err)

	// duplicates are allowed so lookups can report them
	_, err = db.ExecContext(ctx, insert, 4, "PFD", "AutoCAD", 1, "SOLO DRAFTING STANDARD", 5.0)
	assert.NoError(t, err)
	assert.Equal(t, "1.0.0", NewRunner().Version())
}
