package sqlmigration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/stretchr/testify/require"
)

const (
	createEntriesTable = `
		CREATE TABLE catalog_entries (
			uid  text PRIMARY KEY,
			name text NOT NULL
		);`

	dropEntriesTable = `DROP TABLE IF EXISTS catalog_entries;`

	createNotesTable = `
		CREATE TABLE catalog_entry_notes (
			uid  text PRIMARY KEY,
			body text NOT NULL
		);`

	dropNotesTable = `DROP TABLE IF EXISTS catalog_entry_notes;`

	brokenScript = `CREATE TABLE (((;`
)

func newTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := core.OpenDatabase(path.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func writeMigration(t *testing.T, dir string, version int, name string, up string, down string) {
	t.Helper()

	err := os.WriteFile(path.Join(dir, fmt.Sprintf("%d.%s.up.sql", version, name)), []byte(up), 0o644)
	require.NoError(t, err)

	err = os.WriteFile(path.Join(dir, fmt.Sprintf("%d.%s.down.sql", version, name)), []byte(down), 0o644)
	require.NoError(t, err)
}

func appliedMigrations(t *testing.T, db *sql.DB) []Migration {
	t.Helper()

	const q = `SELECT version, name FROM schema_migration ORDER BY version;`
	applied, err := tql.Query[Migration](context.Background(), db, q)
	require.NoError(t, err)

	return applied
}

func Test_Run_Applies_All_Migrations_In_Order(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	dir := t.TempDir()
	writeMigration(t, dir, 1, "entries", createEntriesTable, dropEntriesTable)
	writeMigration(t, dir, 2, "notes", createNotesTable, dropNotesTable)

	// Act
	err := Run(context.Background(), db, dir)

	// Assert
	require.NoError(t, err)

	applied := appliedMigrations(t, db)
	require.Len(t, applied, 2)
	require.Equal(t, 1, applied[0].Version)
	require.Equal(t, "entries", applied[0].Name)
	require.Equal(t, 2, applied[1].Version)
	require.Equal(t, "notes", applied[1].Name)

	_, err = db.ExecContext(context.Background(), `INSERT INTO catalog_entries (uid, name) VALUES ('a', 'A');`)
	require.NoError(t, err)

	_, err = db.ExecContext(context.Background(), `INSERT INTO catalog_entry_notes (uid, body) VALUES ('a', 'note');`)
	require.NoError(t, err)
}

func Test_Run_Skips_Already_Applied_Migrations(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	dir := t.TempDir()
	writeMigration(t, dir, 1, "entries", createEntriesTable, dropEntriesTable)

	err := Run(context.Background(), db, dir)
	require.NoError(t, err)

	// Act
	err = Run(context.Background(), db, dir)

	// Assert
	require.NoError(t, err)
	require.Len(t, appliedMigrations(t, db), 1)
}

func Test_Run_Applies_Migrations_Added_After_The_First_Run(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	dir := t.TempDir()
	writeMigration(t, dir, 1, "entries", createEntriesTable, dropEntriesTable)

	err := Run(context.Background(), db, dir)
	require.NoError(t, err)

	writeMigration(t, dir, 2, "notes", createNotesTable, dropNotesTable)

	// Act
	err = Run(context.Background(), db, dir)

	// Assert
	require.NoError(t, err)

	applied := appliedMigrations(t, db)
	require.Len(t, applied, 2)
	require.Equal(t, 2, applied[1].Version)
}

func Test_Run_Fails_When_Down_Script_Is_Missing(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	dir := t.TempDir()
	err := os.WriteFile(path.Join(dir, "1.entries.up.sql"), []byte(createEntriesTable), 0o644)
	require.NoError(t, err)

	// Act
	err = Run(context.Background(), db, dir)

	// Assert
	require.ErrorContains(t, err, "failed to find 'down' script")
}

func Test_Run_Reverts_Migrations_Applied_In_A_Failed_Run(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	dir := t.TempDir()
	writeMigration(t, dir, 1, "entries", createEntriesTable, dropEntriesTable)
	writeMigration(t, dir, 2, "broken", brokenScript, dropNotesTable)

	// Act
	err := Run(context.Background(), db, dir)

	// Assert
	require.Error(t, err)
	require.Empty(t, appliedMigrations(t, db))

	_, err = db.ExecContext(context.Background(), `INSERT INTO catalog_entries (uid, name) VALUES ('a', 'A');`)
	require.Error(t, err)
}

func Test_Run_Keeps_Migrations_From_Earlier_Runs_When_A_New_One_Fails(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	dir := t.TempDir()
	writeMigration(t, dir, 1, "entries", createEntriesTable, dropEntriesTable)

	err := Run(context.Background(), db, dir)
	require.NoError(t, err)

	writeMigration(t, dir, 2, "broken", brokenScript, dropNotesTable)

	// Act
	err = Run(context.Background(), db, dir)

	// Assert
	require.Error(t, err)

	applied := appliedMigrations(t, db)
	require.Len(t, applied, 1)
	require.Equal(t, 1, applied[0].Version)

	_, err = db.ExecContext(context.Background(), `INSERT INTO catalog_entries (uid, name) VALUES ('a', 'A');`)
	require.NoError(t, err)
}

func Test_Run_Ignores_Files_Not_Matching_The_Naming_Convention(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	dir := t.TempDir()
	writeMigration(t, dir, 1, "entries", createEntriesTable, dropEntriesTable)

	err := os.WriteFile(path.Join(dir, "README.md"), []byte("migrations"), 0o644)
	require.NoError(t, err)

	err = os.WriteFile(path.Join(dir, "notes.sql"), []byte(createNotesTable), 0o644)
	require.NoError(t, err)

	// Act
	err = Run(context.Background(), db, dir)

	// Assert
	require.NoError(t, err)
	require.Len(t, appliedMigrations(t, db), 1)
}

func Test_Run_Succeeds_On_Empty_Directory(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	// Act
	err := Run(context.Background(), db, t.TempDir())

	// Assert
	require.NoError(t, err)
}

func Test_Run_Fails_When_Directory_Does_Not_Exist(t *testing.T) {
	// Arrange
	db := newTestDatabase(t)

	// Act
	err := Run(context.Background(), db, path.Join(t.TempDir(), "missing"))

	// Assert
	require.Error(t, err)
}
