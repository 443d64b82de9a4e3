package core

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTransactionTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenDatabase(path.Join(t.TempDir(), "core.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.ExecContext(context.Background(), `CREATE TABLE entries (id text PRIMARY KEY);`)
	require.NoError(t, err)

	return db
}

func countEntries(t *testing.T, db *sql.DB) int {
	t.Helper()

	var count int
	row := db.QueryRowContext(context.Background(), `SELECT count(*) FROM entries;`)
	require.NoError(t, row.Scan(&count))

	return count
}

func Test_OpenDatabase_Opens_SQLite_File_Database(t *testing.T) {
	// Arrange
	filePath := path.Join(t.TempDir(), "catalog.db")

	// Act
	db, err := OpenDatabase(filePath)

	// Assert
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.ExecContext(context.Background(), `CREATE TABLE entries (id text PRIMARY KEY);`)
	require.NoError(t, err)
	require.FileExists(t, filePath)
}

func Test_OpenDatabase_Strips_SQLite_URL_Prefix(t *testing.T) {
	// Arrange
	filePath := path.Join(t.TempDir(), "catalog.db")

	// Act
	db, err := OpenDatabase("sqlite://" + filePath)

	// Assert
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.ExecContext(context.Background(), `CREATE TABLE entries (id text PRIMARY KEY);`)
	require.NoError(t, err)
	require.FileExists(t, filePath)
}

func Test_Tx_Commits_When_Callback_Succeeds(t *testing.T) {
	// Arrange
	db := newTransactionTestDatabase(t)

	// Act
	err := Tx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO entries (id) VALUES ('a');`)
		return err
	})

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, countEntries(t, db))
}

func Test_Tx_Rolls_Back_When_Callback_Fails(t *testing.T) {
	// Arrange
	db := newTransactionTestDatabase(t)
	expectedErr := errors.New("callback failed")

	// Act
	err := Tx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO entries (id) VALUES ('a');`); err != nil {
			return err
		}

		return expectedErr
	})

	// Assert
	require.ErrorIs(t, err, expectedErr)
	require.Equal(t, 0, countEntries(t, db))
}

func Test_Tx_Rolls_Back_When_Callback_Panics(t *testing.T) {
	// Arrange
	db := newTransactionTestDatabase(t)

	// Act
	err := Tx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO entries (id) VALUES ('a');`); err != nil {
			return err
		}

		panic("callback panicked")
	})

	// Assert
	require.ErrorContains(t, err, "transaction panicked")
	require.Equal(t, 0, countEntries(t, db))
}
