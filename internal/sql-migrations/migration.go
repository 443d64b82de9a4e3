package sqlmigration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/eskrenkovic/tql"
)

type Migration struct {
	Version    int    `db:"version"`
	Name       string `db:"name"`
	UpScript   string
	DownScript string
}

// Run applies every migration under migrationsPath that has not been
// applied yet. Scripts follow the naming convention
//
//	<version>.<name>.up.sql
//	<version>.<name>.down.sql
//
// and every version needs both scripts. Migrations run in version
// order, each in its own transaction. When one fails, the migrations
// applied by this run are reverted with their down scripts. The SQL in
// the scripts and in the bookkeeping below stays within what Postgres
// and SQLite both accept.
func Run(ctx context.Context, db *sql.DB, migrationsPath string) error {
	if _, err := os.Stat(migrationsPath); err != nil {
		return err
	}

	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	migrations := make(map[int]Migration)

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".sql" {
			continue
		}

		parts := strings.Split(entry.Name(), ".")
		if len(parts) != 4 {
			// Doesn't match the naming convention.
			continue
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return err
		}

		m := migrations[version]
		m.Version = version
		m.Name = parts[1]

		content, err := os.ReadFile(path.Join(migrationsPath, entry.Name()))
		if err != nil {
			return err
		}

		switch scriptType := parts[2]; scriptType {
		case "up":
			m.UpScript = string(content)
		case "down":
			m.DownScript = string(content)
		default:
			return fmt.Errorf("unrecognized script type: %s", scriptType)
		}

		migrations[version] = m
	}

	if err := validateMigrationFiles(migrations); err != nil {
		return err
	}

	if err := ensureMigrationsSchema(ctx, db); err != nil {
		return err
	}

	const q = `
		SELECT version, name
		FROM schema_migration
		ORDER BY version DESC;`
	applied, err := tql.Query[Migration](ctx, db, q)
	if err != nil {
		return err
	}

	lastAppliedVersion := 0
	if len(applied) > 0 {
		lastAppliedVersion = applied[0].Version
	}

	var migrationsToApply []Migration
	for version, migration := range migrations {
		if version <= lastAppliedVersion {
			continue
		}

		migrationsToApply = append(migrationsToApply, migration)
	}

	if len(migrationsToApply) == 0 {
		return nil
	}

	sort.Slice(migrationsToApply, func(i, j int) bool {
		return migrationsToApply[i].Version < migrationsToApply[j].Version
	})

	var newlyApplied []Migration

	var migrationErr error
	for _, migration := range migrationsToApply {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, migration.UpScript); err != nil {
			migrationErr = rollback(tx, err)
			break
		}

		const stmt = `
			INSERT INTO
			schema_migration (version, name)
			VALUES ($1, $2);`
		if _, err = tql.Exec(ctx, tx, stmt, migration.Version, migration.Name); err != nil {
			migrationErr = rollback(tx, err)
			break
		}

		if err := tx.Commit(); err != nil {
			migrationErr = err
			break
		}

		newlyApplied = append(newlyApplied, migration)
	}

	if migrationErr != nil {
		if err := revertState(ctx, db, newlyApplied); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), migrationErr)
		}

		return migrationErr
	}

	return nil
}

func validateMigrationFiles(migrations map[int]Migration) error {
	for _, migration := range migrations {
		if migration.UpScript == "" {
			return fmt.Errorf("failed to find 'up' script for %s", migration.Name)
		}

		if migration.DownScript == "" {
			return fmt.Errorf("failed to find 'down' script for %s", migration.Name)
		}
	}

	return nil
}

func revertState(ctx context.Context, db *sql.DB, applied []Migration) error {
	for i := len(applied) - 1; i >= 0; i-- {
		migration := applied[i]

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, migration.DownScript); err != nil {
			return rollback(tx, err)
		}

		if _, err = tx.ExecContext(ctx, "DELETE FROM schema_migration WHERE version = $1;", migration.Version); err != nil {
			return rollback(tx, err)
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

func ensureMigrationsSchema(ctx context.Context, db *sql.DB) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS schema_migration (
			version integer PRIMARY KEY,
			name    text NOT NULL
		);`

	_, err := tql.Exec(ctx, db, stmt)
	return err
}

func rollback(tx *sql.Tx, cause error) error {
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}

	return cause
}
