// Package migrations holds the archive database schema.
package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/ChainFirehose/internal/db"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
)

//go:embed 001_archive_blocks.sql
var mig001 string

//go:embed 002_archive_block_hash_index.sql
var mig002 string

// All returns the archive migrations in the order they apply.
func All() []db.Migration {
	return []db.Migration{
		{ID: "001_archive_blocks.sql", SQL: mig001},
		{ID: "002_archive_block_hash_index.sql", SQL: mig002},
	}
}

// RunMigrations brings the archive schema of database up to date.
func RunMigrations(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrationsDB(log, database, All())
}
