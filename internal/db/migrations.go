package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	UpDownSeparator   = "-- +migrate Up"
	downMarker        = "-- +migrate Down"
	dbPrefixReplacer  = "/*dbprefix*/"
	NoLimitMigrations = 0 // no limit on the number of migrations to run
)

// Migration is one embedded SQL file. The file holds the Down section first, then
// the Up section after UpDownSeparator.
type Migration struct {
	ID     string
	SQL    string
	Prefix string
}

// RunMigrationsDB applies every pending migration upwards.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return RunMigrationsDBExtended(log, db, migrations, migrate.Up, NoLimitMigrations)
}

// RunMigrationsDBExtended applies at most maxMigrations migrations in direction dir.
// NoLimitMigrations applies all of them.
func RunMigrationsDBExtended(
	log *logger.Logger,
	db *sql.DB,
	migrations []Migration,
	dir migrate.MigrationDirection,
	maxMigrations int,
) error {
	source := &migrate.MemoryMigrationSource{}
	ids := make([]string, 0, len(migrations))

	for _, m := range migrations {
		parsed, err := parseMigration(m)
		if err != nil {
			return err
		}
		source.Migrations = append(source.Migrations, parsed)
		ids = append(ids, parsed.Id)
	}

	if maxMigrations != NoLimitMigrations {
		migrate.SetIgnoreUnknown(true)
	}

	listed := strings.Join(ids, ", ")
	log.Debugf("running migrations (max %d/%d): %s", maxMigrations, len(ids), listed)

	applied, err := migrate.ExecMax(db, "sqlite3", source, dir, maxMigrations)
	if err != nil {
		return fmt.Errorf("error executing migrations (max %d/%d) %s: %w", maxMigrations, len(ids), listed, err)
	}

	log.Infof("applied %d migrations from: %s", applied, listed)

	return nil
}

func parseMigration(m Migration) (*migrate.Migration, error) {
	body := strings.ReplaceAll(m.SQL, dbPrefixReplacer, m.Prefix)

	down, up, found := strings.Cut(body, UpDownSeparator)
	if !found {
		return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, UpDownSeparator)
	}

	if _, after, ok := strings.Cut(down, downMarker); ok {
		down = after
	}

	return &migrate.Migration{
		Id:   m.Prefix + m.ID,
		Up:   []string{strings.TrimSpace(up)},
		Down: []string{strings.TrimSpace(down)},
	}, nil
}
