package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Apply brings the schema up to date. Postgres is migrated over its own connection
// opened from databaseURL; sqlite reuses db.
func Apply(db *sql.DB, driver, databaseURL string, logger *slog.Logger) error {
	src, err := iofs.New(files, driver)
	if err != nil {
		return fmt.Errorf("open migrations for %q: %w", driver, err)
	}

	var m *migrate.Migrate
	switch driver {
	case "postgres":
		m, err = migrate.NewWithSourceInstance("iofs", src, databaseURL)
		if err == nil {
			defer m.Close()
		}
	case "sqlite":
		// Closing this migrator would close db, so it is left open.
		target, derr := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if derr != nil {
			return fmt.Errorf("create sqlite migration driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", src, driver, target)
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migrations not required, schema is up to date", "driver", driver)
	} else {
		logger.Info("migrations applied", "driver", driver)
	}
	return nil
}
