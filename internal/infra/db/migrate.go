// Package db applies embedded schema migrations for the configured driver.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/farmtech/farmtech-api/migrations"
)

// Migrate brings the schema up to date using the embedded SQL for the
// given driver ("mysql" or "postgres").
func Migrate(conn *sql.DB, driver string) error {
	src, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations for %s: %w", driver, err)
	}

	var dbDriver database.Driver
	switch driver {
	case "mysql":
		dbDriver, err = migratemysql.WithInstance(conn, &migratemysql.Config{})
	case "postgres":
		dbDriver, err = migratepostgres.WithInstance(conn, &migratepostgres.Config{})
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migration driver: %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
