package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/mysql/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies all pending schema migrations so the service is
// usable out of the box for local and self-hosted environments. Each
// supported database type carries its own DDL files under migrations/<type>.
func RunMigrations(db *sql.DB, dbType string) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	var (
		driver database.Driver
		err    error
	)
	switch dbType {
	case "mysql":
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case "postgres":
		driver, err = migratepostgres.WithInstance(db, &migratepostgres.Config{})
	default:
		return fmt.Errorf("no migration driver for database type %q", dbType)
	}
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	src, err := openSource(dbType)
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithInstance("iofs", src, dbType, driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

func openSource(dbType string) (source.Driver, error) {
	sub, err := fs.Sub(embeddedMigrations, path.Join(migrationsDir, dbType))
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dbType, err)
	}

	src, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	return src, nil
}
