package database

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	psqldriver "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending migration from migrationsPath
// against the already-open connection.
func RunMigrations(p *Postgres, migrationsPath string) error {
	driver, err := psqldriver.WithInstance(p.Db.DB, &psqldriver.Config{})
	if err != nil {
		log.Error("Failed to init migration driver: ", err)
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		log.Error("Failed to init migrations: ", err)
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("Failed to apply migrations: ", err)
		return err
	}

	return nil
}
