package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"activityapp/internal/adapter/database/migrations"
)

// sqliteParams turns on foreign keys and waits on locks instead of failing.
const sqliteParams = "_foreign_keys=on&_busy_timeout=5000"

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqliteParams
	}

	return path + "?" + sqliteParams
}

// NewSQLite opens the database file at path and applies pending migrations.
func NewSQLite(ctx context.Context, path string, opts Options) (*DB, error) {
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 10
		opts.MaxIdleConns = 5
		opts.ConnMaxLifetime = 5 * time.Minute
	}

	sqlDB, err := open("sqlite3", sqliteDSN(path), DialectSQLite, opts)

	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	db := newDB(sqlDB, DialectSQLite)

	if err := migrateSQLite(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// migrateSQLite runs on the live handle, so in-memory databases keep their schema.
// The migrate instance is not closed because that would close db as well.
func migrateSQLite(db *DB) error {
	source, err := iofs.New(migrations.FS, "sqlite")

	if err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)

	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
