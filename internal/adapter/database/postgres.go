package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"activityapp/internal/adapter/database/migrations"
)

func NewPostgres(ctx context.Context, url string, opts Options) (*DB, error) {
	if url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	if err := migratePostgres(url); err != nil {
		return nil, err
	}

	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 25
		opts.MaxIdleConns = 5
		opts.ConnMaxLifetime = 5 * time.Minute
	}

	sqlDB, err := open("pgx", url, DialectPostgres, opts)

	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return newDB(sqlDB, DialectPostgres), nil
}

// migratePostgres uses its own connection since the postgres driver pins one for its lock.
func migratePostgres(url string) error {
	sqlDB, err := sql.Open("pgx", url)

	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})

	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, "postgres")

	if err != nil {
		sqlDB.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)

	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
