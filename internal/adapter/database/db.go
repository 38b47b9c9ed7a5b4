package database

import (
	"database/sql"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
	Dialect      Dialect
}

type Options struct {
	Name            string
	LogQueries      bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// open returns a traced *sql.DB, optionally wrapped by the zerolog query logger.
func open(driverName, dsn string, dialect Dialect, opts Options) (*sql.DB, error) {
	sqlDB, err := otelsql.Open(driverName, dsn,
		otelsql.WithDBSystem(string(dialect)),
		otelsql.WithDBName(opts.Name),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		return nil, err
	}

	if opts.LogQueries {
		logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sql").Logger()
		logged := sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger),
			sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
			sqldblogger.WithLogArguments(false),
		)

		sqlDB.Close()
		sqlDB = logged
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}

	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return sqlDB, nil
}

func newDB(sqlDB *sql.DB, dialect Dialect) *DB {
	var placeholder squirrel.PlaceholderFormat = squirrel.Question

	if dialect == DialectPostgres {
		placeholder = squirrel.Dollar
	}

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(placeholder)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
		Dialect:      dialect,
	}
}
