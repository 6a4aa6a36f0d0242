// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/tennisnav/tennisnav/internal/config"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB bundles the raw connection with the generated query layer.
type DB struct {
	*sql.DB
	Queries *dbgen.Queries
}

// New opens a SQLite database at the given DSN, applies embedded migrations,
// and returns a DB with queries bound to the connection. Foreign key
// enforcement is forced on through the DSN.
func New(dataSourceName string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", withForeignKeys(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return finishOpen(sqlDB)
}

// NewFromConfig opens the configured database. It supports "sqlite" (creating
// the database directory if needed) and "turso" (libsql with an auth token).
func NewFromConfig(cfg *config.Config) (*DB, error) {
	var sqlDB *sql.DB
	var err error

	switch cfg.Database.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
		sqlDB, err = sql.Open("sqlite3", withForeignKeys(cfg.Database.Filename))

	case "turso":
		connector := fmt.Sprintf("%s?authToken=%s", cfg.Database.URL, cfg.Database.AuthToken)
		sqlDB, err = sql.Open("libsql", connector)

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return finishOpen(sqlDB)
}

func finishOpen(sqlDB *sql.DB) (*DB, error) {
	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}
	return &DB{
		DB:      sqlDB,
		Queries: dbgen.New(sqlDB),
	}, nil
}

// withForeignKeys appends `_fk=1` to a SQLite DSN unless the caller already
// set a _fk value.
func withForeignKeys(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_fk=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&_fk=1"
	}
	return dataSourceName + "?_fk=1"
}

func runMigrations(sqlDB *sql.DB) error {
	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// RunInTx runs fn inside a transaction, passing it a query handle bound to
// that transaction. The transaction is rolled back if fn returns an error or
// panics.
func (db *DB) RunInTx(ctx context.Context, fn func(*dbgen.Queries) error) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbgen.New(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}
	return nil
}
