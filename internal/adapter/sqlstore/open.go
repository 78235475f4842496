// Package sqlstore is the table-backed car repository. It runs on
// PostgreSQL (lib/pq) and SQLite (go-sqlite3); the schema for each lives
// under migrations/<dialect> and is applied with goose.
//
// Tables:
//
//	cars(id, size, fuel, doors, transmission)
//	trips(id, car_id -> cars.id ON DELETE CASCADE, trip_start, trip_end, description)
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose"
)

// OpenPostgres connects with dsn, applies migrations from
// migrationsDir/postgres and returns the repository.
func OpenPostgres(ctx context.Context, dsn, migrationsDir string) (*CarRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db, DialectPostgres, filepath.Join(migrationsDir, "postgres")); err != nil {
		db.Close()
		return nil, err
	}

	return NewCarRepository(db, DialectPostgres), nil
}

// OpenSQLite opens (or creates) the database file at path with foreign
// keys enforced and applies migrations from migrationsDir/sqlite.
func OpenSQLite(path, migrationsDir string) (*CarRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open(DialectSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := migrate(db, DialectSQLite, filepath.Join(migrationsDir, "sqlite")); err != nil {
		db.Close()
		return nil, err
	}

	return NewCarRepository(db, DialectSQLite), nil
}

func migrate(db *sql.DB, dialect, dir string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
