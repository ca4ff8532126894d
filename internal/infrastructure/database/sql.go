package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour of a database/sql connection
type Dialect string

const (
	DialectSQLite Dialect = "sqlite"
	DialectMySQL  Dialect = "mysql"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_entries (
	k          TEXT PRIMARY KEY,
	v          BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

const mysqlSchema = `CREATE TABLE IF NOT EXISTS kv_entries (
	k          VARCHAR(191) NOT NULL PRIMARY KEY,
	v          LONGBLOB NOT NULL,
	updated_at DATETIME(6) NOT NULL
)`

// OpenSQLite opens (creating if needed) a SQLite file. ":memory:" opens a
// private in-memory database pinned to a single connection.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == ":memory:" {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db.SetMaxOpenConns(1)
		return db, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	// busy timeout + WAL so a crash never leaves a half-written value
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout=5000&_pragma=journal_mode=WAL&_pragma=synchronous=FULL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	log.Info().Str("path", path).Msg("opened SQLite database")
	return db, nil
}

// OpenMySQL opens a MySQL pool and checks connectivity
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Info().Msg("connected to MySQL")
	return db, nil
}

// MigrateSQL creates the key-value table for the given dialect
func MigrateSQL(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schema := sqliteSchema
	if dialect == DialectMySQL {
		schema = mysqlSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}
