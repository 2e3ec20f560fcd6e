// Package sqlite provides SQLite-based storage implementations for cinedex services.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fwojciec/cinedex"
	"github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	// This also keeps a ":memory:" database alive across queries.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Taxonomy tables, one per kind, each with a join table to movies.
const (
	castMembersTable = "cast_members"
	creatorsTable    = "creators"
	directorsTable   = "directors"
	genresTable      = "genres"
	keywordsTable    = "keywords"
)

// taxonomyTables maps a kind to its entity table and movie join table.
func taxonomyTables(kind cinedex.Kind) (table, join string, err error) {
	switch kind {
	case cinedex.KindCast:
		table = castMembersTable
	case cinedex.KindCreator:
		table = creatorsTable
	case cinedex.KindDirector:
		table = directorsTable
	case cinedex.KindGenre:
		table = genresTable
	case cinedex.KindKeyword:
		table = keywordsTable
	default:
		return "", "", cinedex.Errorf(cinedex.EINVALID, "taxonomy kind %d unsupported", int(kind))
	}
	return table, "movie_" + table, nil
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS movies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			synopsis TEXT NOT NULL DEFAULT '',
			release_date TEXT,
			runtime INTEGER NOT NULL DEFAULT 0,
			content_rating TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			source_rank INTEGER NOT NULL DEFAULT 0,
			source_score REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS movies_search USING fts5(
			movie_id UNINDEXED,
			content_hash UNINDEXED,
			updated_at UNINDEXED,
			content,
			tokenize = 'unicode61 remove_diacritics 2'
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS movies_search_trigram USING fts5(
			movie_id UNINDEXED,
			content,
			tokenize = 'trigram'
		);
	`
	if _, err := db.db.Exec(schema); err != nil {
		return err
	}

	for _, kind := range cinedex.Kinds {
		table, join, err := taxonomyTables(kind)
		if err != nil {
			return err
		}
		if _, err := db.db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				tag TEXT NOT NULL UNIQUE,
				created_at TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS %[2]s (
				movie_id TEXT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
				taxonomy_id TEXT NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
				position INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (movie_id, taxonomy_id)
			);

			CREATE INDEX IF NOT EXISTS idx_%[2]s_taxonomy_id ON %[2]s(taxonomy_id);
		`, table, join)); err != nil {
			return err
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) || errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY)
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, sqlite3.CONSTRAINT_FOREIGNKEY)
}
