package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// dbConn interface allows repositories to work with both *sql.DB and *sql.Tx
type dbConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	conn   *sql.DB
	driver string
}

// New opens a database for the given driver. dsn is a file path for sqlite3
// and a connection url for postgres.
func New(driver, dsn string) (*DB, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows a single writer
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{conn: conn, driver: driver}, nil
}

func (db *DB) DB() *sql.DB {
	return db.conn
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.conn.BeginTx(ctx, nil)
}

// rebind rewrites ? placeholders into $n for postgres
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
