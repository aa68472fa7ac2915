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
	_ "github.com/lib/pq"
	migrations "github.com/trogers1052/stock-dashboard/db"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// DB is the PostgreSQL-backed store for companies and their price history
type DB struct {
	conn    *sql.DB
	connStr string
}

// New opens a connection pool and verifies the database is reachable
func New(connStr string) (*DB, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, connStr: connStr}, nil
}

// Close releases the connection pool
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Migrate applies all pending schema migrations
func (db *DB) Migrate() error {
	m, err := db.newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Reset drops every table in the schema and re-applies the migrations,
// leaving an empty dataset with fresh id sequences.
func (db *DB) Reset() error {
	m, err := db.newMigrator()
	if err != nil {
		return err
	}
	dropErr := m.Drop()
	m.Close()
	if dropErr != nil {
		return fmt.Errorf("failed to drop schema: %w", dropErr)
	}

	return db.Migrate()
}

// newMigrator uses its own connection because closing a migrate instance
// closes the database handle it was given.
func (db *DB) newMigrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	conn, err := sql.Open("postgres", db.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
