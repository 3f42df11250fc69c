// Package adapter provides the database connector contract and a registry
// of connector implementations.
//
// Connectors are the only part of the system that touches a live database.
// The query builder hands them a compiled statement with :pN named
// placeholders and the matching parameter map; the connector binds the
// parameters through its driver's native mechanism and returns plain row
// maps. Concrete implementations live in pkg/connectors/ subdirectories.
package adapter

import (
	"context"
	"errors"

	"github.com/leapstack-labs/fluentsql/pkg/dialect"
)

// ErrNotConnected is returned when an operation requires an established
// database connection and none exists.
var ErrNotConnected = errors.New("database connection not established")

// Row is one result row, keyed by column name.
type Row map[string]any

// Config holds connector connection settings.
type Config struct {
	// Type selects the connector implementation (postgres, sqlite, duckdb).
	Type string `koanf:"type"`

	// File-based databases (SQLite, DuckDB)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Snowflake-style warehouse settings, kept for forward compatibility
	// with warehouse connectors.
	Account   string `koanf:"account"`
	Warehouse string `koanf:"warehouse"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Connector defines the contract all database connectors implement.
type Connector interface {
	// Connect establishes a connection using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// ExecuteQuery runs a compiled statement. The params map is bound
	// out-of-band via the dialect's placeholder mechanism; values are never
	// interpolated into the SQL text.
	ExecuteQuery(ctx context.Context, sqlStr string, params map[string]any) ([]Row, error)

	// Dialect returns the SQL dialect configuration for this connector.
	Dialect() *dialect.Dialect
}
