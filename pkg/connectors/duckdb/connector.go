// Package duckdb provides a DuckDB database connector.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb database/sql driver
	"github.com/leapstack-labs/fluentsql/pkg/adapter"
	"github.com/leapstack-labs/fluentsql/pkg/dialect"
)

// Connector implements the adapter.Connector interface for DuckDB.
type Connector struct {
	adapter.BaseConnector
}

// New creates a new DuckDB connector instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d, _ := dialect.Get("duckdb")
	return &Connector{
		BaseConnector: adapter.BaseConnector{Logger: logger, SQLDialect: d},
	}
}

// Connect opens the DuckDB database file. An empty Database opens an
// in-memory database.
func (c *Connector) Connect(ctx context.Context, cfg adapter.Config) error {
	c.Logger.Debug("connecting to duckdb", slog.String("database", cfg.Database))

	db, err := sql.Open("duckdb", cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open duckdb database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	c.DB = db
	c.Cfg = cfg
	return nil
}

// Ensure Connector implements adapter.Connector
var _ adapter.Connector = (*Connector)(nil)
