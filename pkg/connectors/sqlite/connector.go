// Package sqlite provides a SQLite database connector backed by the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/fluentsql/pkg/adapter"
	"github.com/leapstack-labs/fluentsql/pkg/dialect"
	_ "modernc.org/sqlite" // sqlite database/sql driver
)

// Connector implements the adapter.Connector interface for SQLite.
type Connector struct {
	adapter.BaseConnector
}

// New creates a new SQLite connector instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d, _ := dialect.Get("sqlite")
	return &Connector{
		BaseConnector: adapter.BaseConnector{Logger: logger, SQLDialect: d},
	}
}

// Connect opens the SQLite database file. An empty Database opens an
// in-memory database.
func (c *Connector) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Database
	if path == "" {
		path = ":memory:"
	}

	c.Logger.Debug("connecting to sqlite", slog.String("database", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	c.DB = db
	c.Cfg = cfg
	return nil
}

// Ensure Connector implements adapter.Connector
var _ adapter.Connector = (*Connector)(nil)
