// Package postgres provides a PostgreSQL database connector.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/leapstack-labs/fluentsql/pkg/adapter"
	"github.com/leapstack-labs/fluentsql/pkg/dialect"
)

// Connector implements the adapter.Connector interface for PostgreSQL.
type Connector struct {
	adapter.BaseConnector
}

// New creates a new PostgreSQL connector instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d, _ := dialect.Get("postgres")
	return &Connector{
		BaseConnector: adapter.BaseConnector{Logger: logger, SQLDialect: d},
	}
}

// Connect establishes a connection to PostgreSQL.
func (c *Connector) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildDSN(cfg)

	c.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	c.DB = db
	c.Cfg = cfg
	return nil
}

// buildDSN constructs a key=value PostgreSQL connection string.
func buildDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// Ensure Connector implements adapter.Connector
var _ adapter.Connector = (*Connector)(nil)
