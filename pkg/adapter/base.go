package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/fluentsql/pkg/dialect"
)

// BaseConnector provides common database/sql functionality for connectors.
// Embed it in concrete implementations to get standard Close and
// ExecuteQuery behavior; the embedding type owns Connect and sets DB, Cfg,
// and SQLDialect on success.
type BaseConnector struct {
	DB         *sql.DB
	Cfg        Config
	SQLDialect *dialect.Dialect
	Logger     *slog.Logger
}

// Close closes the database connection.
func (b *BaseConnector) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Dialect returns the connector's SQL dialect.
func (b *BaseConnector) Dialect() *dialect.Dialect {
	return b.SQLDialect
}

// IsConnected returns true if the database connection is established.
func (b *BaseConnector) IsConnected() bool {
	return b.DB != nil
}

// ExecuteQuery binds the named parameter map through the dialect's
// placeholder style and runs the statement, returning all rows as column
// name → value maps. Byte slices are normalized to strings.
func (b *BaseConnector) ExecuteQuery(ctx context.Context, sqlStr string, params map[string]any) ([]Row, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	boundSQL, args, err := b.SQLDialect.Bind(sqlStr, params)
	if err != nil {
		return nil, fmt.Errorf("failed to bind parameters: %w", err)
	}
	if b.SQLDialect.Placeholder == dialect.PlaceholderNamed {
		// Drivers with native named binding take sql.Named arguments.
		for name, val := range params {
			args = append(args, sql.Named(name, val))
		}
	}

	if b.Logger != nil {
		b.Logger.Debug("executing query",
			slog.String("sql", boundSQL),
			slog.Int("params", len(params)))
	}

	rows, err := b.DB.QueryContext(ctx, boundSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRows(rows)
}

// scanRows collects all rows into column name → value maps.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var results []Row
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}
