// This file registers the DuckDB connector with the connector registry.
// Import this package with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/fluentsql/pkg/connectors/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/fluentsql/pkg/adapter"
)

func init() {
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Connector {
		return New(logger)
	})
}
