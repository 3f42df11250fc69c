// This file registers the PostgreSQL connector with the connector registry.
// Import this package with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/fluentsql/pkg/connectors/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/fluentsql/pkg/adapter"
)

func init() {
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Connector {
		return New(logger)
	})
}
