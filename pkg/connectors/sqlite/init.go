// This file registers the SQLite connector with the connector registry.
// Import this package with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/fluentsql/pkg/connectors/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/fluentsql/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Connector {
		return New(logger)
	})
}
