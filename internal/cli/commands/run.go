package commands

import (
	"fmt"

	"github.com/leapstack-labs/fluentsql/pkg/adapter"
	"github.com/leapstack-labs/fluentsql/pkg/qb"
	"github.com/spf13/cobra"

	// Register the bundled connectors.
	_ "github.com/leapstack-labs/fluentsql/pkg/connectors/duckdb"
	_ "github.com/leapstack-labs/fluentsql/pkg/connectors/postgres"
	_ "github.com/leapstack-labs/fluentsql/pkg/connectors/sqlite"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	flags := &QueryFlags{}
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compile a query and execute it against the configured target",
		Long: `Run compiles the query exactly like compile, then executes it through the
connector named by target.type in the configuration and renders the result
rows.`,
		Example: `  fluentsql run --select id,name --from users \
    --where "status=active" --limit 10 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())

			if cfg.Target == nil {
				return fmt.Errorf("no target configured: set target.type in %s", "fluentsql.yaml")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg)
			conn, err := adapter.New(*cfg.Target, logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := conn.Connect(ctx, *cfg.Target); err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			// The connector knows its own dialect; compile for it so the
			// parameter map binds through the right placeholder style.
			cfg.Dialect = conn.Dialect().Name

			b, err := buildQuery(flags, cfg, qb.WithConnector(conn))
			if err != nil {
				return err
			}

			rows, err := b.Execute(ctx)
			if err != nil {
				return err
			}

			if format == "" {
				format = cfg.Output
			}
			return renderRows(cmd.OutOrStdout(), rows, format)
		},
	}

	addQueryFlags(cmd, flags)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json, csv")
	return cmd
}
