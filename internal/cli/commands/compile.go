package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	flags := &QueryFlags{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile clause flags into SQL and a parameter map",
		Long: `Compile assembles a query from clause flags and prints the resulting SQL
statement and named parameter map without executing anything.

Values never appear in the SQL text; each where clause becomes a :pN
placeholder bound through the parameter map.`,
		Example: `  # Simple filter and paging
  fluentsql compile --select id,name --from users \
    --where "status=active" --order "name desc" --limit 10

  # Registry-resolved join (schema_file configured in fluentsql.yaml)
  fluentsql compile --from "orders as o" --join customers \
    --where "o.total >= 100"

  # Explicit join condition and kind
  fluentsql compile --from "orders as o" \
    --join "left:payments as p ON o.id = p.order_id"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())

			b, err := buildQuery(flags, cfg)
			if err != nil {
				return err
			}

			sqlStr, params, err := b.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sqlStr)
			if len(params) > 0 {
				names := make([]string, 0, len(params))
				for name := range params {
					names = append(names, name)
				}
				sort.Strings(names)
				fmt.Fprintln(out, "-- parameters:")
				for _, name := range names {
					fmt.Fprintf(out, "--   %s = %v\n", name, params[name])
				}
			}
			return nil
		},
	}

	addQueryFlags(cmd, flags)
	return cmd
}

// addQueryFlags registers the shared clause flags on a command.
func addQueryFlags(cmd *cobra.Command, flags *QueryFlags) {
	cmd.Flags().StringArrayVar(&flags.Selects, "select", nil, "Fields to select (repeatable, comma-separated)")
	cmd.Flags().StringVar(&flags.From, "from", "", `From table, optionally aliased ("orders as o")`)
	cmd.Flags().StringArrayVar(&flags.Joins, "join", nil, `Join: "[kind:]table[ ON condition]" (repeatable)`)
	cmd.Flags().StringArrayVar(&flags.Wheres, "where", nil, `Filter: "field op value" or "field=value" (repeatable)`)
	cmd.Flags().StringArrayVar(&flags.Orders, "order", nil, `Ordering: "field [asc|desc]" (repeatable)`)
	cmd.Flags().IntVar(&flags.Limit, "limit", unsetInt, "Maximum number of rows")
	cmd.Flags().IntVar(&flags.Offset, "offset", unsetInt, "Number of rows to skip")
}
