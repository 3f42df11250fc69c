package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/fluentsql/internal/config"
	"github.com/leapstack-labs/fluentsql/pkg/schema"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the schema registry",
		Long: `Inspect the registry built from the configured schema metadata file:
registered tables with their aliases, and the derived join paths used for
automatic join resolution.`,
	}

	cmd.AddCommand(newSchemaTablesCommand())
	cmd.AddCommand(newSchemaJoinsCommand())
	return cmd
}

// loadConfiguredRegistry requires a schema file and builds the registry.
func loadConfiguredRegistry(cfg *config.Config) (*schema.Registry, error) {
	if cfg.SchemaFile == "" {
		return nil, fmt.Errorf("no schema file configured: set schema_file in fluentsql.yaml or pass --schema-file")
	}
	return buildRegistry(cfg)
}

func newSchemaTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List registered tables and their aliases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			reg, err := loadConfiguredRegistry(cfg)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"table", "alias", "columns"})

			for _, name := range reg.Tables() {
				alias, declared := reg.TableAlias(name)
				if !declared {
					generated, err := schema.Alias(name)
					if err == nil {
						alias = generated + " (generated)"
					}
				}
				t.AppendRow(table.Row{name, alias, len(reg.Columns(name))})
			}

			t.Render()
			return nil
		},
	}
}

func newSchemaJoinsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "joins",
		Short: "List resolvable join paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			reg, err := loadConfiguredRegistry(cfg)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"source", "target", "alias", "condition"})

			paths := reg.JoinPaths()
			sources := make([]string, 0, len(paths))
			for src := range paths {
				sources = append(sources, src)
			}
			sort.Strings(sources)

			for _, src := range sources {
				targets := make([]string, 0, len(paths[src]))
				for dst := range paths[src] {
					targets = append(targets, dst)
				}
				sort.Strings(targets)
				for _, dst := range targets {
					jp := paths[src][dst]
					t.AppendRow(table.Row{src, dst, jp.Alias, jp.Condition})
				}
			}

			t.Render()
			return nil
		},
	}
}
