// Package cli provides the command-line interface for fluentsql.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/fluentsql/internal/cli/commands"
	"github.com/leapstack-labs/fluentsql/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fluentsql",
		Short: "fluentsql - Programmatic SQL query compiler",
		Long: `fluentsql compiles composable query clauses into parameterized SQL.

Queries are assembled from discrete clause flags, compiled into SQL text with
:pN named placeholders plus a separate value map, and optionally executed
against a configured target. A schema registry resolves join conditions
between related tables automatically.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./fluentsql.yaml)")
	rootCmd.PersistentFlags().String("schema-file", "", "Path to schema metadata YAML")
	rootCmd.PersistentFlags().String("dialect", "", "Target SQL dialect (snowflake, postgres, sqlite, duckdb)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table|json|csv)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewCompileCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewSchemaCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))

	return rootCmd
}
