package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/fluentsql/pkg/adapter"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fluentsql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.SchemaFile)
	assert.Nil(t, cfg.Target)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
schema_file: schema.yaml
dialect: postgres
output: json
target:
  type: postgres
  host: db.internal
  port: 5433
  database: analytics
  user: etl
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "schema.yaml", cfg.SchemaFile)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "json", cfg.Output)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "postgres", cfg.Target.Type)
	assert.Equal(t, "db.internal", cfg.Target.Host)
	assert.Equal(t, 5433, cfg.Target.Port)
	assert.Equal(t, "analytics", cfg.Target.Database)
	assert.Equal(t, "etl", cfg.Target.Username)

	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\n")

	t.Setenv("FLUENTSQL_DIALECT", "duckdb")
	t.Setenv("FLUENTSQL_TARGET__TYPE", "duckdb")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "duckdb", cfg.Dialect)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "duckdb", cfg.Target.Type)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("FLUENTSQL_DIALECT", "duckdb")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	flags.String("schema-file", "", "")
	require.NoError(t, flags.Parse([]string{"--dialect", "sqlite"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect)
	// schema-file was registered but never set, so it must not clobber.
	assert.Empty(t, cfg.SchemaFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate(), "nil target is valid")

	cfg.Target = &adapter.Config{}
	assert.ErrorContains(t, cfg.Validate(), "target type is required")

	cfg.Target = &adapter.Config{Type: "oracle"}
	assert.ErrorContains(t, cfg.Validate(), "unknown connector type")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Dialect: "postgres"}
	cfg.ApplyDefaults()

	assert.Equal(t, "postgres", cfg.Dialect, "existing value kept")
	assert.Equal(t, DefaultOutput, cfg.Output)
}
