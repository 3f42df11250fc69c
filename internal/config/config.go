// Package config loads fluentsql project configuration from file,
// environment variables, and CLI flags.
//
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/fluentsql/pkg/adapter"
	"github.com/spf13/pflag"
)

// Config file names, checked in order.
const (
	ConfigFileName    = "fluentsql.yaml"
	ConfigFileNameAlt = "fluentsql.yml"
)

// Default configuration values.
const (
	DefaultDialect = "snowflake"
	DefaultOutput  = "table"
)

// Config holds the full project configuration.
type Config struct {
	// SchemaFile is the path to the YAML schema metadata document consumed
	// by the registry. Optional; without it joins need explicit conditions.
	SchemaFile string `koanf:"schema_file"`

	// Dialect names the SQL dialect queries are compiled for.
	Dialect string `koanf:"dialect"`

	// Target holds connection settings for the run command.
	Target *adapter.Config `koanf:"target"`

	// Output is the result rendering format (table, json, csv).
	Output string `koanf:"output"`

	Verbose bool `koanf:"verbose"`
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// Validate checks the target configuration against the connector registry.
// A nil target is valid; only execution requires one.
func (c *Config) Validate() error {
	if c.Target == nil {
		return nil
	}
	if c.Target.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(c.Target.Type)) {
		return &adapter.UnknownConnectorError{
			Type:      c.Target.Type,
			Available: adapter.List(),
		}
	}
	return nil
}

// configFileUsed tracks the config file loaded by the last Load call.
var configFileUsed string

// GetConfigFileUsed returns the config file path used by the last Load.
func GetConfigFileUsed() string {
	return configFileUsed
}

// findConfigFile finds the config file to use.
// Priority: explicit path > fluentsql.yaml > fluentsql.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from defaults, the config file, FLUENTSQL_*
// environment variables, and explicitly set CLI flags, in that order.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dialect": DefaultDialect,
		"output":  DefaultOutput,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: FLUENTSQL_SCHEMA_FILE -> schema_file,
	// FLUENTSQL_TARGET__TYPE -> target.type
	if err := k.Load(env.Provider("FLUENTSQL_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "FLUENTSQL_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority), only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}
