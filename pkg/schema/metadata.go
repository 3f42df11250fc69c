package schema

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// TableDef describes one table in a metadata document.
type TableDef struct {
	// Alias is the declared short identifier for the table. Optional; when
	// absent the registry falls back to the generated alias.
	Alias string `koanf:"alias"`

	// Schema is the database schema the table lives in. Informational.
	Schema string `koanf:"schema"`

	// Comment is free-form table documentation. Informational.
	Comment string `koanf:"comment"`
}

// ColumnDef describes one column in a metadata document.
type ColumnDef struct {
	Name     string `koanf:"name"`
	Type     string `koanf:"type"`
	Nullable bool   `koanf:"nullable"`
}

// Relationship is a declared foreign-key-like link between two tables.
// Relationships are immutable once registered.
type Relationship struct {
	SourceTable  string `koanf:"source_table"`
	SourceColumn string `koanf:"source_column"`
	TargetTable  string `koanf:"target_table"`
	TargetColumn string `koanf:"target_column"`
}

// complete reports whether all four fields needed to derive a join path are
// present. Incomplete relationships are skipped during derivation; metadata
// documents may be partially populated during iterative schema discovery.
func (r Relationship) complete() bool {
	return r.SourceTable != "" && r.SourceColumn != "" &&
		r.TargetTable != "" && r.TargetColumn != ""
}

// JoinPath is a derived, reusable join between two specific tables: the
// target table, its alias, and the full ON condition text.
type JoinPath struct {
	Table     string `koanf:"table"`
	Alias     string `koanf:"alias"`
	Condition string `koanf:"condition"`
}

// Metadata is the schema metadata document consumed by RegisterSchema.
//
// JoinPaths may carry a precomputed index keyed source table → target table;
// when present it is trusted verbatim and derivation from relationships is
// skipped for that registry instance.
type Metadata struct {
	Tables        map[string]TableDef           `koanf:"tables"`
	Columns       map[string][]ColumnDef        `koanf:"columns"`
	Relationships map[string]Relationship       `koanf:"relationships"`
	JoinPaths     map[string]map[string]JoinPath `koanf:"join_paths"`
}

// LoadMetadata reads a YAML metadata document from path.
func LoadMetadata(path string) (*Metadata, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load schema metadata: %w", err)
	}

	var md Metadata
	if err := k.Unmarshal("", &md); err != nil {
		return nil, fmt.Errorf("failed to parse schema metadata: %w", err)
	}
	return &md, nil
}
