// Package schema provides the schema registry: an in-memory index of table,
// column, and relationship metadata used for automatic join resolution.
//
// A Registry is built once from a metadata document and consulted read-only
// afterwards. RegisterSchema swaps the whole snapshot at once, so concurrent
// readers never observe a half-built index.
package schema

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry is the central registry for schema metadata.
//
// Reads are safe for concurrent use. RegisterSchema replaces the current
// snapshot wholesale and must not be called concurrently with itself.
type Registry struct {
	mu     sync.RWMutex
	snap   *snapshot
	logger *slog.Logger
}

// snapshot holds one immutable generation of registry state.
type snapshot struct {
	tables        map[string]TableDef
	columns       map[string][]ColumnDef
	relationships map[string]Relationship
	aliases       map[string]string // table name → declared alias
	joinPaths     map[string]map[string]JoinPath
}

// NewRegistry creates an empty registry. If logger is nil, a discard logger
// is used.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		snap:   emptySnapshot(),
		logger: logger,
	}
}

func emptySnapshot() *snapshot {
	return &snapshot{
		tables:        make(map[string]TableDef),
		columns:       make(map[string][]ColumnDef),
		relationships: make(map[string]Relationship),
		aliases:       make(map[string]string),
		joinPaths:     make(map[string]map[string]JoinPath),
	}
}

// RegisterSchema replaces the registry contents with the given metadata
// document. This is a full reload, not an additive merge: tables, columns,
// relationships, the alias map, and the join-path index all come from the
// new document.
//
// If the document carries a precomputed join_paths index it is trusted
// verbatim; otherwise one join path is derived per complete relationship.
// Registering two relationships between the same ordered (source, target)
// pair keeps the last one.
func (r *Registry) RegisterSchema(md *Metadata) {
	snap := emptySnapshot()
	if md == nil {
		r.swap(snap)
		return
	}

	for name, def := range md.Tables {
		snap.tables[name] = def
		if def.Alias != "" {
			snap.aliases[name] = def.Alias
		}
	}
	for table, cols := range md.Columns {
		snap.columns[table] = cols
	}
	for id, rel := range md.Relationships {
		snap.relationships[id] = rel
	}

	if len(md.JoinPaths) > 0 {
		for src, targets := range md.JoinPaths {
			snap.joinPaths[src] = make(map[string]JoinPath, len(targets))
			for dst, jp := range targets {
				snap.joinPaths[src][dst] = jp
			}
		}
	} else {
		r.deriveJoinPaths(snap)
	}

	r.swap(snap)
}

func (r *Registry) swap(snap *snapshot) {
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
}

// deriveJoinPaths builds the join-path index from complete relationships.
// Incomplete relationships are skipped; they are expected in partially
// populated documents and logged at debug level only.
func (r *Registry) deriveJoinPaths(snap *snapshot) {
	ids := make([]string, 0, len(snap.relationships))
	for id := range snap.relationships {
		ids = append(ids, id)
	}
	// Deterministic last-write-wins ordering across reloads.
	sort.Strings(ids)

	for _, id := range ids {
		rel := snap.relationships[id]
		if !rel.complete() {
			r.logger.Debug("skipping incomplete relationship",
				slog.String("id", id),
				slog.String("source", rel.SourceTable),
				slog.String("target", rel.TargetTable))
			continue
		}

		targetAlias := snap.aliases[rel.TargetTable]
		if targetAlias == "" {
			generated, err := Alias(rel.TargetTable)
			if err != nil {
				r.logger.Debug("skipping relationship with unusable target",
					slog.String("id", id))
				continue
			}
			targetAlias = generated
		}

		condition := fmt.Sprintf("%s.%s = %s.%s",
			rel.SourceTable, rel.SourceColumn, targetAlias, rel.TargetColumn)

		if snap.joinPaths[rel.SourceTable] == nil {
			snap.joinPaths[rel.SourceTable] = make(map[string]JoinPath)
		}
		snap.joinPaths[rel.SourceTable][rel.TargetTable] = JoinPath{
			Table:     rel.TargetTable,
			Alias:     targetAlias,
			Condition: condition,
		}
	}
}

// ResolveJoin returns the join path from source to target, if one exists.
// The lookup is a direct one-hop match; absence is a normal outcome meaning
// the caller must supply an explicit condition.
func (r *Registry) ResolveJoin(source, target string) (JoinPath, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jp, ok := r.snap.joinPaths[source][target]
	return jp, ok
}

// TableAlias returns the declared alias for a table, if one was registered.
func (r *Registry) TableAlias(table string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alias, ok := r.snap.aliases[table]
	return alias, ok
}

// Table returns the definition of a registered table.
func (r *Registry) Table(name string) (TableDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.snap.tables[name]
	return def, ok
}

// Tables returns all registered table names (sorted).
func (r *Registry) Tables() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.snap.tables))
	for name := range r.snap.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Columns returns the registered column definitions for a table.
func (r *Registry) Columns(table string) []ColumnDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.columns[table]
}

// JoinPaths returns a copy of the join-path index.
func (r *Registry) JoinPaths() map[string]map[string]JoinPath {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]map[string]JoinPath, len(r.snap.joinPaths))
	for src, targets := range r.snap.joinPaths {
		out[src] = make(map[string]JoinPath, len(targets))
		for dst, jp := range targets {
			out[src][dst] = jp
		}
	}
	return out
}

// Count returns the number of registered tables.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snap.tables)
}
