// Package sqlgen compiles an accumulated query AST into a parameterized SQL
// statement plus a separate parameter map.
//
// Compilation is pure: the same Query always yields the same SQL text and
// the same parameters. Literal values never appear in the SQL text; each
// WHERE condition produces exactly one named :pN placeholder and one entry
// in the parameter map.
package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/fluentsql/pkg/core"
	"github.com/leapstack-labs/fluentsql/pkg/dialect"
	"github.com/leapstack-labs/fluentsql/pkg/schema"
)

// UnresolvedJoinError is returned when a join has neither an explicit
// condition nor a resolvable registry path. Emitting the join without an ON
// fragment would silently produce invalid SQL, so compilation fails instead.
type UnresolvedJoinError struct {
	Source string
	Target string
}

func (e *UnresolvedJoinError) Error() string {
	return fmt.Sprintf("no join condition for %s -> %s: supply an explicit ON condition or register a relationship", e.Source, e.Target)
}

// Generator compiles queries. It is stateless with respect to any single
// query; the dialect and registry it holds are configuration.
type Generator struct {
	dialect  *dialect.Dialect
	registry *schema.Registry
}

// Option configures a Generator.
type Option func(*Generator)

// WithDialect sets the target dialect. Clause keywords are fixed upper-case
// regardless of dialect; the dialect matters to connectors binding the
// parameter map, not to the clauses emitted here.
func WithDialect(d *dialect.Dialect) Option {
	return func(g *Generator) { g.dialect = d }
}

// WithRegistry sets the schema registry consulted for joins that carry no
// explicit condition.
func WithRegistry(r *schema.Registry) Option {
	return func(g *Generator) { g.registry = r }
}

// New creates a Generator. Without options it targets the default dialect
// and resolves no joins.
func New(opts ...Option) *Generator {
	g := &Generator{dialect: dialect.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dialect returns the generator's configured dialect.
func (g *Generator) Dialect() *dialect.Dialect {
	return g.dialect
}

// Compile turns a query AST into SQL text and a parameter map. Clause order
// is fixed: SELECT, FROM, JOIN (accumulation order), WHERE, ORDER BY, LIMIT,
// OFFSET. Parameters are named p0, p1, … in WHERE visit order.
func (g *Generator) Compile(q *core.Query) (string, map[string]any, error) {
	var parts []string
	params := make(map[string]any)

	parts = append(parts, g.selectClause(q))

	if q.From != nil {
		parts = append(parts, renderTable("FROM", q.From.Name, q.From.Alias))
	}

	for _, join := range q.Joins {
		clause, err := g.joinClause(q, join)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, clause)
	}

	if len(q.Wheres) > 0 {
		conds := make([]string, 0, len(q.Wheres))
		for i, w := range q.Wheres {
			name := "p" + strconv.Itoa(i)
			conds = append(conds, fmt.Sprintf("%s %s :%s", w.Field, w.Operator, name))
			params[name] = w.Value
		}
		parts = append(parts, "WHERE "+strings.Join(conds, " AND "))
	}

	if len(q.Orders) > 0 {
		entries := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			entries = append(entries, o.Field+" "+strings.ToUpper(o.Direction))
		}
		parts = append(parts, "ORDER BY "+strings.Join(entries, ", "))
	}

	if q.Limit != nil {
		parts = append(parts, "LIMIT "+strconv.Itoa(*q.Limit))
	}
	if q.Offset != nil {
		parts = append(parts, "OFFSET "+strconv.Itoa(*q.Offset))
	}

	return strings.Join(parts, " "), params, nil
}

func (g *Generator) selectClause(q *core.Query) string {
	if len(q.SelectFields) == 0 {
		return "SELECT *"
	}
	fields := make([]string, 0, len(q.SelectFields))
	for _, f := range q.SelectFields {
		fields = append(fields, core.FieldText(f))
	}
	return "SELECT " + strings.Join(fields, ", ")
}

// joinClause renders one join, consulting the registry when the stored
// condition is absent. A registry-resolved path also supplies the join alias
// when the caller gave none; an explicit alias always wins.
func (g *Generator) joinClause(q *core.Query, join core.JoinClause) (string, error) {
	condition := join.Condition
	alias := join.Table.Alias

	if condition == "" {
		source := ""
		if q.From != nil {
			source = q.From.Name
		}
		jp, ok := g.resolveJoin(source, join.Table.Name)
		if !ok {
			return "", &UnresolvedJoinError{Source: source, Target: join.Table.Name}
		}
		condition = jp.Condition
		if alias == "" {
			alias = jp.Alias
		}
	}

	clause := renderTable(join.Kind+" JOIN", join.Table.Name, alias)
	if condition != "" {
		clause += " ON " + condition
	}
	return clause, nil
}

func (g *Generator) resolveJoin(source, target string) (schema.JoinPath, bool) {
	if g.registry == nil {
		return schema.JoinPath{}, false
	}
	return g.registry.ResolveJoin(source, target)
}

func renderTable(keyword, table, alias string) string {
	if alias != "" {
		return keyword + " " + table + " AS " + alias
	}
	return keyword + " " + table
}
