// Package qb provides the fluent query builder: an accumulator of query
// clauses that compiles into a parameterized SQL statement.
//
// A Builder is a single-session mutable value. It is NOT safe for concurrent
// use from multiple goroutines; share compiled output, not builders. Start a
// fresh Builder for each unrelated query — clause state is never reset
// between Build calls.
//
// Clause methods never fail mid-chain. Validation problems (bad order
// direction, negative limit) are recorded and surface from Build, so chains
// stay uninterrupted:
//
//	sql, params, err := qb.New(qb.WithRegistry(reg)).
//		Select("id", "name").
//		From("users").
//		WhereEq("status", "active").
//		OrderBy("name", "desc").
//		Limit(10).
//		Build()
package qb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/fluentsql/pkg/adapter"
	"github.com/leapstack-labs/fluentsql/pkg/core"
	"github.com/leapstack-labs/fluentsql/pkg/dialect"
	"github.com/leapstack-labs/fluentsql/pkg/schema"
	"github.com/leapstack-labs/fluentsql/pkg/sqlgen"
)

// ErrNoConnector is returned by Execute when the builder was constructed
// without a connector.
var ErrNoConnector = errors.New("no database connector provided for query execution")

// Builder accumulates query clauses and compiles them on Build.
type Builder struct {
	query     core.Query
	generator *sqlgen.Generator
	conn      adapter.Connector
	err       error
}

// Option configures a Builder.
type Option func(*builderConfig)

type builderConfig struct {
	registry *schema.Registry
	dialect  *dialect.Dialect
	conn     adapter.Connector
}

// WithRegistry supplies the schema registry used to resolve joins that carry
// no explicit condition.
func WithRegistry(r *schema.Registry) Option {
	return func(c *builderConfig) { c.registry = r }
}

// WithDialect sets the target dialect for compilation.
func WithDialect(d *dialect.Dialect) Option {
	return func(c *builderConfig) { c.dialect = d }
}

// WithConnector supplies the connector Execute runs against.
func WithConnector(conn adapter.Connector) Option {
	return func(c *builderConfig) { c.conn = conn }
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	cfg := builderConfig{dialect: dialect.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	genOpts := []sqlgen.Option{sqlgen.WithDialect(cfg.dialect)}
	if cfg.registry != nil {
		genOpts = append(genOpts, sqlgen.WithRegistry(cfg.registry))
	}
	return &Builder{
		generator: sqlgen.New(genOpts...),
		conn:      cfg.conn,
	}
}

// Select appends fields to the SELECT clause. A field is a plain column
// reference string or an opaque expression such as core.Expr("count(*)").
// Order is preserved and duplicates are kept.
func (b *Builder) Select(fields ...any) *Builder {
	b.query.SelectFields = append(b.query.SelectFields, fields...)
	return b
}

// From sets the FROM table. The string may carry an alias introduced by a
// standalone AS keyword in any case ("orders as o", "orders AS o"). Calling
// From again replaces the prior value.
func (b *Builder) From(table string) *Builder {
	ref := parseTableRef(table)
	b.query.From = &ref
	return b
}

// Join adds an INNER JOIN. An empty condition defers resolution to the
// schema registry at build time.
func (b *Builder) Join(table, condition string) *Builder {
	return b.join(table, condition, core.JoinInner)
}

// LeftJoin adds a LEFT JOIN.
func (b *Builder) LeftJoin(table, condition string) *Builder {
	return b.join(table, condition, core.JoinLeft)
}

// RightJoin adds a RIGHT JOIN.
func (b *Builder) RightJoin(table, condition string) *Builder {
	return b.join(table, condition, core.JoinRight)
}

// FullJoin adds a FULL JOIN.
func (b *Builder) FullJoin(table, condition string) *Builder {
	return b.join(table, condition, core.JoinFull)
}

// JoinKind adds a join of the given kind. Kind is upper-cased on storage.
func (b *Builder) JoinKind(kind, table, condition string) *Builder {
	return b.join(table, condition, strings.ToUpper(strings.TrimSpace(kind)))
}

func (b *Builder) join(table, condition, kind string) *Builder {
	b.query.Joins = append(b.query.Joins, core.JoinClause{
		Table:     parseTableRef(table),
		Condition: condition,
		Kind:      kind,
	})
	return b
}

// Where adds a condition with an explicit comparison operator. Conditions
// are ANDed in call order.
func (b *Builder) Where(field, operator string, value any) *Builder {
	b.query.Wheres = append(b.query.Wheres, core.WhereClause{
		Field:    field,
		Operator: operator,
		Value:    value,
	})
	return b
}

// WhereEq adds an equality condition. Shorthand for Where(field, "=", value).
func (b *Builder) WhereEq(field string, value any) *Builder {
	return b.Where(field, "=", value)
}

// OrderBy appends an ORDER BY entry. Direction defaults to ascending;
// anything other than asc or desc (any case) is a build-time error.
func (b *Builder) OrderBy(field string, direction ...string) *Builder {
	dir := "ASC"
	if len(direction) > 0 {
		dir = strings.ToUpper(strings.TrimSpace(direction[0]))
		if dir != "ASC" && dir != "DESC" {
			b.setErr(fmt.Errorf("invalid order direction %q: must be asc or desc", direction[0]))
			return b
		}
	}
	b.query.Orders = append(b.query.Orders, core.OrderSpec{Field: field, Direction: dir})
	return b
}

// Limit sets the LIMIT clause. Negative values are a build-time error.
// Last call wins.
func (b *Builder) Limit(n int) *Builder {
	if n < 0 {
		b.setErr(fmt.Errorf("limit must not be negative, got %d", n))
		return b
	}
	b.query.Limit = &n
	return b
}

// Offset sets the OFFSET clause. Negative values are a build-time error.
// Last call wins.
func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		b.setErr(fmt.Errorf("offset must not be negative, got %d", n))
		return b
	}
	b.query.Offset = &n
	return b
}

// setErr records the first clause error; later errors are dropped.
func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Query returns a copy of the accumulated AST.
func (b *Builder) Query() core.Query {
	return b.query
}

// Build compiles the accumulated clauses into SQL text and a parameter map.
// Build is a pure function of the builder state: calling it twice without
// mutation in between yields identical output.
func (b *Builder) Build() (string, map[string]any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	return b.generator.Compile(&b.query)
}

// Execute compiles the query and runs it through the configured connector.
func (b *Builder) Execute(ctx context.Context) ([]adapter.Row, error) {
	if b.conn == nil {
		return nil, ErrNoConnector
	}
	sqlStr, params, err := b.Build()
	if err != nil {
		return nil, err
	}
	return b.conn.ExecuteQuery(ctx, sqlStr, params)
}
