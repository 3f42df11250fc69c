package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/fluentsql/internal/config"
	"github.com/leapstack-labs/fluentsql/pkg/core"
	"github.com/leapstack-labs/fluentsql/pkg/dialect"
	"github.com/leapstack-labs/fluentsql/pkg/qb"
	"github.com/leapstack-labs/fluentsql/pkg/schema"
)

// QueryFlags holds the clause flags shared by compile and run.
type QueryFlags struct {
	Selects []string
	From    string
	Joins   []string
	Wheres  []string
	Orders  []string
	Limit   int
	Offset  int
}

// unset sentinel for limit/offset flags.
const unsetInt = -1

// buildRegistry loads the schema metadata file into a registry. Without a
// configured schema file an empty registry is returned; joins then need
// explicit conditions.
func buildRegistry(cfg *config.Config) (*schema.Registry, error) {
	reg := schema.NewRegistry(newLogger(cfg))
	if cfg.SchemaFile == "" {
		return reg, nil
	}
	md, err := schema.LoadMetadata(cfg.SchemaFile)
	if err != nil {
		return nil, err
	}
	reg.RegisterSchema(md)
	return reg, nil
}

// buildQuery assembles a builder from the clause flags.
func buildQuery(f *QueryFlags, cfg *config.Config, opts ...qb.Option) (*qb.Builder, error) {
	d, ok := dialect.Get(cfg.Dialect)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %v)", cfg.Dialect, dialect.List())
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	opts = append(opts, qb.WithRegistry(reg), qb.WithDialect(d))
	b := qb.New(opts...)

	for _, sel := range f.Selects {
		for _, field := range strings.Split(sel, ",") {
			if field = strings.TrimSpace(field); field != "" {
				b.Select(field)
			}
		}
	}

	if f.From != "" {
		b.From(f.From)
	}

	for _, j := range f.Joins {
		kind, table, condition, err := parseJoinFlag(j)
		if err != nil {
			return nil, err
		}
		b.JoinKind(kind, table, condition)
	}

	for _, w := range f.Wheres {
		field, op, value, err := parseWhereFlag(w)
		if err != nil {
			return nil, err
		}
		b.Where(field, op, value)
	}

	for _, o := range f.Orders {
		field, dir, err := parseOrderFlag(o)
		if err != nil {
			return nil, err
		}
		b.OrderBy(field, dir)
	}

	if f.Limit != unsetInt {
		b.Limit(f.Limit)
	}
	if f.Offset != unsetInt {
		b.Offset(f.Offset)
	}

	return b, nil
}

// parseJoinFlag parses a --join value of the form
// "[kind:]table[ ON condition]", e.g. "left:payments ON o.id = p.order_id"
// or "order_items as oi". A missing condition defers to the registry.
func parseJoinFlag(value string) (kind, table, condition string, err error) {
	kind = core.JoinInner
	rest := strings.TrimSpace(value)

	if idx := strings.Index(rest, ":"); idx > 0 && !strings.ContainsAny(rest[:idx], " \t") {
		switch strings.ToUpper(rest[:idx]) {
		case core.JoinInner, core.JoinLeft, core.JoinRight, core.JoinFull:
			kind = strings.ToUpper(rest[:idx])
			rest = strings.TrimSpace(rest[idx+1:])
		}
	}

	fields := strings.Fields(rest)
	for i, tok := range fields {
		if strings.EqualFold(tok, "ON") {
			table = strings.Join(fields[:i], " ")
			condition = strings.Join(fields[i+1:], " ")
			if table == "" || condition == "" {
				return "", "", "", fmt.Errorf("invalid join %q: expected \"table ON condition\"", value)
			}
			return kind, table, condition, nil
		}
	}

	if rest == "" {
		return "", "", "", fmt.Errorf("invalid join %q: table is required", value)
	}
	return kind, rest, "", nil
}

// parseWhereFlag parses a --where value: either "field op value"
// ("age >= 21") or the shorthand "field=value" ("status=active").
func parseWhereFlag(value string) (field, op string, val any, err error) {
	fields := strings.Fields(value)
	if len(fields) >= 3 {
		return fields[0], fields[1], strings.Join(fields[2:], " "), nil
	}

	if idx := strings.Index(value, "="); idx > 0 {
		return strings.TrimSpace(value[:idx]), "=", strings.TrimSpace(value[idx+1:]), nil
	}

	return "", "", nil, fmt.Errorf("invalid where %q: expected \"field op value\" or \"field=value\"", value)
}

// parseOrderFlag parses an --order value: "field" or "field desc".
func parseOrderFlag(value string) (field, dir string, err error) {
	fields := strings.Fields(value)
	switch len(fields) {
	case 1:
		return fields[0], "asc", nil
	case 2:
		return fields[0], fields[1], nil
	default:
		return "", "", fmt.Errorf("invalid order %q: expected \"field [asc|desc]\"", value)
	}
}
