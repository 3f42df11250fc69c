// Package dialect provides SQL dialect configuration and named-parameter
// binding.
//
// The compiler always emits named placeholders of the form :pN. Dialect
// selection does not change the emitted clauses — keyword casing is fixed —
// but it tells connectors how to translate the named parameter map into the
// placeholder style their driver understands.
package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderStyle defines how query parameters are formatted by a driver.
type PlaceholderStyle int

const (
	// PlaceholderNamed passes :name placeholders through unchanged
	// (Snowflake, Oracle).
	PlaceholderNamed PlaceholderStyle = iota
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion
	// PlaceholderDollar uses $1, $2, etc. (PostgreSQL).
	PlaceholderDollar
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	// Name is the dialect identifier (e.g., "snowflake", "postgres").
	Name string

	// DefaultSchema is the default schema name ("PUBLIC" for Snowflake,
	// "public" for Postgres, "main" for DuckDB and SQLite).
	DefaultSchema string

	// Placeholder defines how query parameters are formatted.
	Placeholder PlaceholderStyle
}

// MissingParameterError is returned by Bind when the SQL text references a
// placeholder that has no entry in the parameter map.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("no value bound for parameter :%s", e.Name)
}

// Bind translates a statement with :name placeholders into the dialect's
// placeholder style and returns the driver arguments in placeholder order.
//
// For PlaceholderNamed the SQL is returned unchanged and the args are empty;
// callers bind the parameter map through their driver's native named-binding
// mechanism. A :: token (cast syntax) is never treated as a placeholder.
func (d *Dialect) Bind(sqlStr string, params map[string]any) (string, []any, error) {
	if d.Placeholder == PlaceholderNamed {
		// Verify every referenced placeholder is bound before handing the
		// statement to the driver.
		for _, name := range placeholderNames(sqlStr) {
			if _, ok := params[name]; !ok {
				return "", nil, &MissingParameterError{Name: name}
			}
		}
		return sqlStr, nil, nil
	}

	var (
		out      strings.Builder
		args     []any
		ordinals = make(map[string]int) // name → $N ordinal, Dollar style only
	)
	out.Grow(len(sqlStr))

	for i := 0; i < len(sqlStr); i++ {
		c := sqlStr[i]
		if c != ':' {
			out.WriteByte(c)
			continue
		}
		// Skip :: casts and bare colons.
		if i+1 < len(sqlStr) && sqlStr[i+1] == ':' {
			out.WriteString("::")
			i++
			continue
		}
		start := i + 1
		end := start
		for end < len(sqlStr) && isNameByte(sqlStr[end]) {
			end++
		}
		if end == start {
			out.WriteByte(c)
			continue
		}
		name := sqlStr[start:end]
		val, ok := params[name]
		if !ok {
			return "", nil, &MissingParameterError{Name: name}
		}

		switch d.Placeholder {
		case PlaceholderQuestion:
			out.WriteByte('?')
			args = append(args, val)
		case PlaceholderDollar:
			n, seen := ordinals[name]
			if !seen {
				n = len(ordinals) + 1
				ordinals[name] = n
				args = append(args, val)
			}
			out.WriteString("$" + strconv.Itoa(n))
		}
		i = end - 1
	}

	return out.String(), args, nil
}

// FormatPlaceholder returns the textual placeholder for the given 1-based
// position in this dialect.
func (d *Dialect) FormatPlaceholder(pos int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(pos)
	case PlaceholderNamed:
		return ":p" + strconv.Itoa(pos-1)
	default:
		return "?"
	}
}

// placeholderNames returns the placeholder names referenced by the SQL text
// in first-appearance order.
func placeholderNames(sqlStr string) []string {
	var names []string
	seen := make(map[string]bool)
	for i := 0; i < len(sqlStr); i++ {
		if sqlStr[i] != ':' {
			continue
		}
		if i+1 < len(sqlStr) && sqlStr[i+1] == ':' {
			i++
			continue
		}
		start := i + 1
		end := start
		for end < len(sqlStr) && isNameByte(sqlStr[end]) {
			end++
		}
		if end > start {
			name := sqlStr[start:end]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i = end - 1
		}
	}
	return names
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
