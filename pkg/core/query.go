package core

import "fmt"

// Standard ANSI SQL join type values.
const (
	JoinInner = "INNER"
	JoinLeft  = "LEFT"
	JoinRight = "RIGHT"
	JoinFull  = "FULL"
)

// TableRef is a table reference with an optional alias.
//
// An empty Alias means "render unaliased". The builder never fills it in
// eagerly; the compiler may substitute a registry-resolved alias for joins,
// but an alias set explicitly by the caller always wins.
type TableRef struct {
	Name  string
	Alias string
}

// JoinClause is one JOIN in accumulation order.
//
// An empty Condition is a deliberate signal that the compiler should resolve
// the ON fragment through the schema registry at build time.
type JoinClause struct {
	Table     TableRef
	Condition string
	Kind      string // JoinInner, JoinLeft, JoinRight, JoinFull
}

// WhereClause is one WHERE condition. Conditions are ANDed in insertion
// order; each produces exactly one named parameter at compile time.
type WhereClause struct {
	Field    string
	Operator string
	Value    any
}

// OrderSpec is one ORDER BY entry. Direction is stored normalized to
// upper-case ASC or DESC.
type OrderSpec struct {
	Field     string
	Direction string
}

// Query is the accumulated intent of one builder session. It is a plain
// value; the compiler treats it as read-only.
type Query struct {
	SelectFields []any
	From         *TableRef
	Joins        []JoinClause
	Wheres       []WhereClause
	Orders       []OrderSpec
	Limit        *int
	Offset       *int
}

// Expr is an opaque SQL expression usable as a select field, e.g.
// core.Expr("count(*) AS total"). The compiler renders it verbatim and does
// not interpret its contents.
type Expr string

// String implements fmt.Stringer.
func (e Expr) String() string { return string(e) }

// FieldText returns the textual form of a select field. Plain strings render
// as themselves, fmt.Stringer values via their own String method.
func FieldText(field any) string {
	switch f := field.(type) {
	case string:
		return f
	case fmt.Stringer:
		return f.String()
	default:
		return fmt.Sprint(f)
	}
}
