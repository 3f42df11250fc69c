// Package core defines the query AST shared by the fluent builder (pkg/qb)
// and the SQL compiler (pkg/sqlgen).
//
// This package contains only data types. The builder accumulates a Query,
// the compiler turns it into SQL text plus a parameter map. Keeping the AST
// in a leaf package lets both sides depend on it without depending on each
// other.
package core
