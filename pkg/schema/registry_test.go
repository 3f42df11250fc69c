package schema

import (
	"os"
	"testing"

	"github.com/leapstack-labs/fluentsql/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterSchema_DerivesJoinPaths(t *testing.T) {
	r := NewRegistry(testutil.NewTestLogger(t))

	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{
			"orders":    {Alias: "o"},
			"customers": {Alias: "c"},
		},
		Relationships: map[string]Relationship{
			"orders_customers": {
				SourceTable:  "orders",
				SourceColumn: "customer_id",
				TargetTable:  "customers",
				TargetColumn: "id",
			},
		},
	})

	jp, ok := r.ResolveJoin("orders", "customers")
	require.True(t, ok, "expected join path orders -> customers")
	assert.Equal(t, "customers", jp.Table)
	assert.Equal(t, "c", jp.Alias)
	assert.Equal(t, "orders.customer_id = c.id", jp.Condition)
}

func TestRegistry_RegisterSchema_GeneratedTargetAlias(t *testing.T) {
	r := NewRegistry(nil)

	// No declared alias for order_items: the generated alias is used.
	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{
			"orders":      {},
			"order_items": {},
		},
		Relationships: map[string]Relationship{
			"rel": {
				SourceTable:  "orders",
				SourceColumn: "id",
				TargetTable:  "order_items",
				TargetColumn: "order_id",
			},
		},
	})

	jp, ok := r.ResolveJoin("orders", "order_items")
	require.True(t, ok)
	assert.Equal(t, "oi", jp.Alias)
	assert.Equal(t, "orders.id = oi.order_id", jp.Condition)
}

func TestRegistry_RegisterSchema_SkipsIncompleteRelationships(t *testing.T) {
	r := NewRegistry(testutil.NewTestLogger(t))

	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{"orders": {}, "customers": {}},
		Relationships: map[string]Relationship{
			"missing_column": {
				SourceTable: "orders",
				TargetTable: "customers",
				// SourceColumn and TargetColumn absent
			},
		},
	})

	_, ok := r.ResolveJoin("orders", "customers")
	assert.False(t, ok, "incomplete relationship must not produce a join path")
}

func TestRegistry_RegisterSchema_LastWriteWinsPerPair(t *testing.T) {
	r := NewRegistry(nil)

	// Two relationships over the same ordered (source, target) pair:
	// derivation order is sorted by relationship id, so "b_rel" wins.
	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{
			"orders":    {},
			"customers": {Alias: "c"},
		},
		Relationships: map[string]Relationship{
			"a_rel": {
				SourceTable:  "orders",
				SourceColumn: "customer_id",
				TargetTable:  "customers",
				TargetColumn: "id",
			},
			"b_rel": {
				SourceTable:  "orders",
				SourceColumn: "billing_customer_id",
				TargetTable:  "customers",
				TargetColumn: "id",
			},
		},
	})

	jp, ok := r.ResolveJoin("orders", "customers")
	require.True(t, ok)
	assert.Equal(t, "orders.billing_customer_id = c.id", jp.Condition)
}

func TestRegistry_RegisterSchema_TrustsPrecomputedJoinPaths(t *testing.T) {
	r := NewRegistry(nil)

	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{"orders": {}, "customers": {Alias: "c"}},
		Relationships: map[string]Relationship{
			// Would derive a different condition; must be ignored in favor
			// of the precomputed index.
			"rel": {
				SourceTable:  "orders",
				SourceColumn: "customer_id",
				TargetTable:  "customers",
				TargetColumn: "id",
			},
		},
		JoinPaths: map[string]map[string]JoinPath{
			"orders": {
				"customers": {
					Table:     "customers",
					Alias:     "cust",
					Condition: "orders.cust_ref = cust.ref",
				},
			},
		},
	})

	jp, ok := r.ResolveJoin("orders", "customers")
	require.True(t, ok)
	assert.Equal(t, "cust", jp.Alias)
	assert.Equal(t, "orders.cust_ref = cust.ref", jp.Condition)
}

func TestRegistry_RegisterSchema_ReplacesWholesale(t *testing.T) {
	r := NewRegistry(nil)

	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{"orders": {Alias: "o"}},
	})
	require.Equal(t, 1, r.Count())

	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{"customers": {Alias: "c"}},
	})

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []string{"customers"}, r.Tables())
	_, ok := r.TableAlias("orders")
	assert.False(t, ok, "old snapshot must be gone after re-registration")
}

func TestRegistry_ResolveJoin_AbsenceIsNormal(t *testing.T) {
	r := NewRegistry(nil)
	r.RegisterSchema(&Metadata{Tables: map[string]TableDef{"orders": {}}})

	_, ok := r.ResolveJoin("orders", "unknown")
	assert.False(t, ok)

	// One-hop only: no transitive resolution.
	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{"a": {}, "b": {}, "c": {}},
		Relationships: map[string]Relationship{
			"ab": {SourceTable: "a", SourceColumn: "b_id", TargetTable: "b", TargetColumn: "id"},
			"bc": {SourceTable: "b", SourceColumn: "c_id", TargetTable: "c", TargetColumn: "id"},
		},
	})
	_, ok = r.ResolveJoin("a", "c")
	assert.False(t, ok, "multi-hop join paths are out of scope")
}

func TestRegistry_Accessors(t *testing.T) {
	r := NewRegistry(nil)
	r.RegisterSchema(&Metadata{
		Tables: map[string]TableDef{
			"orders":    {Alias: "o"},
			"customers": {},
		},
		Columns: map[string][]ColumnDef{
			"orders": {{Name: "id", Type: "NUMBER"}, {Name: "status", Type: "TEXT"}},
		},
	})

	assert.Equal(t, []string{"customers", "orders"}, r.Tables())

	alias, ok := r.TableAlias("orders")
	assert.True(t, ok)
	assert.Equal(t, "o", alias)

	_, ok = r.TableAlias("customers")
	assert.False(t, ok)

	assert.Len(t, r.Columns("orders"), 2)
	assert.Empty(t, r.Columns("customers"))
}

func TestLoadMetadata(t *testing.T) {
	path := t.TempDir() + "/schema.yaml"
	doc := `
tables:
  orders:
    alias: o
  customers:
    alias: c
columns:
  orders:
    - name: id
      type: NUMBER
    - name: customer_id
      type: NUMBER
relationships:
  orders_customers:
    source_table: orders
    source_column: customer_id
    target_table: customers
    target_column: id
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	md, err := LoadMetadata(path)
	require.NoError(t, err)

	assert.Equal(t, "o", md.Tables["orders"].Alias)
	assert.Len(t, md.Columns["orders"], 2)
	assert.Equal(t, "customer_id", md.Relationships["orders_customers"].SourceColumn)

	r := NewRegistry(nil)
	r.RegisterSchema(md)
	jp, ok := r.ResolveJoin("orders", "customers")
	require.True(t, ok)
	assert.Equal(t, "orders.customer_id = c.id", jp.Condition)
}

func TestLoadMetadata_MissingFile(t *testing.T) {
	_, err := LoadMetadata(t.TempDir() + "/nope.yaml")
	assert.Error(t, err)
}
