package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlias(t *testing.T) {
	tests := []struct {
		name  string
		table string
		want  string
	}{
		{
			name:  "single word longer than three chars",
			table: "orders",
			want:  "or",
		},
		{
			name:  "short single word",
			table: "id",
			want:  "i",
		},
		{
			name:  "exactly three chars",
			table: "tag",
			want:  "t",
		},
		{
			name:  "four chars",
			table: "user",
			want:  "us",
		},
		{
			name:  "two segments",
			table: "order_items",
			want:  "oi",
		},
		{
			name:  "three segments",
			table: "customer_order_history",
			want:  "coh",
		},
		{
			name:  "empty segments are skipped",
			table: "order__items",
			want:  "oi",
		},
		{
			name:  "uppercase input is lowercased",
			table: "ORDERS",
			want:  "or",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Alias(tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlias_EmptyName(t *testing.T) {
	_, err := Alias("")
	assert.ErrorIs(t, err, ErrEmptyTableName)
}

func TestAlias_Deterministic(t *testing.T) {
	first, err := Alias("order_items")
	require.NoError(t, err)
	second, err := Alias("order_items")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
