package schema

import (
	"errors"
	"strings"
)

// ErrEmptyTableName is returned by Alias for an empty table name.
var ErrEmptyTableName = errors.New("table name must not be empty")

// Alias generates a short lowercase alias for a table name.
//
// Single-segment names keep their first character (first two when the name is
// longer than three characters); underscore-separated names concatenate the
// first character of each non-empty segment: "orders" → "or", "id" → "i",
// "order_items" → "oi".
//
// Alias performs no collision detection; callers that index aliases own the
// collision policy.
func Alias(tableName string) (string, error) {
	if tableName == "" {
		return "", ErrEmptyTableName
	}

	segments := strings.Split(tableName, "_")
	if len(segments) == 1 {
		if len(tableName) > 3 {
			return strings.ToLower(tableName[:2]), nil
		}
		return strings.ToLower(tableName[:1]), nil
	}

	var b strings.Builder
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		b.WriteByte(seg[0])
	}
	return strings.ToLower(b.String()), nil
}
