package qb

import (
	"strings"

	"github.com/leapstack-labs/fluentsql/pkg/core"
)

// parseTableRef splits a table string into name and optional alias. The
// alias is introduced by a standalone AS token in any case; an AS embedded
// in an identifier ("assets") never matches. Both halves are trimmed of
// surrounding whitespace.
func parseTableRef(table string) core.TableRef {
	fields := strings.Fields(table)
	for i := 1; i < len(fields)-1; i++ {
		if strings.EqualFold(fields[i], "AS") {
			return core.TableRef{
				Name:  strings.Join(fields[:i], " "),
				Alias: strings.Join(fields[i+1:], " "),
			}
		}
	}
	return core.TableRef{Name: strings.TrimSpace(table)}
}
