package sqlite

import (
	"strings"
	"time"

	"github.com/kmitrowski/paperparse"
)

// parseRFC3339 parses a stored timestamp, wrapping failures so callers see
// which column held the bad value.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, paperparse.Errorf(paperparse.EINTERNAL, "invalid %s timestamp: %v", column, err)
	}
	return t, nil
}

// appendPagination adds LIMIT/OFFSET clauses when the filter requests them.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
