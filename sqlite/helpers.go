package sqlite

import "strings"

// inClause builds "prefix(?, ?, ...)" plus its argument slice for an
// IN query over the given IDs. IDs are always bound as parameters, never
// concatenated into the SQL text.
func inClause(prefix string, ids []int64) (string, []any) {
	var query strings.Builder
	query.WriteString(prefix)
	query.WriteString("(")

	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query.WriteString(", ")
		}
		query.WriteString("?")
		args = append(args, id)
	}
	query.WriteString(")")

	return query.String(), args
}
