package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a query into one line for span names and
// attributes. A multi-row insert keeps only its first tuple so a generated
// schedule does not flood the trace.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := collapseInsertRows(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}

func collapseInsertRows(query string) string {
	head, rows, ok := strings.Cut(query, " VALUES (")
	if !ok || !strings.HasPrefix(strings.ToUpper(head), "INSERT") {
		return query
	}

	first, rest, ok := strings.Cut(rows, "), (")
	if !ok {
		return query
	}
	extra := strings.Count(rest, "), (") + 1

	last := rest
	if idx := strings.LastIndex(rest, "), ("); idx >= 0 {
		last = rest[idx+len("), ("):]
	}
	suffix := ""
	if idx := strings.Index(last, ")"); idx >= 0 {
		suffix = last[idx+1:]
	}
	return fmt.Sprintf("%s VALUES (%s) /* +%d rows */%s", head, first, extra, suffix)
}
