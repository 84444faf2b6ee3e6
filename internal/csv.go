package internal

import (
	"strings"
)

// EncodeCSV renders flat records as CSV text. The header row is the union
// of keys across all records in first-seen order; a record missing a header
// key renders an empty field. Rows are joined with a single "\n" with no
// trailing newline. An empty record sequence encodes to the empty string
// with no header row.
//
// Header names themselves are never escaped: callers must avoid raw
// XML-derived header names containing commas or quotes. This is a known
// limitation of the format, not silently fixed here.
func EncodeCSV(records []*FlatRecord) string {
	if len(records) == 0 {
		return ""
	}

	var headers []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, key := range rec.Keys() {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, rec := range records {
		fields := make([]string, len(headers))
		for i, h := range headers {
			value, _ := rec.Get(h)
			fields[i] = escapeField(value)
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}
	return b.String()
}

// escapeField wraps a value in double quotes, doubling every internal
// double quote, when the value contains a comma, quote, or newline.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
