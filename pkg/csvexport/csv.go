// Package csvexport renders flat records as CSV text.
//
// The output differs from encoding/csv: only values containing a comma,
// a double quote or a newline are quoted, rows are joined with "\n" and
// there is no trailing newline.
package csvexport

import (
	"strings"
)

// Record maps a header to its value. Missing headers render empty.
type Record map[string]string

// Encode renders a header row followed by one row per record
func Encode(records []Record, headers []string) string {
	var b strings.Builder

	writeRow(&b, headers)
	for _, rec := range records {
		b.WriteByte('\n')
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = rec[h]
		}
		writeRow(&b, row)
	}

	return b.String()
}

// Quote escapes a single field
func Quote(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Quote(f))
	}
}
