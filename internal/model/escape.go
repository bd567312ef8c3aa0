package model

import "strings"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// escapeField quotes s when it holds a comma or a quote, doubling inner quotes.
// Line breaks become spaces since a record must stay on one line.
func escapeField(s string) string {
	s = lineBreaks.Replace(s)
	if !strings.ContainsAny(s, `,"`) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// splitFields splits a line on commas outside quoted spans and unescapes each
// field. A quote at the start of a field opens a span; inside it "" is a
// literal quote and a lone quote closes it. Outside a span "" is also read as
// a literal quote.
func splitFields(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
		atStart  = true
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		doubled := c == '"' && i+1 < len(line) && line[i+1] == '"'
		switch {
		case inQuotes && doubled:
			cur.WriteByte('"')
			i++
		case inQuotes && c == '"':
			inQuotes = false
		case inQuotes:
			cur.WriteByte(c)
		case c == ',':
			fields = append(fields, cur.String())
			cur.Reset()
			atStart = true
			continue
		case c == '"' && doubled && !atStart:
			cur.WriteByte('"')
			i++
		case c == '"':
			inQuotes = true
		default:
			cur.WriteByte(c)
		}
		atStart = false
	}
	return append(fields, cur.String())
}
