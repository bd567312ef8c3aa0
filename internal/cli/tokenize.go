package cli

import (
	"strings"
	"unicode"
)

// Token is one word of a command line.
// Quoted is set when any part of the word came from a "..." span; such
// tokens are never treated as flags.
type Token struct {
	Text   string
	Quoted bool
}

// Tokenize splits a line on whitespace. A double-quoted span is kept as part
// of one token, and inside it \" and \\ are escapes. An unterminated quote
// runs to the end of the line.
func Tokenize(line string) []Token {
	var (
		out      []Token
		cur      strings.Builder
		inQuotes bool
		inToken  bool
		quoted   bool
	)
	flush := func() {
		if inToken {
			out = append(out, Token{Text: cur.String(), Quoted: quoted})
		}
		cur.Reset()
		inToken, quoted = false, false
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
			cur.WriteRune(runes[i+1])
			i++
		case inQuotes && r == '"':
			inQuotes = false
		case inQuotes:
			cur.WriteRune(r)
		case r == '"':
			inQuotes, inToken, quoted = true, true, true
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	flush()
	return out
}

// TokensFromArgs turns process arguments into tokens. The shell already
// split them, so an argument holding whitespace counts as quoted.
func TokensFromArgs(args []string) []Token {
	out := make([]Token, 0, len(args))
	for _, a := range args {
		out = append(out, Token{Text: a, Quoted: strings.ContainsFunc(a, unicode.IsSpace)})
	}
	return out
}

// isFlag reports whether tok is one of the flags in set.
func isFlag(tok Token, set map[string]bool) bool {
	return !tok.Quoted && set[tok.Text]
}

// splitFlags walks tokens once. Words before the first flag are returned as
// lead; each flag then collects the words up to the next flag. A repeated
// flag keeps its last value.
func splitFlags(tokens []Token, set map[string]bool) (lead []string, values map[string][]string) {
	values = make(map[string][]string)
	current := ""
	for _, tok := range tokens {
		if isFlag(tok, set) {
			current = tok.Text
			values[current] = []string{}
			continue
		}
		if current == "" {
			lead = append(lead, tok.Text)
			continue
		}
		values[current] = append(values[current], tok.Text)
	}
	return lead, values
}
