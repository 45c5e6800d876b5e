package bindgen

import (
	"strings"
	"unicode"
)

// initialisms are word parts that render fully upper-cased in Go names.
var initialisms = map[string]string{
	"id":   "ID",
	"sql":  "SQL",
	"json": "JSON",
	"url":  "URL",
	"uuid": "UUID",
	"oid":  "OID",
}

// GoName converts a SQL identifier (e.g. "spi_query_by_id") to an exported
// Go name (e.g. "SpiQueryByID"). It handles snake_case, kebab-case, and
// camelCase boundaries and upper-cases known initialisms.
func GoName(s string) string {
	words := splitWords(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if init, ok := initialisms[lower]; ok {
			words[i] = init
			continue
		}
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, "")
}

// splitWords breaks an identifier string into its component words.
// It handles snake_case, kebab-case, dot-separated, and camelCase
// boundaries.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '_' || r == '-' || r == '.':
			flush()
		case unicode.IsUpper(r):
			if current.Len() > 0 && i > 0 && unicode.IsLower(runes[i-1]) {
				flush()
			} else if current.Len() > 1 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}
