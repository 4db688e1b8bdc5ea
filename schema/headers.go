package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ============================================================================
// STRING UTILITIES
// ============================================================================

const byteOrderMark = "\uFEFF"

// HeaderKey reduces a header to the form used for matching:
// no byte-order mark, NFC, trimmed, snake_case.
// "ClientePaís" (NFC or NFD) and "Cliente País" both become "cliente_país".
func HeaderKey(h string) string {
	h = strings.TrimPrefix(h, byteOrderMark)
	h = norm.NFC.String(strings.TrimSpace(h))
	return toSnakeCase(h)
}

// apostrophes are the typographic variants folded into '\''.
var apostrophes = strings.NewReplacer(
	"´", "'", // acute accent, as in "Men´s Footwear"
	"’", "'",
	"‘", "'",
	"ʼ", "'",
	"`", "'",
)

// NormalizeText is the canonical form of every text value: NFC, trimmed,
// inner whitespace collapsed, apostrophes folded.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = apostrophes.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var result strings.Builder
	var prev rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			result.WriteRune('_')
		}
		result.WriteRune(r)
		prev = r
	}

	s = strings.ToLower(result.String())
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// toDisplayName turns a column key into a label.
// "gross_margin" → "Gross Margin"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[:1])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}
