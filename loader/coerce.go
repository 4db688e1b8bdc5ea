package loader

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// COERCION — Raw cell text → typed values
// ============================================================================
// Malformed values never drop a row: numbers fall back to 0, dates to the
// zero time (missing). Every function here is idempotent on its own output.
// ============================================================================

// dateLayouts are tried in order. Day comes before month.
var dateLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseNumber reads a decimal number. Empty, non-numeric, NaN and ±Inf
// all become 0.
func ParseNumber(s string) float64 {
	v, ok := parseNumber(s)
	if !ok {
		return 0
	}
	return v
}

// parseNumber reports whether s held a usable number.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseDate reads a day-first date ("31/12/2009", optionally with a time)
// or an ISO date. Unparseable text yields the zero time.
func ParseDate(s string) time.Time {
	t, _ := parseDate(s)
	return t
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeID gives identifiers one spelling so fact keys and dimension ids
// compare equal: " 3 ", "3" and "3.0" all become "3".
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return s
}

// NormalizeText is the canonical form of a text cell.
func NormalizeText(s string) string {
	return schema.NormalizeText(s)
}

// aliasMap resolves alternative spellings of a value ("United Kingdom" → "UK").
// Lookups ignore case and apostrophe variants.
type aliasMap map[string]string

func newAliasMap(aliases map[string]string) aliasMap {
	m := make(aliasMap, len(aliases))
	for from, to := range aliases {
		m[strings.ToLower(NormalizeText(from))] = NormalizeText(to)
	}
	return m
}

func (m aliasMap) resolve(s string) string {
	if to, ok := m[strings.ToLower(s)]; ok {
		return to
	}
	return s
}
