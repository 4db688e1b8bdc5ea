package schema

// ============================================================================
// INSPECTION — How a file's header row lines up with its declaration
// ============================================================================
// Used by the loader to decide which columns are available and by the CLI
// to explain why a question cannot be answered.
// ============================================================================

// Inspection is the result of matching one header row.
type Inspection struct {
	Source  string          `json:"source"`
	Matched map[string]int  `json:"matched"` // key → column position
	Missing []string        `json:"missing,omitempty"`
	Skipped []SkippedColumn `json:"skipped,omitempty"`
}

// SkippedColumn records a header that no declared column claimed.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Inspect matches headers against the source declaration.
func Inspect(src Source, headers []string) Inspection {
	matched, missing := src.Match(headers)

	used := make(map[int]bool, len(matched))
	for _, idx := range matched {
		used[idx] = true
	}

	var skipped []SkippedColumn
	for i, h := range headers {
		if used[i] {
			continue
		}
		reason := "not declared"
		if HeaderKey(h) == "" {
			reason = "empty header"
		}
		skipped = append(skipped, SkippedColumn{Column: h, Reason: reason})
	}

	return Inspection{
		Source:  src.Name,
		Matched: matched,
		Missing: missing,
		Skipped: skipped,
	}
}

// Has reports whether key was found in the header row.
func (in Inspection) Has(key string) bool {
	_, ok := in.Matched[key]
	return ok
}

// Complete reports whether every declared column was found.
func (in Inspection) Complete() bool {
	return len(in.Missing) == 0
}
