package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// FILTERS — Dimension-Based Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// Filters define which records to include.
//
//   - Dimensions: allowed values per key. OR within a key, AND across keys.
//     Matching ignores case and typographic apostrophes.
//   - Ranges: inclusive integer bounds per key (e.g. year 2009..2012).
//     A value that is not an integer fails the range.
//   - Require: keys that must be non-empty.
//
// Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Ranges     map[string]Range    `json:"ranges,omitempty" yaml:"ranges,omitempty"`
	Require    []string            `json:"require,omitempty" yaml:"require,omitempty"`
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// HasFilter returns true if a specific dimension filter is set.
func (f Filters) HasFilter(dimension string) bool {
	if vals, ok := f.Dimensions[dimension]; ok && len(vals) > 0 {
		return true
	}
	_, ok := f.Ranges[dimension]
	return ok
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return len(f.Ranges) == 0 && len(f.Require) == 0
}

// Keys returns every column key the filters read, sorted.
func (f Filters) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k, vals := range f.Dimensions {
		if len(vals) > 0 {
			add(k)
		}
	}
	for k := range f.Ranges {
		add(k)
	}
	for _, k := range f.Require {
		add(k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyFilters returns a view of records matching all filters.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	// Pre-build folded lookup sets for each dimension filter
	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = foldSet(allowed)
		}
	}

	// Single pass — record passes if it matches ALL constraints
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matches(view, i, sets, filters.Ranges, filters.Require) {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func matches(view RecordView, i int, sets map[string]map[string]bool, ranges map[string]Range, require []string) bool {
	for _, key := range require {
		if view.Dimension(i, key) == "" {
			return false
		}
	}
	for dim, set := range sets {
		if !set[fold(view.Dimension(i, dim))] {
			return false
		}
	}
	for dim, r := range ranges {
		v, err := strconv.Atoi(view.Dimension(i, dim))
		if err != nil || !r.Contains(v) {
			return false
		}
	}
	return true
}

// fold is the comparison form of a filter value.
func fold(s string) string {
	return strings.ToLower(schema.NormalizeText(s))
}

// foldSet converts a string slice to a folded lookup set.
func foldSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[fold(item)] = true
	}
	return set
}
