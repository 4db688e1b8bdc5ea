package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func customers(view RecordView) []string {
	out := make([]string, view.Len())
	for i := range out {
		out[i] = view.Dimension(i, "customer_name")
	}
	return out
}

func TestApplyFiltersEmptyReturnsSameView(t *testing.T) {
	view := FactView(salesFixture())

	assert.Same(t, view, ApplyFilters(view, Filters{}))
}

func TestApplyFiltersDimensions(t *testing.T) {
	view := FactView(salesFixture())

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name:    "single value",
			filters: Filters{Dimensions: map[string][]string{"customer_country": {"Brazil"}}},
			want:    []string{"A", "B"},
		},
		{
			name:    "or within a key",
			filters: Filters{Dimensions: map[string][]string{"customer_country": {"UK", "France"}}},
			want:    []string{"D", "E"},
		},
		{
			name: "and across keys",
			filters: Filters{Dimensions: map[string][]string{
				"customer_country": {"Brazil", "USA"},
				"category_name":    {"Men's Footwear"},
			}},
			want: []string{"A", "A"},
		},
		{
			name:    "case and apostrophe folding",
			filters: Filters{Dimensions: map[string][]string{"category_name": {"MEN’S FOOTWEAR"}}},
			want:    []string{"A", "A", "C"},
		},
		{
			name:    "no match",
			filters: Filters{Dimensions: map[string][]string{"customer_country": {"Japan"}}},
			want:    []string{},
		},
		{
			name:    "joined column",
			filters: Filters{Dimensions: map[string][]string{"seller_name": {"Janet"}}},
			want:    []string{"C", "E"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, customers(ApplyFilters(view, tt.filters)))
		})
	}
}

func TestApplyFiltersYearRangeIsInclusive(t *testing.T) {
	rows := Widen([]FactRow{
		{CustomerName: "before", Date: day(2008, 12, 31)},
		{CustomerName: "lower", Date: day(2009, 1, 1)},
		{CustomerName: "inside", Date: day(2010, 6, 1)},
		{CustomerName: "upper", Date: day(2012, 12, 31)},
		{CustomerName: "after", Date: day(2013, 1, 1)},
		{CustomerName: "undated"},
	})

	filtered := ApplyFilters(FactView(rows), Filters{Ranges: map[string]Range{"year": {Min: 2009, Max: 2012}}})

	assert.Equal(t, []string{"lower", "inside", "upper"}, customers(filtered))
}

func TestApplyFiltersRequire(t *testing.T) {
	filtered := ApplyFilters(FactView(salesFixture()), Filters{Require: []string{"carrier_name"}})

	assert.Equal(t, []string{"A", "B", "A", "D", "E"}, customers(filtered))
}

func TestFiltersKeys(t *testing.T) {
	f := Filters{
		Dimensions: map[string][]string{"customer_country": {"Brazil"}, "category_name": nil},
		Ranges:     map[string]Range{"year": {Min: 2009, Max: 2012}},
		Require:    []string{"customer_country", "date"},
	}

	assert.Equal(t, []string{"customer_country", "date", "year"}, f.Keys())
	assert.True(t, f.HasFilter("year"))
	assert.False(t, f.HasFilter("category_name"))
	assert.False(t, f.IsEmpty())
	assert.True(t, Filters{Dimensions: map[string][]string{"x": {}}}.IsEmpty())
}
