package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable(t *testing.T) {
	q := question("top-customers", "customer_name")
	q.Limit = 2
	report, err := ComputeReport(q, fixtureDataset())
	require.NoError(t, err)

	table := BuildTable(report, q)

	assert.Equal(t, "Question top-customers", table.Title)
	require.Len(t, table.Columns, 3)
	assert.Equal(t, "Customer", table.Columns[0].Label)
	assert.Equal(t, "Sales ($)", table.Columns[1].Label)
	assert.Equal(t, "Rows", table.Columns[2].Label)

	assert.Equal(t, [][]string{
		{"A", "130.00", "2"},
		{"B", "50.00", "1"},
	}, table.Rows)

	require.NotNil(t, table.Summary)
	assert.Equal(t, "Total (2 groups)", table.Summary.Label)
	assert.Equal(t, "180.00", table.Summary.Values["value"])
	assert.Equal(t, "3", table.Summary.Values["count"])
}

func TestBuildTableAxisOverrides(t *testing.T) {
	q := question("carriers", "carrier_name")
	q.Aggregation = AggCount
	q.XAxis = "Carrier"

	report, err := ComputeReport(q, fixtureDataset())
	require.NoError(t, err)
	table := BuildTable(report, q)

	assert.Equal(t, "Carrier", table.Columns[0].Label)
	assert.Equal(t, "Count", table.Columns[1].Label)
}

func TestBuildTableEmptyReport(t *testing.T) {
	q := question("none", "customer_name")
	q.Filters.Dimensions = map[string][]string{"customer_country": {"Japan"}}

	report, err := ComputeReport(q, fixtureDataset())
	require.NoError(t, err)
	table := BuildTable(report, q)

	assert.Empty(t, table.Rows)
	assert.Nil(t, table.Summary)
	assert.Len(t, table.Columns, 3)
}
