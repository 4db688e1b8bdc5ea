package loader

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/schema"
)

func TestReadFacts(t *testing.T) {
	in := strings.Join([]string{
		"ClienteNome,ClientePaís,CategoriaNome,TransportadoraID,Vendas,Frete,Data",
		"Ana,Brazil,Men´s  Footwear,1.0,100.5,abc,15/03/2009",
		"Bob,United Kingdom,Womens wear,2,NaN,3,not a date",
		"Cid,USA",
	}, "\n")

	var logs bytes.Buffer
	table, err := ReadFacts(strings.NewReader(in),
		WithCountryAliases(map[string]string{"United Kingdom": "UK"}),
		WithLogger(zerolog.New(&logs)))

	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	ana := table.Rows[0]
	assert.Equal(t, "Ana", ana.CustomerName)
	assert.Equal(t, "Men's Footwear", ana.CategoryName)
	assert.Equal(t, "1", ana.CarrierID)
	assert.Equal(t, 100.5, ana.Sale)
	assert.Equal(t, 0.0, ana.Freight)
	assert.Equal(t, 2009, ana.Date.Year())

	bob := table.Rows[1]
	assert.Equal(t, "UK", bob.CustomerCountry)
	assert.Equal(t, 0.0, bob.Sale)
	assert.False(t, bob.HasDate())

	cid := table.Rows[2]
	assert.Equal(t, "USA", cid.CustomerCountry)
	assert.Empty(t, cid.CategoryName)
	assert.False(t, cid.HasDate())

	assert.Equal(t, 3, table.Malformed)
	assert.True(t, table.Inspection.Has(schema.Sale))
	assert.Contains(t, table.Inspection.Missing, schema.GrossMargin)
	assert.Contains(t, table.Inspection.Missing, schema.SellerID)
	assert.False(t, table.Inspection.Complete())
	assert.Contains(t, logs.String(), "declared columns not found")
	assert.Contains(t, logs.String(), schema.GrossMargin)
}

func TestReadFactsCompleteHeaderLogsNothing(t *testing.T) {
	in := "ClienteNome,ClientePaís,ClientePaísID,ClienteCidade,CategoriaNome,VendedorID,FornecedorID," +
		"TransportadoraID,Vendas,Desconto,Margem Bruta,Frete,Data\n" +
		"Ana,Brazil,BR,Rio,Men's Footwear,1,10,1,100,5,30,7,15/03/2009\n"

	var logs bytes.Buffer
	table, err := ReadFacts(strings.NewReader(in), WithLogger(zerolog.New(&logs)))

	require.NoError(t, err)
	assert.True(t, table.Inspection.Complete())
	assert.NotContains(t, logs.String(), "declared columns not found")
}

func TestReadFactsSemicolon(t *testing.T) {
	in := "Cliente Nome;Vendas\nAna;10\nBob;2.5\n"

	table, err := ReadFacts(strings.NewReader(in), WithComma(';'))

	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2.5, table.Rows[1].Sale)
}

func TestReadFactsEmptyInput(t *testing.T) {
	_, err := ReadFacts(strings.NewReader(""))

	assert.EqualError(t, err, "failed to read sales headers: EOF")
}

func TestReadDimension(t *testing.T) {
	in := "\uFEFFVendedorID,VendedorNome\n1,Nancy Davolio\n2.0, Andrew  Fuller \n,Nobody\n"

	dim, err := ReadDimension(strings.NewReader(in), schema.Sellers)

	require.NoError(t, err)
	assert.Equal(t, 2, dim.Table.Len())
	name, ok := dim.Table.Lookup("2")
	assert.True(t, ok)
	assert.Equal(t, "Andrew Fuller", name)
}

func TestReadDimensionErrors(t *testing.T) {
	_, err := ReadDimension(strings.NewReader("VendedorID,Region\n1,North\n"), schema.Sellers)
	var missing *schema.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "sellers", missing.Source)
	assert.Equal(t, schema.DimensionName, missing.Column)

	_, err = ReadDimension(strings.NewReader("FornecedorID,FornecedorNome\n1,A\n1.0,B\n"), schema.Suppliers)
	var dup *engine.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "1", dup.ID)
}
