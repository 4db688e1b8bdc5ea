package schema

// ============================================================================
// SCHEMA — Declared shape of the sales sources
// ============================================================================
// Every source file is read against a fixed declaration: which headers carry
// which column, and how each column is typed. Columns are addressed by key
// everywhere downstream (filters, grouping, catalog), so a typo or a missing
// header surfaces once, here, instead of deep inside an aggregation.
// ============================================================================

// Column keys of the joined sales table.
const (
	CustomerName        = "customer_name"
	CustomerCountry     = "customer_country"
	CustomerCountryCode = "customer_country_code"
	CustomerCity        = "customer_city"
	CategoryName        = "category_name"
	SellerID            = "seller_id"
	SupplierID          = "supplier_id"
	CarrierID           = "carrier_id"
	Sale                = "sale"
	Discount            = "discount"
	GrossMargin         = "gross_margin"
	Freight             = "freight"
	Date                = "date"

	// Derived from Date.
	Year = "year"

	// Filled by the joins.
	CarrierName  = "carrier_name"
	SellerName   = "seller_name"
	SupplierName = "supplier_name"
)

// Column keys of every dimension source.
const (
	DimensionID   = "id"
	DimensionName = "name"
)

// Kind is how a column's raw text is coerced at load time.
type Kind string

const (
	KindText    Kind = "text"
	KindID      Kind = "id"
	KindNumeric Kind = "numeric"
	KindDate    Kind = "date"
)

// ColumnMeta describes one declared column of a source.
type ColumnMeta struct {
	Key         string   `json:"key"`
	Header      string   `json:"header"`            // header as written in the original files
	Aliases     []string `json:"aliases,omitempty"` // other accepted headers
	Kind        Kind     `json:"kind"`
	DisplayName string   `json:"displayName"`
}

// Source declares one tabular input.
type Source struct {
	Name    string       `json:"name"`
	File    string       `json:"file"`
	Columns []ColumnMeta `json:"columns"`
}

// Column returns the declaration for key.
func (s Source) Column(key string) (ColumnMeta, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnMeta{}, false
}

// Keys returns the declared column keys in declaration order.
func (s Source) Keys() []string {
	keys := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Match maps a header row onto the declared columns.
// It returns the position of every matched key and the keys with no header.
// Extra headers are ignored.
func (s Source) Match(headers []string) (map[string]int, []string) {
	positions := make(map[string]int, len(s.Columns))
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = HeaderKey(h)
	}

	var missing []string
	for _, c := range s.Columns {
		idx := -1
		for i, h := range normalized {
			if c.accepts(h) {
				idx = i
				break
			}
		}
		if idx < 0 {
			missing = append(missing, c.Key)
			continue
		}
		positions[c.Key] = idx
	}
	return positions, missing
}

func (c ColumnMeta) accepts(headerKey string) bool {
	if headerKey == "" {
		return false
	}
	if headerKey == HeaderKey(c.Header) || headerKey == HeaderKey(c.Key) {
		return true
	}
	for _, a := range c.Aliases {
		if headerKey == HeaderKey(a) {
			return true
		}
	}
	return false
}

// ============================================================================
// DECLARED SOURCES
// ============================================================================

// Facts is the sales fact table (VendasGlobais.csv).
var Facts = Source{
	Name: "sales",
	File: "VendasGlobais.csv",
	Columns: []ColumnMeta{
		{Key: CustomerName, Header: "ClienteNome", Aliases: []string{"Customer Name"}, Kind: KindText, DisplayName: "Customer"},
		{Key: CustomerCountry, Header: "ClientePaís", Aliases: []string{"ClientePais", "Customer Country"}, Kind: KindText, DisplayName: "Country"},
		{Key: CustomerCountryCode, Header: "ClientePaísID", Aliases: []string{"ClientePaisID", "Customer Country Code"}, Kind: KindText, DisplayName: "Country Code"},
		{Key: CustomerCity, Header: "ClienteCidade", Aliases: []string{"Customer City"}, Kind: KindText, DisplayName: "City"},
		{Key: CategoryName, Header: "CategoriaNome", Aliases: []string{"Category Name"}, Kind: KindText, DisplayName: "Category"},
		{Key: SellerID, Header: "VendedorID", Aliases: []string{"Seller ID"}, Kind: KindID, DisplayName: "Seller ID"},
		{Key: SupplierID, Header: "FornecedorID", Aliases: []string{"Supplier ID"}, Kind: KindID, DisplayName: "Supplier ID"},
		{Key: CarrierID, Header: "TransportadoraID", Aliases: []string{"Carrier ID"}, Kind: KindID, DisplayName: "Carrier ID"},
		{Key: Sale, Header: "Vendas", Aliases: []string{"Sales"}, Kind: KindNumeric, DisplayName: "Sales ($)"},
		{Key: Discount, Header: "Desconto", Kind: KindNumeric, DisplayName: "Discount ($)"},
		{Key: GrossMargin, Header: "Margem Bruta", Kind: KindNumeric, DisplayName: "Gross Margin ($)"},
		{Key: Freight, Header: "Frete", Kind: KindNumeric, DisplayName: "Freight ($)"},
		{Key: Date, Header: "Data", Kind: KindDate, DisplayName: "Date"},
	},
}

// Carriers, Sellers and Suppliers are the dimension tables.
var (
	Carriers  = dimension("carriers", "Transportadoras.csv", "TransportadoraID", "TransportadoraNome", "Carrier")
	Sellers   = dimension("sellers", "Vendedores.csv", "VendedorID", "VendedorNome", "Seller")
	Suppliers = dimension("suppliers", "Fornecedores.csv", "FornecedorID", "FornecedorNome", "Supplier")
)

func dimension(name, file, idHeader, nameHeader, display string) Source {
	return Source{
		Name: name,
		File: file,
		Columns: []ColumnMeta{
			{Key: DimensionID, Header: idHeader, Kind: KindID, DisplayName: display + " ID"},
			{Key: DimensionName, Header: nameHeader, Kind: KindText, DisplayName: display},
		},
	}
}

// Sources returns every declared source, facts first.
func Sources() []Source {
	return []Source{Facts, Carriers, Sellers, Suppliers}
}

// ============================================================================
// JOINED TABLE COLUMNS
// ============================================================================

// measureKeys are the numeric columns of the joined table.
var measureKeys = map[string]bool{
	Sale:        true,
	Discount:    true,
	GrossMargin: true,
	Freight:     true,
}

// derivedFrom lists the base column each derived or joined column needs.
var derivedFrom = map[string]string{
	Year:         Date,
	CarrierName:  CarrierID,
	SellerName:   SellerID,
	SupplierName: SupplierID,
}

var derivedDisplay = map[string]string{
	Year:         "Year",
	CarrierName:  "Carrier",
	SellerName:   "Seller",
	SupplierName: "Supplier",
}

// IsMeasure reports whether key is a numeric column of the joined table.
func IsMeasure(key string) bool {
	return measureKeys[key]
}

// IsDimension reports whether key is a groupable/filterable column of the joined table.
func IsDimension(key string) bool {
	if measureKeys[key] {
		return false
	}
	if _, ok := derivedFrom[key]; ok {
		return true
	}
	_, ok := Facts.Column(key)
	return ok
}

// Known reports whether key names any column of the joined table.
func Known(key string) bool {
	return IsMeasure(key) || IsDimension(key)
}

// DerivedFrom returns the base column a derived or joined column is computed from.
func DerivedFrom(key string) (string, bool) {
	base, ok := derivedFrom[key]
	return base, ok
}

// DimensionKeys returns the dimension keys of the joined table in a stable order.
func DimensionKeys() []string {
	keys := make([]string, 0, len(Facts.Columns)+len(derivedFrom))
	for _, c := range Facts.Columns {
		if !measureKeys[c.Key] {
			keys = append(keys, c.Key)
		}
	}
	return append(keys, Year, CarrierName, SellerName, SupplierName)
}

// MeasureKeys returns the measure keys of the joined table in declaration order.
func MeasureKeys() []string {
	return []string{Sale, Discount, GrossMargin, Freight}
}

// DisplayName returns the human label of a joined-table column.
func DisplayName(key string) string {
	if name, ok := derivedDisplay[key]; ok {
		return name
	}
	if c, ok := Facts.Column(key); ok {
		return c.DisplayName
	}
	return toDisplayName(key)
}
