package engine

import (
	"fmt"

	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// JOIN — Left join of sales facts to dimension tables
// ============================================================================
// One fact row in, exactly one joined row out, same order. A foreign key
// with no dimension match keeps the row and leaves the name empty.
// ============================================================================

// DuplicateKeyError reports a dimension identifier that appears twice.
type DuplicateKeyError struct {
	Table string
	ID    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("dimension %q: duplicate id %q", e.Table, e.ID)
}

// DimensionTable maps identifiers to display names.
type DimensionTable struct {
	Name  string
	names map[string]string
}

// NewDimensionTable indexes rows by id. Identifiers must be unique.
func NewDimensionTable(name string, rows []DimensionRow) (DimensionTable, error) {
	names := make(map[string]string, len(rows))
	for _, r := range rows {
		if _, exists := names[r.ID]; exists {
			return DimensionTable{}, &DuplicateKeyError{Table: name, ID: r.ID}
		}
		names[r.ID] = r.Name
	}
	return DimensionTable{Name: name, names: names}, nil
}

// Lookup returns the display name for id.
func (t DimensionTable) Lookup(id string) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Len returns the number of dimension rows.
func (t DimensionTable) Len() int { return len(t.names) }

// ForeignKey binds a fact key column to the name column a join fills.
type ForeignKey struct {
	Column string // fact column holding the id
	Target string // joined column receiving the name
	get    func(JoinedFact) string
	set    func(*JoinedFact, string)
}

var (
	CarrierKey = ForeignKey{
		Column: schema.CarrierID,
		Target: schema.CarrierName,
		get:    func(r JoinedFact) string { return r.CarrierID },
		set:    func(r *JoinedFact, name string) { r.CarrierName = name },
	}
	SellerKey = ForeignKey{
		Column: schema.SellerID,
		Target: schema.SellerName,
		get:    func(r JoinedFact) string { return r.SellerID },
		set:    func(r *JoinedFact, name string) { r.SellerName = name },
	}
	SupplierKey = ForeignKey{
		Column: schema.SupplierID,
		Target: schema.SupplierName,
		get:    func(r JoinedFact) string { return r.SupplierID },
		set:    func(r *JoinedFact, name string) { r.SupplierName = name },
	}
)

// Widen lifts fact rows into joined rows with no names filled.
func Widen(facts []FactRow) []JoinedFact {
	rows := make([]JoinedFact, len(facts))
	for i, f := range facts {
		rows[i] = JoinedFact{FactRow: f}
	}
	return rows
}

// LeftJoin returns a copy of rows with fk.Target filled from table.
// len(result) == len(rows) and order is preserved. The input is not modified.
func LeftJoin(rows []JoinedFact, table DimensionTable, fk ForeignKey) []JoinedFact {
	out := make([]JoinedFact, len(rows))
	for i, r := range rows {
		name, _ := table.Lookup(fk.get(r))
		fk.set(&r, name)
		out[i] = r
	}
	return out
}

// Unmatched counts rows whose foreign key found no dimension row.
func Unmatched(rows []JoinedFact, table DimensionTable, fk ForeignKey) int {
	n := 0
	for _, r := range rows {
		if _, ok := table.Lookup(fk.get(r)); !ok {
			n++
		}
	}
	return n
}
