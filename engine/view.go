package engine

import (
	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never copies rows. It reads through this interface.
//
// Implementations:
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered subset (indices into parent, zero-copy)
//
// The joined sales table registers its accessors once (factAdapter);
// filters and groups only ever hold index lists into it.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[JoinedFact]().
//	    Dimension("customer_name", func(r JoinedFact) string { return r.CustomerName }).
//	    Measure("sale", func(r JoinedFact) float64 { return r.Sale })
//
//	view := adapter.Bind(rows)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }

// ============================================================================
// JOINED SALES TABLE
// ============================================================================

var factAdapter = NewDomainAdapter[JoinedFact]().
	Dimension(schema.CustomerName, func(r JoinedFact) string { return r.CustomerName }).
	Dimension(schema.CustomerCountry, func(r JoinedFact) string { return r.CustomerCountry }).
	Dimension(schema.CustomerCountryCode, func(r JoinedFact) string { return r.CustomerCountryCode }).
	Dimension(schema.CustomerCity, func(r JoinedFact) string { return r.CustomerCity }).
	Dimension(schema.CategoryName, func(r JoinedFact) string { return r.CategoryName }).
	Dimension(schema.SellerID, func(r JoinedFact) string { return r.SellerID }).
	Dimension(schema.SupplierID, func(r JoinedFact) string { return r.SupplierID }).
	Dimension(schema.CarrierID, func(r JoinedFact) string { return r.CarrierID }).
	Dimension(schema.Date, func(r JoinedFact) string {
		if !r.HasDate() {
			return ""
		}
		return r.Date.Format("2006-01-02")
	}).
	Dimension(schema.Year, func(r JoinedFact) string {
		if !r.HasDate() {
			return ""
		}
		return FormatYear(r.Date.Year())
	}).
	Dimension(schema.CarrierName, func(r JoinedFact) string { return r.CarrierName }).
	Dimension(schema.SellerName, func(r JoinedFact) string { return r.SellerName }).
	Dimension(schema.SupplierName, func(r JoinedFact) string { return r.SupplierName }).
	Measure(schema.Sale, func(r JoinedFact) float64 { return r.Sale }).
	Measure(schema.Discount, func(r JoinedFact) float64 { return r.Discount }).
	Measure(schema.GrossMargin, func(r JoinedFact) float64 { return r.GrossMargin }).
	Measure(schema.Freight, func(r JoinedFact) float64 { return r.Freight })

// FactView exposes joined sales rows by column key.
func FactView(rows []JoinedFact) RecordView {
	return factAdapter.Bind(rows)
}
