// Package bi answers a fixed set of sales business-intelligence questions.
//
// Usage:
//
//	import (
//	    "github.com/ebrunovs/bi-atvi2/catalog"
//	    "github.com/ebrunovs/bi-atvi2/engine"
//	    "github.com/ebrunovs/bi-atvi2/loader"
//	)
//
//	cat, _ := catalog.Default()
//	ds, _ := loader.LoadDataset("csv", loader.WithCountryAliases(cat.CountryAliases))
//	reports := engine.ComputeAll(cat.Questions, ds)
//
// The loader turns the sales fact file and the carrier, seller and supplier
// dimension files into one joined in-memory table. The engine filters,
// groups and orders it per question and describes each answer as a chart.
// The render, output and dashboard packages only present what the engine
// computed.
package bi
