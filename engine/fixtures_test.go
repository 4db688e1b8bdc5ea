package engine

import (
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// salesFixture is a small joined table with known totals:
// sale 100+50+30+20+10+40 = 250, two Brazil rows, one unmatched carrier.
func salesFixture() []JoinedFact {
	facts := []FactRow{
		{CustomerName: "A", CustomerCountry: "Brazil", CategoryName: "Men's Footwear", CarrierID: "1", SellerID: "10", SupplierID: "100", Sale: 100, Freight: 5, Discount: 1, GrossMargin: 30, Date: day(2009, 7, 1)},
		{CustomerName: "B", CustomerCountry: "Brazil", CategoryName: "Womens wear", CarrierID: "2", SellerID: "11", SupplierID: "101", Sale: 50, Freight: 3, Discount: 2, GrossMargin: 10, Date: day(2010, 1, 5)},
		{CustomerName: "A", CustomerCountry: "USA", CategoryName: "Men's Footwear", CarrierID: "1", SellerID: "10", SupplierID: "100", Sale: 30, Freight: 2, Discount: 4, GrossMargin: 6, Date: day(2012, 3, 9)},
		{CustomerName: "C", CustomerCountry: "Germany", CategoryName: "Men´s Footwear", CarrierID: "9", SellerID: "12", SupplierID: "102", Sale: 20, Freight: 1, Discount: 0, GrossMargin: 4},
		{CustomerName: "D", CustomerCountry: "UK", CategoryName: "Womens wear", CarrierID: "2", SellerID: "11", SupplierID: "101", Sale: 10, Freight: 4, Discount: 1, GrossMargin: 2, Date: day(2012, 11, 30)},
		{CustomerName: "E", CustomerCountry: "France", CategoryName: "Womens wear", CarrierID: "1", SellerID: "12", SupplierID: "102", Sale: 40, Freight: 6, Discount: 3, GrossMargin: 12, Date: day(2008, 2, 2)},
	}

	carriers, _ := NewDimensionTable("carriers", []DimensionRow{{ID: "1", Name: "Speedy"}, {ID: "2", Name: "United"}})
	sellers, _ := NewDimensionTable("sellers", []DimensionRow{{ID: "10", Name: "Nancy"}, {ID: "11", Name: "Andrew"}, {ID: "12", Name: "Janet"}})
	suppliers, _ := NewDimensionTable("suppliers", []DimensionRow{{ID: "100", Name: "Exotic"}, {ID: "101", Name: "Tokyo"}, {ID: "102", Name: "Pavlova"}})

	rows := Widen(facts)
	rows = LeftJoin(rows, carriers, CarrierKey)
	rows = LeftJoin(rows, sellers, SellerKey)
	return LeftJoin(rows, suppliers, SupplierKey)
}

func fixtureDataset() *Dataset {
	return NewDataset(salesFixture(), AllColumns())
}

func question(id string, groupBy ...string) Question {
	return Normalize(Question{
		ID:      id,
		Title:   "Question " + id,
		GroupBy: groupBy,
		Measure: "sale",
	})
}
