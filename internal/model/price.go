package model

import "github.com/shopspring/decimal"

// PriceQuery asks for the price of Quantity units of a commodity in a market
// for a given month.
type PriceQuery struct {
	Market    string
	Commodity string
	Unit      string
	Quantity  int
	Year      int
	Month     int
}

// PriceQuote is the answer to a PriceQuery.
type PriceQuote struct {
	UnitPrice  float64
	TotalPrice decimal.Decimal
	Message    string
}
