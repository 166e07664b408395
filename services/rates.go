// Package services provides the costing engine for quotation sheets:
// exchange-rate resolution, the percentage parameter cascade, the line-item
// pricing pipeline and the sheet aggregator, plus export and formatting
// helpers built on top of them.
package services

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the pivot currency all cross-currency conversions are
// routed through. Pipeline figures are produced in this currency.
const BaseCurrency = "SAR"

// factorPlaces is the precision of a conversion factor; money is rounded
// to MoneyPlaces at every pipeline step.
const (
	factorPlaces = 6
	MoneyPlaces  = 2
)

// RateEntry is one row of the exchange-rate table: the value of a currency
// relative to the catalog's pivot.
type RateEntry struct {
	Code string
	Rate decimal.Decimal
}

// RateCatalog is an immutable snapshot of the exchange-rate table, loaded
// once per computation. Concurrent edits to the stored rates are not
// observed by a catalog already in use.
type RateCatalog struct {
	rates map[string]decimal.Decimal
}

// NewRateCatalog builds a catalog from rate entries. Later duplicates of a
// currency code replace earlier ones.
func NewRateCatalog(entries ...RateEntry) RateCatalog {
	rates := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		rates[e.Code] = e.Rate
	}
	return RateCatalog{rates: rates}
}

// Has reports whether the catalog contains a rate for the given code.
func (c RateCatalog) Has(code string) bool {
	_, ok := c.rates[code]
	return ok
}

// Codes returns the catalog's currency codes in sorted order.
func (c RateCatalog) Codes() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Rate returns the stored rate for a currency code.
func (c RateCatalog) Rate(code string) (decimal.Decimal, bool) {
	r, ok := c.rates[code]
	return r, ok
}

// Factor returns the conversion factor from one currency to another,
// rounded to 6 decimal places: rate(to) / rate(from). A same-currency
// conversion is exactly 1 regardless of catalog contents.
//
// If either currency is missing from the catalog the factor falls back to 1
// and ok is false, so a single bad rate never aborts pricing of a whole
// sheet. Callers surface the flag instead of failing.
func (c RateCatalog) Factor(from, to string) (factor decimal.Decimal, ok bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}
	fromRate, fromOK := c.rates[from]
	toRate, toOK := c.rates[to]
	if !fromOK || !toOK || fromRate.IsZero() {
		return decimal.NewFromInt(1), false
	}
	return toRate.Div(fromRate).Round(factorPlaces), true
}

// Convert converts a monetary amount between currencies and rounds the
// result to money precision. The ok flag mirrors Factor.
func (c RateCatalog) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return amount, true
	}
	factor, ok := c.Factor(from, to)
	return amount.Mul(factor).Round(MoneyPlaces), ok
}
