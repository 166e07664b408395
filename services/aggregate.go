package services

import "github.com/shopspring/decimal"

// Totals is a rollup of the pricing breakdown across a group of line items.
// Every field is a sum over the group's items, quantized to money precision
// only after summation so rounding error never compounds across items.
type Totals struct {
	GrandTotal    decimal.Decimal // sum of final total prices
	TotalCost     decimal.Decimal // sum of discounted cost * quantity
	TotalBaseCost decimal.Decimal // sum of pre-discount cost * quantity
	TotalDiscount decimal.Decimal // sum of discount amount * quantity
	TotalMargin   decimal.Decimal // sum of base total price - total cost

	TotalShipping     decimal.Decimal
	TotalCustoms      decimal.Decimal
	TotalFinances     decimal.Decimal
	TotalInstallation decimal.Decimal
}

// accumulator keeps unquantized running sums during the single aggregation
// pass and quantizes once at the end.
type accumulator struct {
	grand, cost, baseCost, discount, margin   decimal.Decimal
	shipping, customs, finances, installation decimal.Decimal
}

func (a *accumulator) add(item LineItem, r LineItemResult) {
	a.grand = a.grand.Add(r.FinalTotalPrice)
	a.cost = a.cost.Add(r.TotalCost)
	a.baseCost = a.baseCost.Add(item.BaseUnitCost.Mul(item.Quantity))
	a.discount = a.discount.Add(r.DiscountAmount.Mul(item.Quantity))
	a.margin = a.margin.Add(r.BaseTotalPrice.Sub(r.TotalCost))
	a.shipping = a.shipping.Add(r.UnitCostBase.Mul(r.Rates.Shipping).Mul(item.Quantity))
	a.customs = a.customs.Add(r.UnitCostBase.Mul(r.Rates.Customs).Mul(item.Quantity))
	a.finances = a.finances.Add(r.UnitCostBase.Mul(r.Rates.Finances).Mul(item.Quantity))
	a.installation = a.installation.Add(r.UnitCostBase.Mul(r.Rates.Installation).Mul(item.Quantity))
}

func (a *accumulator) totals() Totals {
	return Totals{
		GrandTotal:        a.grand.Round(MoneyPlaces),
		TotalCost:         a.cost.Round(MoneyPlaces),
		TotalBaseCost:     a.baseCost.Round(MoneyPlaces),
		TotalDiscount:     a.discount.Round(MoneyPlaces),
		TotalMargin:       a.margin.Round(MoneyPlaces),
		TotalShipping:     a.shipping.Round(MoneyPlaces),
		TotalCustoms:      a.customs.Round(MoneyPlaces),
		TotalFinances:     a.finances.Round(MoneyPlaces),
		TotalInstallation: a.installation.Round(MoneyPlaces),
	}
}

// SectionTotals pairs a section with its rollup.
type SectionTotals struct {
	SectionID string
	Totals
}

// SheetComputation is the result of one full evaluation of a sheet: every
// line item priced exactly once, section and sheet rollups accumulated from
// those same evaluations. It is immutable and scoped to a single request or
// batch; it is never persisted, so computed figures cannot drift from their
// inputs.
type SheetComputation struct {
	SheetID  string
	Items    map[string]LineItemResult
	Sections []SectionTotals
	Sheet    Totals

	// GrandTotalDisplay is the grand total converted from the base currency
	// to the sheet's output currency.
	GrandTotalDisplay decimal.Decimal
	OutputCurrency    string

	// MissingRates lists supplier currencies that had no catalog entry and
	// were priced with a conversion factor of 1.
	MissingRates []string
}

// SectionTotalsByID returns the rollup for a section, or a zero rollup when
// the section is unknown.
func (c *SheetComputation) SectionTotalsByID(sectionID string) SectionTotals {
	for _, st := range c.Sections {
		if st.SectionID == sectionID {
			return st
		}
	}
	return SectionTotals{SectionID: sectionID}
}

// Result looks up a line item's pipeline result.
func (c *SheetComputation) Result(itemID string) (LineItemResult, bool) {
	r, ok := c.Items[itemID]
	return r, ok
}

// ComputeSheet aggregates an entire sheet in a single pass: each line item
// runs through the pricing pipeline exactly once, and that one evaluation
// feeds both its section's rollup and the sheet rollup, so section sums and
// sheet sums can never diverge.
func ComputeSheet(sheet *Sheet, catalog RateCatalog) *SheetComputation {
	comp := &SheetComputation{
		SheetID:        sheet.ID,
		Items:          make(map[string]LineItemResult),
		OutputCurrency: sheet.OutputCurrency,
	}

	var sheetAcc accumulator
	missing := make(map[string]bool)

	for _, section := range sheet.Sections {
		var sectionAcc accumulator
		for _, item := range section.Items {
			result := PriceLineItem(item, sheet.Defaults, catalog)
			comp.Items[item.ID] = result
			sectionAcc.add(item, result)
			sheetAcc.add(item, result)
			if result.RateMissing && !missing[item.SupplierCurrency] {
				missing[item.SupplierCurrency] = true
				comp.MissingRates = append(comp.MissingRates, item.SupplierCurrency)
			}
		}
		comp.Sections = append(comp.Sections, SectionTotals{
			SectionID: section.ID,
			Totals:    sectionAcc.totals(),
		})
	}

	comp.Sheet = sheetAcc.totals()

	display, ok := catalog.Convert(comp.Sheet.GrandTotal, BaseCurrency, sheet.OutputCurrency)
	comp.GrandTotalDisplay = display
	if !ok && !missing[sheet.OutputCurrency] {
		comp.MissingRates = append(comp.MissingRates, sheet.OutputCurrency)
	}

	return comp
}
