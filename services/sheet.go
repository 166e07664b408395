package services

import "github.com/shopspring/decimal"

// Sheet is an in-memory snapshot of one costing sheet and everything its
// pricing depends on. It is loaded upfront (see LoadSheet) so the engine
// never reaches back into storage mid-computation.
type Sheet struct {
	ID                string
	Title             string
	ProjectID         string
	CustomerReference string
	OutputCurrency    string
	Status            string
	Defaults          SheetDefaults
	Sections          []Section
}

// Section is a named, ordered subgroup of a sheet. It carries no arithmetic
// of its own; totals are derived from its line items.
type Section struct {
	ID            string
	SectionNumber string
	Title         string
	SortOrder     int
	Items         []LineItem
}

// LineItem is the unit of pricing computation. The six Percent fields
// either override the sheet defaults or inherit them. Monetary totals are
// never stored on an item; they are derived by the pipeline.
type LineItem struct {
	ID               string
	ItemNumber       string
	Description      string
	Make             string
	ModelNumber      string
	Quantity         decimal.Decimal
	Unit             string
	VendorName       string
	System           string
	SupplierCurrency string
	BaseUnitCost     decimal.Decimal
	SortOrder        int

	Discount     Percent
	Shipping     Percent
	Customs      Percent
	Finances     Percent
	Installation Percent
	Margin       Percent
}

// Effective resolves all six percentage fields for an item against the
// sheet defaults.
func (li LineItem) Effective(defaults SheetDefaults) EffectiveRates {
	return EffectiveRates{
		Margin:       li.Margin.Resolve(defaults.Margin),
		Discount:     li.Discount.Resolve(defaults.Discount),
		Shipping:     li.Shipping.Resolve(defaults.Shipping),
		Customs:      li.Customs.Resolve(defaults.Customs),
		Finances:     li.Finances.Resolve(defaults.Finances),
		Installation: li.Installation.Resolve(defaults.Installation),
	}
}
