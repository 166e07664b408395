package services

import "github.com/shopspring/decimal"

// ExportRow is one line item row in the sheet export, with the full cost
// breakdown the pipeline produced for it.
type ExportRow struct {
	ItemNumber  string
	Description string
	Make        string
	ModelNumber string
	Quantity    decimal.Decimal
	Unit        string
	VendorName  string
	System      string

	SupplierCurrency string
	BaseUnitCost     decimal.Decimal
	DiscountPct      decimal.Decimal // whole-number percent in effect
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal

	ExchangeRate decimal.Decimal
	RateMissing  bool
	UnitCostBase decimal.Decimal

	MarginPct      decimal.Decimal // whole-number percent in effect
	BaseUnitPrice  decimal.Decimal
	BaseTotalPrice decimal.Decimal

	AddonPct        decimal.Decimal // whole-number percent in effect
	FinalUnitPrice  decimal.Decimal
	FinalTotalPrice decimal.Decimal

	// Quoted figures converted to the sheet's output currency, so the
	// customer-facing document shows a single currency throughout.
	FinalUnitPriceDisplay  decimal.Decimal
	FinalTotalPriceDisplay decimal.Decimal
}

// ExportSection is one section of the export with its rows and subtotal.
type ExportSection struct {
	SectionNumber string
	Title         string
	Rows          []ExportRow
	Subtotal      decimal.Decimal

	// SubtotalDisplay is the subtotal in the sheet's output currency.
	SubtotalDisplay decimal.Decimal
}

// ExportData is everything the Excel and PDF exports need, assembled from
// one sheet snapshot and one computation pass.
type ExportData struct {
	Title             string
	CustomerReference string
	ProjectName       string
	OutputCurrency    string
	Defaults          SheetDefaults
	Rates             []RateEntry
	Sections          []ExportSection
	Totals            Totals
	GrandTotalDisplay decimal.Decimal
	MissingRates      []string
	GeneratedDate     string
}

// BuildExportData flattens a computed sheet into export rows. The figures
// come straight from the computation's per-item results; nothing is
// re-derived here.
func BuildExportData(sheet *Sheet, comp *SheetComputation, catalog RateCatalog, projectName, generatedDate string) ExportData {
	hundred := decimal.NewFromInt(100)

	data := ExportData{
		Title:             sheet.Title,
		CustomerReference: sheet.CustomerReference,
		ProjectName:       projectName,
		OutputCurrency:    sheet.OutputCurrency,
		Defaults:          sheet.Defaults,
		Totals:            comp.Sheet,
		GrandTotalDisplay: comp.GrandTotalDisplay,
		MissingRates:      comp.MissingRates,
		GeneratedDate:     generatedDate,
	}

	for _, code := range catalog.Codes() {
		rate, _ := catalog.Rate(code)
		data.Rates = append(data.Rates, RateEntry{Code: code, Rate: rate})
	}

	for _, section := range sheet.Sections {
		subtotal := comp.SectionTotalsByID(section.ID).GrandTotal
		subtotalDisplay, _ := catalog.Convert(subtotal, BaseCurrency, sheet.OutputCurrency)
		exportSection := ExportSection{
			SectionNumber:   section.SectionNumber,
			Title:           section.Title,
			Subtotal:        subtotal,
			SubtotalDisplay: subtotalDisplay,
		}
		for _, item := range section.Items {
			r, ok := comp.Result(item.ID)
			if !ok {
				continue
			}
			finalUnitDisplay, _ := catalog.Convert(r.FinalUnitPrice, BaseCurrency, sheet.OutputCurrency)
			finalTotalDisplay, _ := catalog.Convert(r.FinalTotalPrice, BaseCurrency, sheet.OutputCurrency)
			exportSection.Rows = append(exportSection.Rows, ExportRow{
				ItemNumber:       item.ItemNumber,
				Description:      item.Description,
				Make:             item.Make,
				ModelNumber:      item.ModelNumber,
				Quantity:         item.Quantity,
				Unit:             item.Unit,
				VendorName:       item.VendorName,
				System:           item.System,
				SupplierCurrency: item.SupplierCurrency,
				BaseUnitCost:     item.BaseUnitCost,
				DiscountPct:      r.Rates.Discount.Mul(hundred),
				UnitCost:         r.UnitCost,
				TotalCost:        r.TotalCost,
				ExchangeRate:     r.ExchangeRate,
				RateMissing:      r.RateMissing,
				UnitCostBase:     r.UnitCostBase,
				MarginPct:        r.Rates.Margin.Mul(hundred),
				BaseUnitPrice:    r.BaseUnitPrice,
				BaseTotalPrice:   r.BaseTotalPrice,
				AddonPct:         r.AddonFraction.Mul(hundred),
				FinalUnitPrice:   r.FinalUnitPrice,
				FinalTotalPrice:  r.FinalTotalPrice,

				FinalUnitPriceDisplay:  finalUnitDisplay,
				FinalTotalPriceDisplay: finalTotalDisplay,
			})
		}
		data.Sections = append(data.Sections, exportSection)
	}

	return data
}
