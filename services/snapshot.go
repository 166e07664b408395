package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// LoadRateCatalog loads the whole exchange_rates collection into an
// immutable catalog snapshot. Edits to the stored rates after this point
// are not visible to computations using the returned catalog.
func LoadRateCatalog(app *pocketbase.PocketBase) (RateCatalog, error) {
	col, err := app.FindCollectionByNameOrId("exchange_rates")
	if err != nil {
		return RateCatalog{}, fmt.Errorf("load rate catalog: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return RateCatalog{}, fmt.Errorf("load rate catalog: %w", err)
	}

	entries := make([]RateEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, RateEntry{
			Code: r.GetString("currency_code"),
			Rate: decimal.NewFromFloat(r.GetFloat("rate_to_base")).Round(factorPlaces),
		})
	}
	return NewRateCatalog(entries...), nil
}

// LoadSheet loads a costing sheet with all its sections and line items into
// a plain in-memory snapshot, ordered for display. The engine operates only
// on this snapshot; nothing it does triggers further storage reads.
func LoadSheet(app *pocketbase.PocketBase, sheetID string) (*Sheet, error) {
	record, err := app.FindRecordById("costing_sheets", sheetID)
	if err != nil {
		return nil, fmt.Errorf("load sheet %s: %w", sheetID, err)
	}

	sheet := &Sheet{
		ID:                record.Id,
		Title:             record.GetString("title"),
		ProjectID:         record.GetString("project"),
		CustomerReference: record.GetString("customer_reference"),
		OutputCurrency:    record.GetString("output_currency"),
		Status:            record.GetString("status"),
		Defaults:          defaultsFromRecord(record),
	}

	sectionRecords, err := app.FindRecordsByFilter(
		"costing_sections",
		"costing_sheet = {:sheetId}",
		"sort_order,section_number",
		0, 0,
		map[string]any{"sheetId": sheetID},
	)
	if err != nil {
		return nil, fmt.Errorf("load sections for sheet %s: %w", sheetID, err)
	}

	for _, sr := range sectionRecords {
		section := Section{
			ID:            sr.Id,
			SectionNumber: sr.GetString("section_number"),
			Title:         sr.GetString("title"),
			SortOrder:     sr.GetInt("sort_order"),
		}

		itemRecords, err := app.FindRecordsByFilter(
			"line_items",
			"section = {:sectionId}",
			"sort_order,item_number",
			0, 0,
			map[string]any{"sectionId": sr.Id},
		)
		if err != nil {
			return nil, fmt.Errorf("load items for section %s: %w", sr.Id, err)
		}

		for _, ir := range itemRecords {
			section.Items = append(section.Items, lineItemFromRecord(ir))
		}
		sheet.Sections = append(sheet.Sections, section)
	}

	return sheet, nil
}

// defaultsFromRecord reads the six sheet-wide default percentages. They are
// stored as plain numbers and are always present (the schema requires them).
func defaultsFromRecord(r *core.Record) SheetDefaults {
	return SheetDefaults{
		Margin:       decimal.NewFromFloat(r.GetFloat("margin")),
		Discount:     decimal.NewFromFloat(r.GetFloat("discount_rate")),
		Shipping:     decimal.NewFromFloat(r.GetFloat("shipping_rate")),
		Customs:      decimal.NewFromFloat(r.GetFloat("customs_rate")),
		Finances:     decimal.NewFromFloat(r.GetFloat("finances_rate")),
		Installation: decimal.NewFromFloat(r.GetFloat("installation_rate")),
	}
}

// lineItemFromRecord builds a LineItem snapshot, interpreting the stored
// override fields ("" = inherit).
func lineItemFromRecord(r *core.Record) LineItem {
	return LineItem{
		ID:               r.Id,
		ItemNumber:       r.GetString("item_number"),
		Description:      r.GetString("description"),
		Make:             r.GetString("make"),
		ModelNumber:      r.GetString("model_number"),
		Quantity:         decimal.NewFromFloat(r.GetFloat("quantity")),
		Unit:             r.GetString("unit"),
		VendorName:       r.GetString("vendor_name"),
		System:           r.GetString("system"),
		SupplierCurrency: r.GetString("supplier_currency"),
		BaseUnitCost:     decimal.NewFromFloat(r.GetFloat("base_unit_cost")),
		SortOrder:        r.GetInt("sort_order"),
		Discount:         percentField(r, "discount_pct"),
		Shipping:         percentField(r, "shipping_pct"),
		Customs:          percentField(r, "customs_pct"),
		Finances:         percentField(r, "finances_pct"),
		Installation:     percentField(r, "installation_pct"),
		Margin:           percentField(r, "margin_pct"),
	}
}

// percentField parses a stored override field. A malformed stored value is
// treated as inherit rather than aborting the whole sheet; the mutation
// handlers reject bad values before they are ever written, so this only
// fires on hand-edited data.
func percentField(r *core.Record, field string) Percent {
	p, err := ParsePercent(r.GetString(field))
	if err != nil {
		log.Printf("snapshot: item %s has malformed %s %q, inheriting sheet default", r.Id, field, r.GetString(field))
		return Inherit()
	}
	return p
}
