package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotetracker/services"
)

// HandleSheetList returns the costing sheets of a project, newest first, each
// with its freshly computed grand total.
func HandleSheetList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project ID")
		}

		col, err := app.FindCollectionByNameOrId("costing_sheets")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(
			col,
			"project = {:projectId}",
			"-created",
			0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("sheet_list: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		catalog, err := services.LoadRateCatalog(app)
		if err != nil {
			log.Printf("sheet_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sheets := make([]map[string]any, 0, len(records))
		for _, r := range records {
			entry := map[string]any{
				"id":                 r.Id,
				"title":              r.GetString("title"),
				"customer_reference": r.GetString("customer_reference"),
				"output_currency":    r.GetString("output_currency"),
				"status":             r.GetString("status"),
			}

			sheet, err := services.LoadSheet(app, r.Id)
			if err != nil {
				log.Printf("sheet_list: could not load sheet %s: %v", r.Id, err)
			} else {
				comp := services.ComputeSheet(sheet, catalog)
				entry["grand_total"] = comp.Sheet.GrandTotal.StringFixed(services.MoneyPlaces)
				entry["grand_total_display"] = services.FormatMoney(comp.GrandTotalDisplay, sheet.OutputCurrency)
			}
			sheets = append(sheets, entry)
		}

		return e.JSON(http.StatusOK, map[string]any{"sheets": sheets})
	}
}

// HandleSheetView returns the full computed sheet: metadata, defaults, every
// section with its items and their pipeline figures, section subtotals and
// the sheet rollups. Everything is priced in one pass over a fresh snapshot.
func HandleSheetView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return apiError(e, http.StatusBadRequest, "Missing sheet ID")
		}

		sheet, err := services.LoadSheet(app, sheetID)
		if err != nil {
			log.Printf("sheet_view: %v", err)
			return apiError(e, http.StatusNotFound, "Sheet not found")
		}

		catalog, err := services.LoadRateCatalog(app)
		if err != nil {
			log.Printf("sheet_view: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		comp := services.ComputeSheet(sheet, catalog)

		sections := make([]map[string]any, 0, len(sheet.Sections))
		for _, section := range sheet.Sections {
			items := make([]map[string]any, 0, len(section.Items))
			for _, item := range section.Items {
				items = append(items, itemJSON(sheet, item, comp))
			}
			sections = append(sections, map[string]any{
				"id":             section.ID,
				"section_number": section.SectionNumber,
				"title":          section.Title,
				"subtotal":       comp.SectionTotalsByID(section.ID).GrandTotal.StringFixed(services.MoneyPlaces),
				"items":          items,
			})
		}

		payload := map[string]any{
			"id":                 sheet.ID,
			"title":              sheet.Title,
			"project":            sheet.ProjectID,
			"customer_reference": sheet.CustomerReference,
			"output_currency":    sheet.OutputCurrency,
			"status":             sheet.Status,
			"defaults": map[string]string{
				"margin":            sheet.Defaults.Margin.String(),
				"discount_rate":     sheet.Defaults.Discount.String(),
				"shipping_rate":     sheet.Defaults.Shipping.String(),
				"customs_rate":      sheet.Defaults.Customs.String(),
				"finances_rate":     sheet.Defaults.Finances.String(),
				"installation_rate": sheet.Defaults.Installation.String(),
			},
			"sections":      sections,
			"totals":        services.ComputedSheetFields(comp),
			"missing_rates": comp.MissingRates,
		}

		return e.JSON(http.StatusOK, payload)
	}
}

// itemJSON flattens one line item with its stored values, its override state
// and the computed pipeline figures.
func itemJSON(sheet *services.Sheet, item services.LineItem, comp *services.SheetComputation) map[string]any {
	out := map[string]any{
		"id":                item.ID,
		"item_number":       item.ItemNumber,
		"description":       item.Description,
		"make":              item.Make,
		"model_number":      item.ModelNumber,
		"quantity":          services.FormatQty(item.Quantity),
		"unit":              item.Unit,
		"vendor_name":       item.VendorName,
		"system":            item.System,
		"supplier_currency": item.SupplierCurrency,
		"base_unit_cost":    item.BaseUnitCost.StringFixed(services.MoneyPlaces),
		"overrides": map[string]string{
			"discount_pct":     item.Discount.String(),
			"shipping_pct":     item.Shipping.String(),
			"customs_pct":      item.Customs.String(),
			"finances_pct":     item.Finances.String(),
			"installation_pct": item.Installation.String(),
			"margin_pct":       item.Margin.String(),
		},
		"effective": map[string]string{
			"discount_pct":     item.Discount.Whole(sheet.Defaults.Discount).String(),
			"shipping_pct":     item.Shipping.Whole(sheet.Defaults.Shipping).String(),
			"customs_pct":      item.Customs.Whole(sheet.Defaults.Customs).String(),
			"finances_pct":     item.Finances.Whole(sheet.Defaults.Finances).String(),
			"installation_pct": item.Installation.Whole(sheet.Defaults.Installation).String(),
			"margin_pct":       item.Margin.Whole(sheet.Defaults.Margin).String(),
		},
	}

	if r, ok := comp.Result(item.ID); ok {
		out["computed"] = map[string]any{
			"discount_amount":   r.DiscountAmount.StringFixed(services.MoneyPlaces),
			"unit_cost":         r.UnitCost.StringFixed(services.MoneyPlaces),
			"total_cost":        r.TotalCost.StringFixed(services.MoneyPlaces),
			"exchange_rate":     r.ExchangeRate.String(),
			"rate_missing":      r.RateMissing,
			"unit_cost_base":    r.UnitCostBase.StringFixed(services.MoneyPlaces),
			"base_unit_price":   r.BaseUnitPrice.StringFixed(services.MoneyPlaces),
			"base_total_price":  r.BaseTotalPrice.StringFixed(services.MoneyPlaces),
			"final_unit_price":  r.FinalUnitPrice.StringFixed(services.MoneyPlaces),
			"final_total_price": r.FinalTotalPrice.StringFixed(services.MoneyPlaces),
		}
	}
	return out
}
