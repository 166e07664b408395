package handlers

import (
	"log"
	"net/http"
	"slices"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"quotetracker/services"
)

// overrideFields maps the editable percentage override fields. The stored
// value is text: "" inherits the sheet default, anything else is an override.
var overrideFields = map[string]bool{
	"discount_pct":     true,
	"shipping_pct":     true,
	"customs_pct":      true,
	"finances_pct":     true,
	"installation_pct": true,
	"margin_pct":       true,
}

// HandleAddItem creates a new line item under a section.
func HandleAddItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		if sectionID == "" {
			return apiError(e, http.StatusBadRequest, "Missing section ID")
		}

		if _, err := app.FindRecordById("costing_sections", sectionID); err != nil {
			return apiError(e, http.StatusNotFound, "Section not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		form := services.ItemForm{
			ItemNumber:       e.Request.FormValue("item_number"),
			Description:      e.Request.FormValue("description"),
			Quantity:         e.Request.FormValue("quantity"),
			Unit:             e.Request.FormValue("unit"),
			SupplierCurrency: e.Request.FormValue("supplier_currency"),
			BaseUnitCost:     e.Request.FormValue("base_unit_cost"),
		}
		if err := form.Validate(); err != nil {
			return fieldErrors(e, err)
		}

		qty, err := decimal.NewFromString(form.Quantity)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Quantity must be a number")
		}
		cost, err := decimal.NewFromString(form.BaseUnitCost)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Base unit cost must be a number")
		}

		col, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("section", sectionID)
		record.Set("item_number", form.ItemNumber)
		record.Set("description", form.Description)
		record.Set("make", e.Request.FormValue("make"))
		record.Set("model_number", e.Request.FormValue("model_number"))
		record.Set("quantity", qty.InexactFloat64())
		record.Set("unit", form.Unit)
		record.Set("vendor_name", e.Request.FormValue("vendor_name"))
		record.Set("system", e.Request.FormValue("system"))
		record.Set("supplier_currency", form.SupplierCurrency)
		record.Set("base_unit_cost", cost.InexactFloat64())
		if v := e.Request.FormValue("sort_order"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				record.Set("sort_order", n)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("add_item: error saving: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}

// HandlePatchItem updates individual fields on a line item. Every incoming
// value is validated before any is applied: one bad value rejects the whole
// request and the stored figures stay as they were. On success the item's
// recomputed pipeline figures and the affected rollups are returned.
func HandlePatchItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		if itemID == "" {
			return apiError(e, http.StatusBadRequest, "Missing item ID")
		}

		record, err := app.FindRecordById("line_items", itemID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		// Validate everything first, collect setters, apply only when all pass.
		type setter struct {
			field string
			value any
		}
		var setters []setter

		for key, values := range e.Request.Form {
			if len(values) == 0 {
				continue
			}
			val := values[0]

			if overrideFields[key] {
				// "" clears the override back to inherit
				p, err := services.ParsePercent(val)
				if err != nil {
					return apiError(e, http.StatusBadRequest, "Percentage overrides must be numbers or empty")
				}
				if p.Overridden() && p.Resolve(decimal.Zero).IsNegative() {
					return apiError(e, http.StatusBadRequest, "Percentage overrides cannot be negative")
				}
				setters = append(setters, setter{key, val})
				continue
			}

			switch key {
			case "item_number", "make", "model_number", "vendor_name", "system":
				setters = append(setters, setter{key, val})
			case "description":
				if val == "" {
					return apiError(e, http.StatusBadRequest, "Description cannot be empty")
				}
				setters = append(setters, setter{key, val})
			case "quantity":
				qty, err := decimal.NewFromString(val)
				if err != nil || qty.IsNegative() {
					return apiError(e, http.StatusBadRequest, "Quantity must be a non-negative number")
				}
				setters = append(setters, setter{key, qty.InexactFloat64()})
			case "base_unit_cost":
				cost, err := decimal.NewFromString(val)
				if err != nil || cost.IsNegative() {
					return apiError(e, http.StatusBadRequest, "Base unit cost must be a non-negative number")
				}
				setters = append(setters, setter{key, cost.InexactFloat64()})
			case "unit":
				if !slices.Contains(services.Units, val) {
					return apiError(e, http.StatusBadRequest, "Unknown unit")
				}
				setters = append(setters, setter{key, val})
			case "supplier_currency":
				if val == "" {
					return apiError(e, http.StatusBadRequest, "Supplier currency cannot be empty")
				}
				setters = append(setters, setter{key, val})
			case "sort_order":
				n, err := strconv.Atoi(val)
				if err != nil {
					return apiError(e, http.StatusBadRequest, "Sort order must be a whole number")
				}
				setters = append(setters, setter{key, n})
			}
		}

		if len(setters) > 0 {
			for _, s := range setters {
				record.Set(s.field, s.value)
			}
			if err := app.Save(record); err != nil {
				log.Printf("patch_item: error saving %s: %v", itemID, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		return itemFigures(app, e, record)
	}
}

// HandleDeleteItem deletes a line item and returns the recomputed rollups of
// its section and sheet.
func HandleDeleteItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		if itemID == "" {
			return apiError(e, http.StatusBadRequest, "Missing item ID")
		}

		record, err := app.FindRecordById("line_items", itemID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}
		sectionID := record.GetString("section")

		if err := app.Delete(record); err != nil {
			log.Printf("delete_item: error deleting %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sheetID, err := sheetIDForSection(app, sectionID)
		if err != nil {
			log.Printf("delete_item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sheet, err := services.LoadSheet(app, sheetID)
		if err != nil {
			log.Printf("delete_item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		catalog, err := services.LoadRateCatalog(app)
		if err != nil {
			log.Printf("delete_item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		comp := services.ComputeSheet(sheet, catalog)
		fields := services.ComputedSheetFields(comp)
		fields["section_subtotal"] = comp.SectionTotalsByID(sectionID).GrandTotal.StringFixed(services.MoneyPlaces)
		return e.JSON(http.StatusOK, fields)
	}
}

// itemFigures recomputes the item's sheet and returns the item-scoped payload.
func itemFigures(app *pocketbase.PocketBase, e *core.RequestEvent, record *core.Record) error {
	sectionID := record.GetString("section")
	sheetID, err := sheetIDForSection(app, sectionID)
	if err != nil {
		log.Printf("patch_item: %v", err)
		return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	sheet, err := services.LoadSheet(app, sheetID)
	if err != nil {
		log.Printf("patch_item: %v", err)
		return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	catalog, err := services.LoadRateCatalog(app)
	if err != nil {
		log.Printf("patch_item: %v", err)
		return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	comp := services.ComputeSheet(sheet, catalog)
	return e.JSON(http.StatusOK, services.ComputedItemFields(comp, sectionID, record.Id))
}

// sheetIDForSection resolves the owning sheet of a section.
func sheetIDForSection(app *pocketbase.PocketBase, sectionID string) (string, error) {
	section, err := app.FindRecordById("costing_sections", sectionID)
	if err != nil {
		return "", err
	}
	return section.GetString("costing_sheet"), nil
}
