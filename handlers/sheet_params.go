package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"quotetracker/services"
)

// paramFields are the sheet-wide default percentages editable inline.
var paramFields = map[string]bool{
	"margin":            true,
	"discount_rate":     true,
	"shipping_rate":     true,
	"customs_rate":      true,
	"finances_rate":     true,
	"installation_rate": true,
}

// HandlePatchSheetParams updates sheet-wide default percentages. All incoming
// values are validated before any of them is applied, so a request with one
// bad value changes nothing. On success the recomputed sheet rollups are
// returned for in-place display updates.
func HandlePatchSheetParams(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return apiError(e, http.StatusBadRequest, "Missing sheet ID")
		}

		record, err := app.FindRecordById("costing_sheets", sheetID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Sheet not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		// Validate everything first
		parsed := make(map[string]decimal.Decimal)
		for key, values := range e.Request.Form {
			if !paramFields[key] || len(values) == 0 {
				continue
			}
			v, err := decimal.NewFromString(values[0])
			if err != nil {
				return apiError(e, http.StatusBadRequest, "Percentage values must be numbers")
			}
			if v.IsNegative() {
				return apiError(e, http.StatusBadRequest, "Percentage values cannot be negative")
			}
			parsed[key] = v
		}

		if len(parsed) > 0 {
			for key, v := range parsed {
				record.Set(key, v.InexactFloat64())
			}
			if err := app.Save(record); err != nil {
				log.Printf("patch_sheet_params: error saving %s: %v", sheetID, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		sheet, err := services.LoadSheet(app, sheetID)
		if err != nil {
			log.Printf("patch_sheet_params: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		catalog, err := services.LoadRateCatalog(app)
		if err != nil {
			log.Printf("patch_sheet_params: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		comp := services.ComputeSheet(sheet, catalog)
		return e.JSON(http.StatusOK, services.ComputedSheetFields(comp))
	}
}
