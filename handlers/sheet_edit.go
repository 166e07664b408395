package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotetracker/services"
)

// HandleSheetUpdate updates a sheet's descriptive fields. The pricing
// parameters have their own PATCH endpoint because edits there change every
// inherited figure on the sheet.
func HandleSheetUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
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

		form := services.SheetForm{
			Title:             record.GetString("title"),
			CustomerReference: record.GetString("customer_reference"),
			OutputCurrency:    record.GetString("output_currency"),
			Status:            record.GetString("status"),
		}
		if v := e.Request.FormValue("title"); v != "" {
			form.Title = v
		}
		if _, ok := e.Request.Form["customer_reference"]; ok {
			form.CustomerReference = e.Request.FormValue("customer_reference")
		}
		if v := e.Request.FormValue("output_currency"); v != "" {
			form.OutputCurrency = v
		}
		if v := e.Request.FormValue("status"); v != "" {
			form.Status = v
		}

		if err := form.Validate(); err != nil {
			return fieldErrors(e, err)
		}

		record.Set("title", form.Title)
		record.Set("customer_reference", form.CustomerReference)
		record.Set("output_currency", form.OutputCurrency)
		record.Set("status", form.Status)

		if err := app.Save(record); err != nil {
			log.Printf("sheet_update: error saving %s: %v", sheetID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"id": record.Id})
	}
}

// HandleSheetDelete deletes a sheet. Sections and line items cascade.
func HandleSheetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return apiError(e, http.StatusBadRequest, "Missing sheet ID")
		}

		record, err := app.FindRecordById("costing_sheets", sheetID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Sheet not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("sheet_delete: error deleting %s: %v", sheetID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": sheetID})
	}
}
