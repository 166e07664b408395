package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"quotetracker/services"
)

// sheetDefaultMargin is applied when a new sheet does not specify one.
var sheetDefaultMargin = decimal.NewFromInt(40)

// HandleSheetSave creates a new costing sheet under a project.
func HandleSheetSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project ID")
		}

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		outputCurrency := e.Request.FormValue("output_currency")
		if outputCurrency == "" {
			outputCurrency = services.BaseCurrency
		}
		status := e.Request.FormValue("status")
		if status == "" {
			status = "draft"
		}

		form := services.SheetForm{
			Title:             e.Request.FormValue("title"),
			CustomerReference: e.Request.FormValue("customer_reference"),
			OutputCurrency:    outputCurrency,
			Status:            status,
		}
		if err := form.Validate(); err != nil {
			return fieldErrors(e, err)
		}

		margin := sheetDefaultMargin
		if v := e.Request.FormValue("margin"); v != "" {
			parsed, err := decimal.NewFromString(v)
			if err != nil {
				return apiError(e, http.StatusBadRequest, "Margin must be a number")
			}
			margin = parsed
		}

		col, err := app.FindCollectionByNameOrId("costing_sheets")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("title", form.Title)
		record.Set("project", projectID)
		record.Set("customer_reference", form.CustomerReference)
		record.Set("output_currency", form.OutputCurrency)
		record.Set("margin", margin.InexactFloat64())
		record.Set("status", form.Status)

		if err := app.Save(record); err != nil {
			log.Printf("sheet_save: error saving: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}
