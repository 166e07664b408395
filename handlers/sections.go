package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotetracker/services"
)

// HandleAddSection creates a new section under a sheet.
func HandleAddSection(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return apiError(e, http.StatusBadRequest, "Missing sheet ID")
		}

		if _, err := app.FindRecordById("costing_sheets", sheetID); err != nil {
			return apiError(e, http.StatusNotFound, "Sheet not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		form := services.SectionForm{
			SectionNumber: e.Request.FormValue("section_number"),
			Title:         e.Request.FormValue("title"),
		}
		if err := form.Validate(); err != nil {
			return fieldErrors(e, err)
		}

		col, err := app.FindCollectionByNameOrId("costing_sections")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sortOrder := 0
		if v := e.Request.FormValue("sort_order"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				sortOrder = n
			}
		}

		record := core.NewRecord(col)
		record.Set("costing_sheet", sheetID)
		record.Set("section_number", form.SectionNumber)
		record.Set("title", form.Title)
		record.Set("sort_order", sortOrder)

		if err := app.Save(record); err != nil {
			log.Printf("add_section: error saving: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}

// HandlePatchSection updates individual fields on a section.
func HandlePatchSection(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		if sectionID == "" {
			return apiError(e, http.StatusBadRequest, "Missing section ID")
		}

		record, err := app.FindRecordById("costing_sections", sectionID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Section not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		updated := false
		for key, values := range e.Request.Form {
			if len(values) == 0 {
				continue
			}
			val := values[0]
			switch key {
			case "section_number":
				if val == "" {
					return apiError(e, http.StatusBadRequest, "Section number cannot be empty")
				}
				record.Set("section_number", val)
				updated = true
			case "title":
				if val == "" {
					return apiError(e, http.StatusBadRequest, "Title cannot be empty")
				}
				record.Set("title", val)
				updated = true
			case "sort_order":
				n, err := strconv.Atoi(val)
				if err != nil {
					return apiError(e, http.StatusBadRequest, "Sort order must be a whole number")
				}
				record.Set("sort_order", n)
				updated = true
			}
		}

		if updated {
			if err := app.Save(record); err != nil {
				log.Printf("patch_section: error saving %s: %v", sectionID, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		return e.JSON(http.StatusOK, map[string]string{"id": record.Id})
	}
}

// HandleDeleteSection deletes a section (PocketBase cascade handles its
// line items) and returns the recomputed sheet rollups.
func HandleDeleteSection(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		if sectionID == "" {
			return apiError(e, http.StatusBadRequest, "Missing section ID")
		}

		record, err := app.FindRecordById("costing_sections", sectionID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Section not found")
		}
		sheetID := record.GetString("costing_sheet")

		if err := app.Delete(record); err != nil {
			log.Printf("delete_section: error deleting %s: %v", sectionID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sheet, err := services.LoadSheet(app, sheetID)
		if err != nil {
			log.Printf("delete_section: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		catalog, err := services.LoadRateCatalog(app)
		if err != nil {
			log.Printf("delete_section: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		comp := services.ComputeSheet(sheet, catalog)
		return e.JSON(http.StatusOK, services.ComputedSheetFields(comp))
	}
}
