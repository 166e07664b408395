package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotetracker/services"
)

// buildSheetExport loads, computes and flattens a sheet for export.
func buildSheetExport(app *pocketbase.PocketBase, sheetID string) (services.ExportData, error) {
	sheet, err := services.LoadSheet(app, sheetID)
	if err != nil {
		return services.ExportData{}, err
	}

	catalog, err := services.LoadRateCatalog(app)
	if err != nil {
		return services.ExportData{}, err
	}

	projectName := ""
	if sheet.ProjectID != "" {
		if proj, err := app.FindRecordById("projects", sheet.ProjectID); err == nil {
			projectName = proj.GetString("name")
		}
	}

	comp := services.ComputeSheet(sheet, catalog)
	generatedDate := time.Now().Format("02 Jan 2006")
	return services.BuildExportData(sheet, comp, catalog, projectName, generatedDate), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleSheetExportExcel generates and downloads the full internal costing
// workbook, including costs, margins and the rate table.
func HandleSheetExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.String(http.StatusBadRequest, "Missing sheet ID")
		}

		data, err := buildSheetExport(app, sheetID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Sheet not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Costing_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleSheetExportPDF generates and downloads the customer-facing quotation
// PDF, which shows final prices only.
func HandleSheetExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.String(http.StatusBadRequest, "Missing sheet ID")
		}

		data, err := buildSheetExport(app, sheetID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Sheet not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Quotation_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
