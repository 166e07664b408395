package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectList returns all projects, newest first.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("project_list: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		projects := make([]map[string]any, 0, len(records))
		for _, r := range records {
			projects = append(projects, map[string]any{
				"id":          r.Id,
				"name":        r.GetString("name"),
				"client_name": r.GetString("client_name"),
				"status":      r.GetString("status"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"projects": projects})
	}
}

// HandleProjectSave creates a new project from form data.
func HandleProjectSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := e.Request.FormValue("name")
		if name == "" {
			return apiError(e, http.StatusBadRequest, "Project name is required")
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("client_name", e.Request.FormValue("client_name"))
		record.Set("status", "active")

		if err := app.Save(record); err != nil {
			log.Printf("project_save: error saving: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}

// HandleProjectUpdate updates a project's name, client and status.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		if name := e.Request.FormValue("name"); name != "" {
			record.Set("name", name)
		}
		if _, ok := e.Request.Form["client_name"]; ok {
			record.Set("client_name", e.Request.FormValue("client_name"))
		}
		if status := e.Request.FormValue("status"); status != "" {
			if status != "active" && status != "closed" {
				return apiError(e, http.StatusBadRequest, "Invalid status")
			}
			record.Set("status", status)
		}

		if err := app.Save(record); err != nil {
			log.Printf("project_update: error saving %s: %v", projectID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"id": record.Id})
	}
}

// HandleProjectDelete deletes a project. Sheets keep their data because the
// relation is non-cascading; they just lose the project link.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("project_delete: error deleting %s: %v", projectID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": projectID})
	}
}
