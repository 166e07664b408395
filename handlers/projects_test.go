package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quotetracker/testhelpers"
)

func TestHandleProjectSave_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("name", "New Project")
	form.Set("client_name", "ACME Co")
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/projects", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("projects", "name = {:n}", "", 1, 0, map[string]any{"n": "New Project"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected project to be created in database")
	}
	if records[0].GetString("status") != "active" {
		t.Errorf("status = %q, want active", records[0].GetString("status"))
	}
}

func TestHandleProjectSave_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectSave(app)

	req := httptest.NewRequest(http.MethodPost, "/api/quotes/projects", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProjectList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Alpha")
	testhelpers.CreateTestProject(t, app, "Beta")
	handler := HandleProjectList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/projects", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), "Alpha", "Beta")
}

func TestHandleProjectUpdate_InvalidStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Status Project")
	handler := HandleProjectUpdate(app)

	form := url.Values{}
	form.Set("status", "paused")
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/projects/"+proj.Id+"/save", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProjectDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Doomed Project")
	handler := HandleProjectDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/quotes/projects/"+proj.Id, nil)
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("projects", proj.Id); err == nil {
		t.Error("expected project to be deleted")
	}
}

func TestHandleProjectDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/quotes/projects/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
