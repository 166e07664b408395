package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quotetracker/testhelpers"
)

func TestHandleRateSave_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleRateSave(app)

	form := url.Values{}
	form.Set("currency_code", "GBP")
	form.Set("currency_name", "British Pound")
	form.Set("rate_to_base", "0.79")
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/rates", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("exchange_rates", "currency_code = 'GBP'", "", 1, 0, nil)
	if err != nil || len(records) == 0 {
		t.Fatal("expected rate to be created")
	}
	if records[0].GetFloat("rate_to_base") != 0.79 {
		t.Errorf("rate_to_base = %v, want 0.79", records[0].GetFloat("rate_to_base"))
	}
}

func TestHandleRateSave_Invalid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleRateSave(app)

	tests := []struct {
		name string
		code string
		rate string
	}{
		{"lowercase code", "gbp", "0.79"},
		{"zero rate", "GBP", "0"},
		{"negative rate", "GBP", "-1"},
		{"non-numeric rate", "GBP", "abc"},
		{"missing code", "", "0.79"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("currency_code", tt.code)
			form.Set("rate_to_base", tt.rate)
			req := httptest.NewRequest(http.MethodPost, "/api/quotes/rates", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleRateSave_DuplicateCode(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestRate(t, app, "USD", "US Dollar", 1.0)
	handler := HandleRateSave(app)

	form := url.Values{}
	form.Set("currency_code", "USD")
	form.Set("rate_to_base", "1.1")
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/rates", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate code, got %d", rec.Code)
	}
}

func TestHandleRateList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SeedTestRates(t, app)
	handler := HandleRateList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/rates", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), "SAR", "USD", "EUR", "base_currency")
}

func TestHandlePatchRate_UpdatesRate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rate := testhelpers.CreateTestRate(t, app, "EUR", "Euro", 0.92)
	handler := HandlePatchRate(app)

	form := url.Values{}
	form.Set("rate_to_base", "0.95")
	req := httptest.NewRequest(http.MethodPatch, "/api/quotes/rates/"+rate.Id, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", rate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	updated, _ := app.FindRecordById("exchange_rates", rate.Id)
	if updated.GetFloat("rate_to_base") != 0.95 {
		t.Errorf("rate_to_base = %v, want 0.95", updated.GetFloat("rate_to_base"))
	}
}

func TestHandlePatchRate_RejectsNonPositive(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rate := testhelpers.CreateTestRate(t, app, "EUR", "Euro", 0.92)
	handler := HandlePatchRate(app)

	for _, bad := range []string{"0", "-1", "abc"} {
		form := url.Values{}
		form.Set("rate_to_base", bad)
		req := httptest.NewRequest(http.MethodPatch, "/api/quotes/rates/"+rate.Id, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetPathValue("id", rate.Id)
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)

		if err := handler(e); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("value %q: expected 400, got %d", bad, rec.Code)
		}
	}

	// Stored rate untouched
	updated, _ := app.FindRecordById("exchange_rates", rate.Id)
	if updated.GetFloat("rate_to_base") != 0.92 {
		t.Errorf("rate_to_base = %v, want unchanged 0.92", updated.GetFloat("rate_to_base"))
	}
}

func TestHandleRateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rate := testhelpers.CreateTestRate(t, app, "AED", "UAE Dirham", 3.67)
	handler := HandleRateDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/quotes/rates/"+rate.Id, nil)
	req.SetPathValue("id", rate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("exchange_rates", rate.Id); err == nil {
		t.Error("expected rate to be deleted")
	}
}
