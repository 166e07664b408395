package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"quotetracker/services"
)

// HandleRateList returns the exchange rate catalog sorted by currency code.
func HandleRateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("exchange_rates")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "currency_code", 0, 0, nil)
		if err != nil {
			log.Printf("rate_list: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		rates := make([]map[string]any, 0, len(records))
		for _, r := range records {
			rates = append(rates, map[string]any{
				"id":            r.Id,
				"currency_code": r.GetString("currency_code"),
				"currency_name": r.GetString("currency_name"),
				"rate_to_base":  r.GetFloat("rate_to_base"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"base_currency": services.BaseCurrency,
			"rates":         rates,
		})
	}
}

// HandleRateSave creates a new exchange rate entry.
func HandleRateSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		form := services.RateForm{
			CurrencyCode: e.Request.FormValue("currency_code"),
			CurrencyName: e.Request.FormValue("currency_name"),
			Rate:         e.Request.FormValue("rate_to_base"),
		}
		if err := form.Validate(); err != nil {
			return fieldErrors(e, err)
		}

		rate, err := decimal.NewFromString(form.Rate)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid rate value")
		}

		col, err := app.FindCollectionByNameOrId("exchange_rates")
		if err != nil {
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("currency_code", form.CurrencyCode)
		record.Set("currency_name", form.CurrencyName)
		record.Set("rate_to_base", rate.InexactFloat64())

		if err := app.Save(record); err != nil {
			log.Printf("rate_save: error saving %s: %v", form.CurrencyCode, err)
			return apiError(e, http.StatusBadRequest, "Could not save rate. The currency code may already exist.")
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}

// HandlePatchRate updates fields on an exchange rate entry. The currency code
// itself is immutable once created; delete and recreate to change it.
func HandlePatchRate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rateID := e.Request.PathValue("id")
		if rateID == "" {
			return apiError(e, http.StatusBadRequest, "Missing rate ID")
		}

		record, err := app.FindRecordById("exchange_rates", rateID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Rate not found")
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
			case "currency_name":
				record.Set("currency_name", val)
				updated = true
			case "rate_to_base":
				rate, err := decimal.NewFromString(val)
				if err != nil || !rate.IsPositive() {
					return apiError(e, http.StatusBadRequest, "Rate must be a positive number")
				}
				record.Set("rate_to_base", rate.InexactFloat64())
				updated = true
			}
		}

		if updated {
			if err := app.Save(record); err != nil {
				log.Printf("patch_rate: error saving %s: %v", rateID, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":           record.Id,
			"rate_to_base": record.GetFloat("rate_to_base"),
		})
	}
}

// HandleRateDelete removes an exchange rate entry. Sheets that reference the
// currency keep working; items priced in it fall back to a factor of 1 and
// are flagged in the computation output.
func HandleRateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rateID := e.Request.PathValue("id")
		if rateID == "" {
			return apiError(e, http.StatusBadRequest, "Missing rate ID")
		}

		record, err := app.FindRecordById("exchange_rates", rateID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Rate not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("rate_delete: error deleting %s: %v", rateID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": rateID})
	}
}
