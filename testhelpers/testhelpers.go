// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotetracker/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestRate creates an exchange rate record and returns it.
func CreateTestRate(t *testing.T, app *pocketbase.PocketBase, code, name string, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("exchange_rates")
	if err != nil {
		t.Fatalf("failed to find exchange_rates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("currency_code", code)
	record.Set("currency_name", name)
	record.Set("rate_to_base", rate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test exchange rate: %v", err)
	}

	return record
}

// SeedTestRates creates the standard rate fixtures used across handler and
// engine tests: SAR 3.75, USD 1.0, EUR 0.92.
func SeedTestRates(t *testing.T, app *pocketbase.PocketBase) {
	t.Helper()

	CreateTestRate(t, app, "SAR", "Saudi Riyal", 3.75)
	CreateTestRate(t, app, "USD", "US Dollar", 1.0)
	CreateTestRate(t, app, "EUR", "Euro", 0.92)
}

// CreateTestSheet creates a costing sheet linked to a project and returns it.
// Defaults: 40% margin, all other percentages zero, SAR output, draft status.
func CreateTestSheet(t *testing.T, app *pocketbase.PocketBase, projectID, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("costing_sheets")
	if err != nil {
		t.Fatalf("failed to find costing_sheets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("project", projectID)
	record.Set("output_currency", "SAR")
	record.Set("margin", 40)
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test costing sheet: %v", err)
	}

	return record
}

// CreateTestSection creates a section under a costing sheet and returns it.
func CreateTestSection(t *testing.T, app *pocketbase.PocketBase, sheetID, sectionNumber, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("costing_sections")
	if err != nil {
		t.Fatalf("failed to find costing_sections collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("costing_sheet", sheetID)
	record.Set("section_number", sectionNumber)
	record.Set("title", title)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test section: %v", err)
	}

	return record
}

// CreateTestLineItem creates a line item under a section and returns it.
// All percentage overrides are left empty so the item inherits the sheet defaults.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, sectionID, description string, qty, baseUnitCost float64, currency string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("section", sectionID)
	record.Set("item_number", "1.1")
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit", "EA")
	record.Set("supplier_currency", currency)
	record.Set("base_unit_cost", baseUnitCost)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
