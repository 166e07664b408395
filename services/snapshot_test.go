package services

import (
	"testing"

	"quotetracker/testhelpers"
)

func TestLoadRateCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SeedTestRates(t, app)

	catalog, err := LoadRateCatalog(app)
	if err != nil {
		t.Fatalf("LoadRateCatalog() error: %v", err)
	}

	rate, ok := catalog.Rate("SAR")
	if !ok {
		t.Fatal("expected SAR in catalog")
	}
	if !rate.Equal(dec("3.75")) {
		t.Errorf("SAR rate = %s, want 3.75", rate)
	}
	if !catalog.Has("EUR") {
		t.Error("expected EUR in catalog")
	}
	if catalog.Has("JPY") {
		t.Error("did not expect JPY in catalog")
	}
}

func TestLoadSheet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Snapshot Project")
	sheetRecord := testhelpers.CreateTestSheet(t, app, proj.Id, "Snapshot Sheet")
	section := testhelpers.CreateTestSection(t, app, sheetRecord.Id, "1", "Cameras")
	item := testhelpers.CreateTestLineItem(t, app, section.Id, "Dome camera", 4, 412.5, "USD")

	sheet, err := LoadSheet(app, sheetRecord.Id)
	if err != nil {
		t.Fatalf("LoadSheet() error: %v", err)
	}

	if sheet.Title != "Snapshot Sheet" {
		t.Errorf("Title = %q, want %q", sheet.Title, "Snapshot Sheet")
	}
	if sheet.OutputCurrency != "SAR" {
		t.Errorf("OutputCurrency = %q, want SAR", sheet.OutputCurrency)
	}
	if !sheet.Defaults.Margin.Equal(dec("40")) {
		t.Errorf("Defaults.Margin = %s, want 40", sheet.Defaults.Margin)
	}
	if len(sheet.Sections) != 1 {
		t.Fatalf("Sections = %d, want 1", len(sheet.Sections))
	}
	if len(sheet.Sections[0].Items) != 1 {
		t.Fatalf("Items = %d, want 1", len(sheet.Sections[0].Items))
	}

	li := sheet.Sections[0].Items[0]
	if li.ID != item.Id {
		t.Errorf("item ID = %q, want %q", li.ID, item.Id)
	}
	if !li.Quantity.Equal(dec("4")) {
		t.Errorf("Quantity = %s, want 4", li.Quantity)
	}
	if !li.BaseUnitCost.Equal(dec("412.5")) {
		t.Errorf("BaseUnitCost = %s, want 412.5", li.BaseUnitCost)
	}
	if li.SupplierCurrency != "USD" {
		t.Errorf("SupplierCurrency = %q, want USD", li.SupplierCurrency)
	}
	// Empty stored override fields mean inherit
	if li.Margin.Overridden() || li.Discount.Overridden() {
		t.Error("expected all percent fields to inherit")
	}
}

func TestLoadSheet_OverrideFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Override Project")
	sheetRecord := testhelpers.CreateTestSheet(t, app, proj.Id, "Override Sheet")
	section := testhelpers.CreateTestSection(t, app, sheetRecord.Id, "1", "Section")
	item := testhelpers.CreateTestLineItem(t, app, section.Id, "Item", 1, 100, "SAR")

	item.Set("margin_pct", "20")
	item.Set("discount_pct", "0")
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to set overrides: %v", err)
	}

	sheet, err := LoadSheet(app, sheetRecord.Id)
	if err != nil {
		t.Fatalf("LoadSheet() error: %v", err)
	}

	li := sheet.Sections[0].Items[0]
	if !li.Margin.Overridden() || !li.Margin.Whole(dec("40")).Equal(dec("20")) {
		t.Errorf("Margin override not loaded: %s", li.Margin.String())
	}
	// A stored "0" is a real override, not inherit
	if !li.Discount.Overridden() || !li.Discount.Whole(dec("10")).IsZero() {
		t.Errorf("zero Discount override not loaded: %s", li.Discount.String())
	}
	if li.Shipping.Overridden() {
		t.Error("Shipping should inherit")
	}
}

func TestLoadSheet_MalformedOverrideInherits(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Malformed Project")
	sheetRecord := testhelpers.CreateTestSheet(t, app, proj.Id, "Malformed Sheet")
	section := testhelpers.CreateTestSection(t, app, sheetRecord.Id, "1", "Section")
	item := testhelpers.CreateTestLineItem(t, app, section.Id, "Item", 1, 100, "SAR")

	item.Set("margin_pct", "not-a-number")
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to store malformed override: %v", err)
	}

	sheet, err := LoadSheet(app, sheetRecord.Id)
	if err != nil {
		t.Fatalf("LoadSheet() error: %v", err)
	}

	li := sheet.Sections[0].Items[0]
	if li.Margin.Overridden() {
		t.Error("malformed override should fall back to inherit")
	}
}

func TestLoadSheet_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if _, err := LoadSheet(app, "missing123"); err == nil {
		t.Error("expected error for unknown sheet ID")
	}
}

func TestLoadSheet_SectionOrdering(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Order Project")
	sheetRecord := testhelpers.CreateTestSheet(t, app, proj.Id, "Order Sheet")

	second := testhelpers.CreateTestSection(t, app, sheetRecord.Id, "2", "Second")
	second.Set("sort_order", 2)
	if err := app.Save(second); err != nil {
		t.Fatal(err)
	}
	first := testhelpers.CreateTestSection(t, app, sheetRecord.Id, "1", "First")
	first.Set("sort_order", 1)
	if err := app.Save(first); err != nil {
		t.Fatal(err)
	}

	sheet, err := LoadSheet(app, sheetRecord.Id)
	if err != nil {
		t.Fatalf("LoadSheet() error: %v", err)
	}
	if len(sheet.Sections) != 2 {
		t.Fatalf("Sections = %d, want 2", len(sheet.Sections))
	}
	if sheet.Sections[0].Title != "First" || sheet.Sections[1].Title != "Second" {
		t.Errorf("sections out of order: %q, %q", sheet.Sections[0].Title, sheet.Sections[1].Title)
	}
}
