package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type rateDef struct {
	code string
	name string
	rate float64
}

type itemDef struct {
	itemNumber   string
	description  string
	make_        string
	modelNumber  string
	quantity     float64
	unit         string
	vendorName   string
	system       string
	currency     string
	baseUnitCost float64
	// overrides; "" inherits the sheet default
	discountPct     string
	marginPct       string
	shippingPct     string
	installationPct string
	sortOrder       int
}

type sectionDef struct {
	sectionNumber string
	title         string
	sortOrder     int
	items         []itemDef
}

type sheetDef struct {
	title             string
	customerReference string
	outputCurrency    string
	margin            float64
	discountRate      float64
	shippingRate      float64
	customsRate       float64
	financesRate      float64
	installationRate  float64
	status            string
	sections          []sectionDef
}

// Seed populates the collections with a demo project and a costed security
// systems proposal. It is safe to call on every startup because it returns
// early if any costing sheet already exists.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if sheets already exist ────────────────────
	sheetsCol, err := app.FindCollectionByNameOrId("costing_sheets")
	if err != nil {
		return fmt.Errorf("seed: could not find costing_sheets collection: %w", err)
	}
	existing, err := app.FindAllRecords(sheetsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query costing_sheets: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: costing_sheets collection is empty – inserting seed data …")

	ratesCol, err := app.FindCollectionByNameOrId("exchange_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find exchange_rates collection: %w", err)
	}
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	sectionsCol, err := app.FindCollectionByNameOrId("costing_sections")
	if err != nil {
		return fmt.Errorf("seed: could not find costing_sections collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return fmt.Errorf("seed: could not find line_items collection: %w", err)
	}

	// ── exchange rates (values relative to the catalog pivot) ────────
	rates := []rateDef{
		{"SAR", "Saudi Riyal", 3.75},
		{"USD", "US Dollar", 1.00},
		{"EUR", "Euro", 0.92},
		{"GBP", "British Pound", 0.79},
		{"AED", "UAE Dirham", 3.67},
	}
	for _, d := range rates {
		r := core.NewRecord(ratesCol)
		r.Set("currency_code", d.code)
		r.Set("currency_name", d.name)
		r.Set("rate_to_base", d.rate)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save exchange rate %q: %w", d.code, err)
		}
	}

	// ── demo project ─────────────────────────────────────────────────
	project := core.NewRecord(projectsCol)
	project.Set("name", "Riyadh Logistics Park – Security Systems")
	project.Set("client_name", "Al Waha Logistics Co.")
	project.Set("status", "active")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	// ── demo costing sheet ───────────────────────────────────────────
	sheet := sheetDef{
		title:             "Riyadh Logistics Park – CCTV & Access Control",
		customerReference: "RFQ-2025-0114",
		outputCurrency:    "SAR",
		margin:            40,
		discountRate:      0,
		shippingRate:      5,
		customsRate:       2,
		financesRate:      0,
		installationRate:  0,
		status:            "draft",
		sections: []sectionDef{
			{
				sectionNumber: "1",
				title:         "Cameras",
				sortOrder:     1,
				items: []itemDef{
					{
						itemNumber: "1.1", description: "Fixed dome network camera, 4MP, IR",
						make_: "Axis", modelNumber: "P3265-LVE", quantity: 24, unit: "EA",
						vendorName: "Gulf Vision Trading", system: "CCTV",
						currency: "USD", baseUnitCost: 412.50, discountPct: "10",
						sortOrder: 1,
					},
					{
						itemNumber: "1.2", description: "PTZ network camera, 8MP, 32x zoom",
						make_: "Axis", modelNumber: "Q6315-LE", quantity: 4, unit: "EA",
						vendorName: "Gulf Vision Trading", system: "CCTV",
						currency: "USD", baseUnitCost: 2150.00, discountPct: "10",
						sortOrder: 2,
					},
				},
			},
			{
				sectionNumber: "2",
				title:         "Cabling & Containment",
				sortOrder:     2,
				items: []itemDef{
					{
						itemNumber: "2.1", description: "Cat6A U/FTP cable, LSZH, 305m reel",
						quantity: 18, unit: "Roll",
						vendorName: "Najd Cables Est.", system: "Infrastructure",
						currency: "SAR", baseUnitCost: 685.00,
						sortOrder: 1,
					},
					{
						itemNumber: "2.2", description: "GI cable tray 200mm, incl. accessories",
						quantity: 420, unit: "Mtr",
						vendorName: "Najd Cables Est.", system: "Infrastructure",
						currency: "SAR", baseUnitCost: 38.00, marginPct: "25",
						sortOrder: 2,
					},
				},
			},
			{
				sectionNumber: "3",
				title:         "Installation & Commissioning",
				sortOrder:     3,
				items: []itemDef{
					{
						itemNumber: "3.1", description: "Installation, termination and commissioning",
						quantity: 1, unit: "LOT",
						system:   "Services",
						currency: "SAR", baseUnitCost: 48000.00,
						marginPct: "20", shippingPct: "0", installationPct: "0",
						sortOrder: 1,
					},
				},
			},
		},
	}

	sheetRecord := core.NewRecord(sheetsCol)
	sheetRecord.Set("title", sheet.title)
	sheetRecord.Set("project", project.Id)
	sheetRecord.Set("customer_reference", sheet.customerReference)
	sheetRecord.Set("output_currency", sheet.outputCurrency)
	sheetRecord.Set("margin", sheet.margin)
	sheetRecord.Set("discount_rate", sheet.discountRate)
	sheetRecord.Set("shipping_rate", sheet.shippingRate)
	sheetRecord.Set("customs_rate", sheet.customsRate)
	sheetRecord.Set("finances_rate", sheet.financesRate)
	sheetRecord.Set("installation_rate", sheet.installationRate)
	sheetRecord.Set("status", sheet.status)
	if err := app.Save(sheetRecord); err != nil {
		return fmt.Errorf("seed: save costing sheet: %w", err)
	}

	for _, s := range sheet.sections {
		sectionRecord := core.NewRecord(sectionsCol)
		sectionRecord.Set("costing_sheet", sheetRecord.Id)
		sectionRecord.Set("section_number", s.sectionNumber)
		sectionRecord.Set("title", s.title)
		sectionRecord.Set("sort_order", s.sortOrder)
		if err := app.Save(sectionRecord); err != nil {
			return fmt.Errorf("seed: save section %q: %w", s.title, err)
		}

		for _, d := range s.items {
			r := core.NewRecord(itemsCol)
			r.Set("section", sectionRecord.Id)
			r.Set("item_number", d.itemNumber)
			r.Set("description", d.description)
			r.Set("make", d.make_)
			r.Set("model_number", d.modelNumber)
			r.Set("quantity", d.quantity)
			r.Set("unit", d.unit)
			r.Set("vendor_name", d.vendorName)
			r.Set("system", d.system)
			r.Set("supplier_currency", d.currency)
			r.Set("base_unit_cost", d.baseUnitCost)
			r.Set("discount_pct", d.discountPct)
			r.Set("margin_pct", d.marginPct)
			r.Set("shipping_pct", d.shippingPct)
			r.Set("installation_pct", d.installationPct)
			r.Set("sort_order", d.sortOrder)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save line item %q: %w", d.description, err)
			}
		}
	}

	log.Println("seed: done")
	return nil
}
