package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the projects, exchange_rates,
// costing_sheets, costing_sections and line_items collections exist.
//
// The six percentage override fields on line_items are text fields on
// purpose: the empty string means "inherit the sheet default", so an
// explicit override of 0 is never conflated with inheriting.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "closed"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "exchange_rates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "currency_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "currency_name", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate_to_base", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_exchange_rates_code", true, "currency_code", "")
	})

	sheets := ensureCollection(app, "costing_sheets", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      false,
			CollectionId:  projects.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "customer_reference", Required: false})
		c.Fields.Add(&core.TextField{Name: "output_currency", Required: true})
		// Sheet-wide default percentages, whole numbers (40 = 40%).
		// Required so every line item always has a fallback.
		c.Fields.Add(&core.NumberField{Name: "margin", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "shipping_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "customs_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "finances_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "installation_rate", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "final"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	sections := ensureCollection(app, "costing_sections", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "costing_sheet",
			Required:      true,
			CollectionId:  sheets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "section_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
	})

	ensureCollection(app, "line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "section",
			Required:      true,
			CollectionId:  sections.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "item_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "make", Required: false})
		c.Fields.Add(&core.TextField{Name: "model_number", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "unit",
			Required:  true,
			Values:    []string{"EA", "LOT", "Mtr", "Roll", "Set", "Pair", "Box", "Pkt"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "vendor_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "system", Required: false})
		c.Fields.Add(&core.TextField{Name: "supplier_currency", Required: true})
		c.Fields.Add(&core.NumberField{Name: "base_unit_cost", Required: false})
		// Per-item overrides; "" inherits the sheet default.
		c.Fields.Add(&core.TextField{Name: "discount_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "shipping_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "customs_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "finances_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "installation_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "margin_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
