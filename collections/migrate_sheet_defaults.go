package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// defaultMargin is the standard margin percentage applied to sheets that
// predate the default percentage fields.
const defaultMargin = 40

// sheetMarginMigrationKey records the margin backfill in app_migrations so
// it runs exactly once. After that point a zero margin is a deliberate
// user value and must survive restarts.
const sheetMarginMigrationKey = "sheet_default_margins_v1"

// MigrateSheetDefaultMargins backfills the standard margin onto costing
// sheets stored before the margin field existed, which read back as zero.
// The backfill runs once per database and marks itself applied; sheets
// priced at cost afterwards are left alone.
func MigrateSheetDefaultMargins(app *pocketbase.PocketBase) error {
	migrationsCol := ensureCollection(app, "app_migrations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "applied", OnCreate: true})
		c.AddIndex("idx_app_migrations_key", true, "key", "")
	})

	existing, err := app.FindRecordsByFilter(
		migrationsCol,
		"key = {:key}",
		"",
		1,
		0,
		map[string]any{"key": sheetMarginMigrationKey},
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query app_migrations: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	sheetsCol, err := app.FindCollectionByNameOrId("costing_sheets")
	if err != nil {
		return fmt.Errorf("migrate: could not find costing_sheets collection: %w", err)
	}

	legacySheets, err := app.FindRecordsByFilter(
		sheetsCol,
		"margin = 0",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query costing sheets: %w", err)
	}

	if len(legacySheets) > 0 {
		log.Printf("migrate: found %d sheet(s) with zero margin -- applying default margin...\n", len(legacySheets))
	}

	for _, sheet := range legacySheets {
		sheet.Set("margin", defaultMargin)
		if err := app.Save(sheet); err != nil {
			log.Printf("migrate: failed to set default margin on sheet %q (%s): %v\n", sheet.GetString("title"), sheet.Id, err)
			continue
		}
		log.Printf("migrate: sheet %q -> margin %d%%\n", sheet.GetString("title"), defaultMargin)
	}

	marker := core.NewRecord(migrationsCol)
	marker.Set("key", sheetMarginMigrationKey)
	if err := app.Save(marker); err != nil {
		return fmt.Errorf("migrate: could not mark %q applied: %w", sheetMarginMigrationKey, err)
	}

	log.Println("migrate: sheet default margin migration complete.")
	return nil
}
