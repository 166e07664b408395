package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotetracker/collections"
	"quotetracker/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateSheetDefaultMargins(app); err != nil {
			log.Printf("Warning: sheet margin migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/api/quotes/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/quotes/projects", handlers.HandleProjectSave(app))
		se.Router.POST("/api/quotes/projects/{id}/save", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/api/quotes/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Exchange rates ───────────────────────────────────────
		se.Router.GET("/api/quotes/rates", handlers.HandleRateList(app))
		se.Router.POST("/api/quotes/rates", handlers.HandleRateSave(app))
		se.Router.PATCH("/api/quotes/rates/{id}", handlers.HandlePatchRate(app))
		se.Router.DELETE("/api/quotes/rates/{id}", handlers.HandleRateDelete(app))

		// ── Costing sheets ───────────────────────────────────────
		se.Router.GET("/api/quotes/projects/{projectId}/sheets", handlers.HandleSheetList(app))
		se.Router.POST("/api/quotes/projects/{projectId}/sheets", handlers.HandleSheetSave(app))
		se.Router.POST("/api/quotes/sheets/{id}/save", handlers.HandleSheetUpdate(app))
		se.Router.PATCH("/api/quotes/sheets/{id}/params", handlers.HandlePatchSheetParams(app))
		se.Router.DELETE("/api/quotes/sheets/{id}", handlers.HandleSheetDelete(app))

		// Sheet export
		se.Router.GET("/api/quotes/sheets/{id}/export/excel", handlers.HandleSheetExportExcel(app))
		se.Router.GET("/api/quotes/sheets/{id}/export/pdf", handlers.HandleSheetExportPDF(app))

		// Sections
		se.Router.POST("/api/quotes/sheets/{id}/sections", handlers.HandleAddSection(app))
		se.Router.PATCH("/api/quotes/sections/{sectionId}", handlers.HandlePatchSection(app))
		se.Router.DELETE("/api/quotes/sections/{sectionId}", handlers.HandleDeleteSection(app))

		// Line items
		se.Router.POST("/api/quotes/sections/{sectionId}/items", handlers.HandleAddItem(app))
		se.Router.PATCH("/api/quotes/items/{itemId}", handlers.HandlePatchItem(app))
		se.Router.DELETE("/api/quotes/items/{itemId}", handlers.HandleDeleteItem(app))

		// Sheet view (after specific /sheets/{id}/* routes)
		se.Router.GET("/api/quotes/sheets/{id}", handlers.HandleSheetView(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
