package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/launch", handler.Launch)

	onboarding := api.Group("/onboarding")
	onboarding.Get("", handler.ShowOnboarding)
	onboarding.Post("/complete", handler.CompleteOnboarding)

	logs := api.Group("/logs")
	logs.Get("", handler.ListLogs)
	logs.Post("", handler.CreateLog)
	logs.Get("/:id", handler.GetLog)
	logs.Delete("/:id", handler.DeleteLog)

	options := api.Group("/options/:collection")
	options.Get("", handler.ListOptions)
	options.Post("", handler.CreateOption)
	options.Delete("/:id", handler.DeleteOption)

	api.Get("/pressure", handler.GetPressure)
	api.Get("/events/:collection", handler.StreamEvents)

	export := api.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}
