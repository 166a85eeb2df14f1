package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"paperscan/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	analysisSvc service.AnalysisService,
	entitlementSvc service.EntitlementService,
	billingSvc service.BillingService,
	contactSvc service.ContactService,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/analyze-paper", AnalyzePaper(analysisSvc))
	app.Post("/analyze-url", AnalyzeURL(analysisSvc))
	app.Post("/analyze-batch", AnalyzeBatch(analysisSvc))

	app.Post("/stripe/webhook", StripeWebhook(billingSvc))
	app.Get("/check-pro-status/:email", CheckProStatus(entitlementSvc))

	api := app.Group("/api")
	api.Post("/contact", SubmitContact(contactSvc))
	api.Get("/contact/analytics", ContactAnalytics(contactSvc))
	api.Get("/contact/recent", ContactRecent(contactSvc))
	api.Get("/contact/search", SearchContacts(contactSvc))
	api.Put("/contact/:id/status", UpdateContactStatus(contactSvc))

	api.Post("/export/:format", ExportSummary())
}
