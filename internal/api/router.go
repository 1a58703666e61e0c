package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"jizhang/docs"
	"jizhang/internal/api/handlers"
)

// Handlers bundles everything SetupRouter mounts.
type Handlers struct {
	Transactions      *handlers.TransactionHandler
	Accounts          *handlers.AccountHandler
	Categories        *handlers.CategoryHandler
	RecurringExpenses *handlers.RecurringExpenseHandler
	Settings          *handlers.SettingsHandler
	Tax               *handlers.TaxHandler
	Reminders         *handlers.ReminderHandler
}

func SetupRouter(h Handlers, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger docs are registered through the docs package init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	transactions := api.Group("/transactions")
	transactions.Get("", h.Transactions.List)
	transactions.Post("", h.Transactions.Create)
	transactions.Get("/pending/payments", h.Transactions.PendingPayments)
	transactions.Get("/pending/invoices", h.Transactions.PendingInvoices)
	transactions.Get("/pending/taxes", h.Transactions.PendingTaxes)
	transactions.Get("/:id", h.Transactions.Get)
	transactions.Put("/:id", h.Transactions.Update)
	transactions.Delete("/:id", h.Transactions.Delete)
	transactions.Post("/:id/confirm-payment", h.Transactions.ConfirmPayment)
	transactions.Post("/:id/confirm-invoice", h.Transactions.ConfirmInvoice)
	transactions.Post("/:id/skip-invoice", h.Transactions.SkipInvoice)
	transactions.Post("/:id/confirm-tax", h.Transactions.ConfirmTax)

	accounts := api.Group("/accounts")
	accounts.Get("", h.Accounts.List)
	accounts.Post("", h.Accounts.Create)
	accounts.Get("/:id", h.Accounts.Get)
	accounts.Put("/:id", h.Accounts.Update)
	accounts.Delete("/:id", h.Accounts.Delete)

	categories := api.Group("/categories")
	categories.Get("", h.Categories.List)
	categories.Post("", h.Categories.Create)
	categories.Put("/:id", h.Categories.Update)
	categories.Delete("/:id", h.Categories.Delete)

	recurring := api.Group("/recurring-expenses")
	recurring.Get("", h.RecurringExpenses.List)
	recurring.Post("", h.RecurringExpenses.Create)
	recurring.Put("/:id", h.RecurringExpenses.Update)
	recurring.Delete("/:id", h.RecurringExpenses.Delete)
	recurring.Post("/:id/toggle", h.RecurringExpenses.Toggle)

	settings := api.Group("/settings")
	settings.Get("/tax", h.Settings.GetTaxSettings)
	settings.Put("/tax", h.Settings.SaveTaxSettings)
	settings.Get("/company", h.Settings.GetCompanyInfo)
	settings.Put("/company", h.Settings.SaveCompanyInfo)

	api.Get("/tax/quarterly", h.Tax.Quarterly)
	api.Get("/reminders", h.Reminders.List)

	appLogger.Info("Router configured")
	return app
}
