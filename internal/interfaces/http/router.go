package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dreistrom/dreistrom-api/internal/application/auth"
	"github.com/dreistrom/dreistrom-api/internal/application/billing"
	"github.com/dreistrom/dreistrom-api/internal/application/expense"
	"github.com/dreistrom/dreistrom-api/internal/application/vat"
)

// RouterDeps carries the wired use cases for the router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ClientUC      *billing.ClientUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	InvoiceUC     *billing.InvoiceUseCase
	InvoicePDF    *billing.InvoicePDFUseCase
	ExpenseUC     *expense.UseCase
	VatSummary    *vat.SummaryUseCase
	VatThreshold  *vat.ThresholdUseCase
	VatZm         *vat.ZmUseCase
	VatReturns    *vat.ReturnsUseCase
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Profile
	me := protected.Group("/auth/me")
	me.Get("/", authHandler.Profile)
	me.Put("/kleinunternehmer", authHandler.SetKleinunternehmer)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Deactivate)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoiceUC, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Expenses and allocation rules
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/rules", expenseHandler.CreateRule)
	expenses.Get("/rules", expenseHandler.ListRules)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", expenseHandler.Delete)

	// VAT
	vatGroup := protected.Group("/vat")
	vatHandler := NewVatHandler(deps.VatSummary, deps.VatThreshold, deps.VatZm, deps.VatReturns)
	vatGroup.Get("/summary", vatHandler.Summary)
	vatGroup.Get("/kleinunternehmer-status", vatHandler.KleinunternehmerStatus)
	vatGroup.Get("/zm-report", vatHandler.ZmReport)
	vatGroup.Get("/returns", vatHandler.ListReturns)
	vatGroup.Post("/returns", vatHandler.GenerateReturn)
	vatGroup.Post("/returns/year", vatHandler.GenerateYearReturns)
	vatGroup.Post("/returns/:id/submit", vatHandler.SubmitReturn)
}
