package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dreistrom/dreistrom-api/internal/application/auth"
	"github.com/dreistrom/dreistrom-api/internal/application/billing"
	"github.com/dreistrom/dreistrom-api/internal/application/expense"
	"github.com/dreistrom/dreistrom-api/internal/application/vat"
	"github.com/dreistrom/dreistrom-api/internal/infrastructure/audit"
	infrapdf "github.com/dreistrom/dreistrom-api/internal/infrastructure/pdf"
	"github.com/dreistrom/dreistrom-api/internal/infrastructure/postgres"
	httpRouter "github.com/dreistrom/dreistrom-api/internal/interfaces/http"
	"github.com/dreistrom/dreistrom-api/pkg/config"
	"github.com/dreistrom/dreistrom-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	ruleRepo := postgres.NewAllocationRuleRepository(pool)
	returnRepo := postgres.NewVatReturnRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Vat.SequenceLockTimeoutMil)

	auditPublisher := audit.NewLogPublisher(log)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(txRunner, userRepo, clientRepo, auditPublisher, log)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, clientRepo)
	clientUC := billing.NewClientUseCase(clientRepo)

	pdfGenerator := infrapdf.NewMarotoInvoicePDF()
	invoicePDFUC := billing.NewInvoicePDFUseCase(invoiceRepo, clientRepo, userRepo, pdfGenerator)

	expenseUC := expense.NewUseCase(expenseRepo, ruleRepo)

	vatSummaryUC := vat.NewSummaryUseCase(userRepo, invoiceRepo, expenseRepo, cfg.Vat.StandardRatePercent)
	vatThresholdUC := vat.NewThresholdUseCase(invoiceRepo, cfg.Vat.CurrentYearLimitEUR, cfg.Vat.ProjectedYearLimitEUR)
	vatZmUC := vat.NewZmUseCase(invoiceRepo, clientRepo)
	vatReturnsUC := vat.NewReturnsUseCase(returnRepo, vatSummaryUC)

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dreistrom API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ClientUC:      clientUC,
		CreateInvoice: createInvoiceUC,
		InvoiceUC:     invoiceUC,
		InvoicePDF:    invoicePDFUC,
		ExpenseUC:     expenseUC,
		VatSummary:    vatSummaryUC,
		VatThreshold:  vatThresholdUC,
		VatZm:         vatZmUC,
		VatReturns:    vatReturnsUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
