package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jizhang/internal/api"
	"jizhang/internal/api/handlers"
	"jizhang/internal/repository"
	"jizhang/internal/service"
	"jizhang/internal/tax"
	"jizhang/pkg/config"
	"jizhang/pkg/logger"
	"jizhang/pkg/postgres"

	"go.uber.org/zap"
)

// @title Jizhang Bookkeeping API
// @version 1.0
// @description Small-business bookkeeping: transactions, reminders, recurring expenses and quarterly taxes.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting jizhang service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// Initialize repositories
	txManager := repository.NewTxManager(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	accountRepo := repository.NewAccountRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	recurringRepo := repository.NewRecurringExpenseRepository(db, appLogger)
	settingsRepo := repository.NewSettingsRepository(db, appLogger)

	// Initialize services
	calendar := tax.DefaultCalendar()
	txService := service.NewTransactionService(txRepo, accountRepo, txManager, appLogger)
	accountService := service.NewAccountService(accountRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	recurringService := service.NewRecurringExpenseService(recurringRepo, appLogger)
	settingsService := service.NewSettingsService(settingsRepo, appLogger)
	taxService := service.NewTaxService(txRepo, settingsRepo, calendar, appLogger)
	reminderService := service.NewReminderService(txRepo, recurringRepo, appLogger)

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Transactions:      handlers.NewTransactionHandler(txService, appLogger),
		Accounts:          handlers.NewAccountHandler(accountService, appLogger),
		Categories:        handlers.NewCategoryHandler(categoryService, appLogger),
		RecurringExpenses: handlers.NewRecurringExpenseHandler(recurringService, appLogger),
		Settings:          handlers.NewSettingsHandler(settingsService, appLogger),
		Tax:               handlers.NewTaxHandler(taxService, appLogger),
		Reminders:         handlers.NewReminderHandler(reminderService, appLogger),
	}, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
