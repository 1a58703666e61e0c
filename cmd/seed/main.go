package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jizhang/internal/models"
	"jizhang/internal/repository"
	"jizhang/internal/service"
	"jizhang/pkg/config"
	"jizhang/pkg/logger"
	"jizhang/pkg/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	txManager := repository.NewTxManager(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	accountRepo := repository.NewAccountRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	recurringRepo := repository.NewRecurringExpenseRepository(db, appLogger)
	settingsRepo := repository.NewSettingsRepository(db, appLogger)

	txService := service.NewTransactionService(txRepo, accountRepo, txManager, appLogger)
	accountService := service.NewAccountService(accountRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	recurringService := service.NewRecurringExpenseService(recurringRepo, appLogger)
	settingsService := service.NewSettingsService(settingsRepo, appLogger)

	appLogger.Info("Starting database seeding...")

	existing, err := accountService.List(ctx)
	if err != nil {
		appLogger.Fatal("Failed to check existing data", zap.Error(err))
	}
	if len(existing) > 0 {
		appLogger.Info("Database already seeded, nothing to do")
		return
	}

	accounts, err := seedAccounts(ctx, accountService)
	if err != nil {
		appLogger.Fatal("Failed to seed accounts", zap.Error(err))
	}
	categories, err := seedCategories(ctx, categoryService)
	if err != nil {
		appLogger.Fatal("Failed to seed categories", zap.Error(err))
	}
	if err := seedTransactions(ctx, txService, accounts, categories); err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}
	if err := seedRecurringExpenses(ctx, recurringService, accounts, categories); err != nil {
		appLogger.Fatal("Failed to seed recurring expenses", zap.Error(err))
	}
	if err := seedSettings(ctx, settingsService, cfg); err != nil {
		appLogger.Fatal("Failed to seed settings", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

func seedAccounts(ctx context.Context, svc *service.AccountService) (map[string]uuid.UUID, error) {
	accounts := []models.Account{
		{Name: "对公账户", Type: "bank", InitialBalance: decimal.NewFromInt(50000), Icon: "bank", Color: "#1677ff", IsDefault: true},
		{Name: "个人卡", Type: "bank", InitialBalance: decimal.NewFromInt(20000), Icon: "card", Color: "#52c41a"},
		{Name: "现金", Type: "cash", InitialBalance: decimal.NewFromInt(3000), Icon: "wallet", Color: "#faad14"},
	}

	ids := make(map[string]uuid.UUID, len(accounts))
	for i := range accounts {
		created, err := svc.Create(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		ids[created.Name] = created.ID
	}
	return ids, nil
}

func seedCategories(ctx context.Context, svc *service.CategoryService) (map[string]uuid.UUID, error) {
	categories := []models.Category{
		{Name: "项目收入", Type: models.TransactionIncome, Icon: "money", Color: "#52c41a", Sort: 1},
		{Name: "咨询服务", Type: models.TransactionIncome, Icon: "service", Color: "#13c2c2", Sort: 2},
		{Name: "房租", Type: models.TransactionExpense, Icon: "home", Color: "#fa541c", Sort: 1},
		{Name: "工资", Type: models.TransactionExpense, Icon: "team", Color: "#722ed1", Sort: 2},
		{Name: "办公用品", Type: models.TransactionExpense, Icon: "shop", Color: "#eb2f96", Sort: 3},
		{Name: "差旅", Type: models.TransactionExpense, Icon: "car", Color: "#2f54eb", Sort: 4},
	}

	ids := make(map[string]uuid.UUID, len(categories))
	for i := range categories {
		created, err := svc.Create(ctx, &categories[i])
		if err != nil {
			return nil, err
		}
		ids[created.Name] = created.ID
	}
	return ids, nil
}

func seedTransactions(ctx context.Context, svc *service.TransactionService, accounts, categories map[string]uuid.UUID) error {
	company := accounts["对公账户"]
	personal := accounts["个人卡"]
	now := time.Now()

	catID := func(name string) *uuid.UUID {
		id := categories[name]
		return &id
	}

	transactions := []models.Transaction{
		{
			Type:        models.TransactionIncome,
			Amount:      decimal.NewFromInt(80000),
			Date:        now.AddDate(0, 0, -20),
			CategoryID:  catID("项目收入"),
			AccountID:   company,
			Description: "一期项目款",
			Tags:        []string{"项目A"},
		},
		{
			Type:        models.TransactionIncome,
			Amount:      decimal.NewFromInt(12000),
			Date:        now.AddDate(0, 0, -10),
			CategoryID:  catID("咨询服务"),
			AccountID:   company,
			Description: "顾问费",
		},
		{
			Type:        models.TransactionExpense,
			Amount:      decimal.NewFromInt(6500),
			Date:        now.AddDate(0, 0, -15),
			CategoryID:  catID("房租"),
			AccountID:   company,
			Description: "本月房租",
		},
		{
			Type:        models.TransactionExpense,
			Amount:      decimal.NewFromInt(1200),
			Date:        now.AddDate(0, 0, -5),
			CategoryID:  catID("办公用品"),
			AccountID:   personal,
			Description: "打印机耗材",
		},
	}

	for i := range transactions {
		if _, err := svc.Create(ctx, &transactions[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedRecurringExpenses(ctx context.Context, svc *service.RecurringExpenseService, accounts, categories map[string]uuid.UUID) error {
	company := accounts["对公账户"]
	rentCat := categories["房租"]
	salaryCat := categories["工资"]
	start := time.Now().AddDate(0, -6, 0)

	expenses := []models.RecurringExpense{
		{
			Name:       "办公室房租",
			Amount:     decimal.NewFromInt(6500),
			DayOfMonth: 5,
			CategoryID: &rentCat,
			AccountID:  &company,
			StartDate:  start,
			Enabled:    true,
		},
		{
			Name:       "员工工资",
			Amount:     decimal.NewFromInt(28000),
			DayOfMonth: 10,
			CategoryID: &salaryCat,
			AccountID:  &company,
			StartDate:  start,
			Enabled:    true,
		},
	}

	for i := range expenses {
		if _, err := svc.Create(ctx, &expenses[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedSettings(ctx context.Context, svc *service.SettingsService, cfg *config.Config) error {
	settings := models.DefaultTaxSettings()
	settings.Province = cfg.Tax.DefaultProvince
	settings.City = cfg.Tax.DefaultCity
	if _, err := svc.SaveTaxSettings(ctx, settings); err != nil {
		return err
	}

	info := &models.CompanyInfo{
		CompanyName: "示例科技有限公司",
		TaxNumber:   "91410100MA0000000X",
		Address:     "郑州市金水区",
		Phone:       "0371-00000000",
	}
	_, err := svc.SaveCompanyInfo(ctx, info)
	return err
}
