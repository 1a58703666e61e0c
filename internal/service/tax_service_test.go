package service

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jizhang/internal/models"
	"jizhang/internal/tax"
)

func newTestTaxService(txStore *fakeTransactionStore, settings *fakeSettingsStore) *TaxService {
	return NewTaxService(txStore, settings, tax.DefaultCalendar(), zap.NewNop())
}

func quarterIncome(date time.Time, amount int64, invoiced bool) *models.Transaction {
	return &models.Transaction{
		ID:            uuid.New(),
		Type:          models.TransactionIncome,
		Amount:        decimal.NewFromInt(amount),
		Date:          date,
		AccountID:     uuid.New(),
		InvoiceNeeded: true,
		InvoiceIssued: invoiced,
	}
}

func TestQuarterly_AggregatesAndComputes(t *testing.T) {
	ctx := context.Background()
	txStore := newFakeTransactionStore()
	settings := &fakeSettingsStore{}
	svc := newTestTaxService(txStore, settings)

	may := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, txStore.Create(ctx, quarterIncome(may, 250000, true)))
	assert.NoError(t, txStore.Create(ctx, quarterIncome(may.AddDate(0, 1, 0), 150000, false)))

	expense := quarterIncome(may, 100000, false)
	expense.Type = models.TransactionExpense
	assert.NoError(t, txStore.Create(ctx, expense))

	// outside Q2
	assert.NoError(t, txStore.Create(ctx, quarterIncome(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), 999999, true)))

	report, err := svc.Quarterly(ctx, may)
	assert.NoError(t, err)

	assert.Equal(t, 2, report.Quarter.Number)
	assert.True(t, report.Totals.Income.Equal(decimal.NewFromInt(400000)))
	assert.True(t, report.Totals.InvoicedIncome.Equal(decimal.NewFromInt(250000)))
	assert.True(t, report.Totals.Expense.Equal(decimal.NewFromInt(100000)))

	// 400000 > 免征额，增值税按含税价倒算
	assert.False(t, report.Result.VATExempted)
	assert.True(t, report.Result.VAT.GreaterThan(decimal.Zero))

	// May is not a quarterly filing month
	assert.Equal(t, tax.MonthlyFilingItems, report.FilingItems)
	assert.Equal(t, "2026-05-15", report.Deadline.Format("2006-01-02"))
}

func TestQuarterly_UsesDefaultSettingsWhenUnset(t *testing.T) {
	ctx := context.Background()
	txStore := newFakeTransactionStore()
	svc := newTestTaxService(txStore, &fakeSettingsStore{})

	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, txStore.Create(ctx, quarterIncome(date, 100000, true)))

	report, err := svc.Quarterly(ctx, date)
	assert.NoError(t, err)

	// defaults: small-scale taxpayer with a 300k quarterly exemption
	assert.Equal(t, "small", report.Settings.TaxpayerType)
	assert.True(t, report.Result.VATExempted)
}

func TestQuarterly_UsesStoredSettings(t *testing.T) {
	ctx := context.Background()
	txStore := newFakeTransactionStore()
	settings := &fakeSettingsStore{}
	stored := models.DefaultTaxSettings()
	stored.TaxpayerType = "general"
	assert.NoError(t, settings.SaveTaxSettings(ctx, stored))

	svc := newTestTaxService(txStore, settings)

	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, txStore.Create(ctx, quarterIncome(date, 100000, true)))

	report, err := svc.Quarterly(ctx, date)
	assert.NoError(t, err)
	assert.False(t, report.Result.VATExempted)
}
