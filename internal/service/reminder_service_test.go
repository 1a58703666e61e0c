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
	"jizhang/internal/reminder"
)

func TestComputeRemindersCombinesBothFamilies(t *testing.T) {
	ctx := context.Background()
	txStore := newFakeTransactionStore()
	recurringStore := newFakeRecurringStore()

	svc := NewReminderService(txStore, recurringStore, zap.NewNop())
	svc.now = func() time.Time { return serviceNow }

	// unconfirmed expense ten days old
	assert.NoError(t, txStore.Create(ctx, &models.Transaction{
		ID:        uuid.New(),
		Type:      models.TransactionExpense,
		Amount:    decimal.NewFromInt(500),
		Date:      serviceNow.AddDate(0, 0, -10),
		AccountID: uuid.New(),
	}))

	// recurring expense due today
	assert.NoError(t, recurringStore.Create(ctx, &models.RecurringExpense{
		ID:         uuid.New(),
		Name:       "房租",
		Amount:     decimal.NewFromInt(6500),
		DayOfMonth: serviceNow.Day(),
		StartDate:  serviceNow.AddDate(0, -3, 0),
		Enabled:    true,
	}))

	result, err := svc.Compute(ctx)
	assert.NoError(t, err)

	assert.Equal(t, 1, len(result.Transactions))
	assert.Equal(t, reminder.TypePaymentOverdue, result.Transactions[0].Type)
	assert.Equal(t, reminder.LevelDanger, result.Transactions[0].Level)

	assert.Equal(t, 1, len(result.Recurring))
	assert.Equal(t, reminder.TypeRecurringOverdue, result.Recurring[0].Type)
	assert.Equal(t, 0, result.Recurring[0].DaysUntil)
}

func TestComputeRemindersEmptySnapshot(t *testing.T) {
	svc := NewReminderService(newFakeTransactionStore(), newFakeRecurringStore(), zap.NewNop())
	svc.now = func() time.Time { return serviceNow }

	result, err := svc.Compute(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, len(result.Transactions))
	assert.Equal(t, 0, len(result.Recurring))
}
