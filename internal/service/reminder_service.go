package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jizhang/internal/reminder"
)

// ReminderService assembles the dashboard reminder lists from the
// current transaction and recurring-expense snapshots.
type ReminderService struct {
	transactions TransactionStore
	recurring    RecurringExpenseStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewReminderService(transactions TransactionStore, recurring RecurringExpenseStore, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		transactions: transactions,
		recurring:    recurring,
		logger:       logger,
		now:          time.Now,
	}
}

// Reminders holds both reminder families for one computation.
type Reminders struct {
	Transactions []reminder.Item
	Recurring    []reminder.RecurringItem
}

func (s *ReminderService) Compute(ctx context.Context) (*Reminders, error) {
	transactions, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	expenses, err := s.recurring.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recurring expenses: %w", err)
	}

	now := s.now()
	result := &Reminders{
		Transactions: reminder.ComputeReminders(transactions, now),
		Recurring:    reminder.ComputeRecurringReminders(expenses, now),
	}

	s.logger.Debug("Reminders computed",
		zap.Int("transaction_items", len(result.Transactions)),
		zap.Int("recurring_items", len(result.Recurring)),
	)
	return result, nil
}
