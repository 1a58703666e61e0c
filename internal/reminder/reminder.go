package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"jizhang/internal/models"
)

type Type string

const (
	TypePaymentOverdue        Type = "payment_overdue"
	TypeInvoiceOverdue        Type = "invoice_overdue"
	TypeCompanyAccountOverdue Type = "company_account_overdue"
	TypeRecurringUpcoming     Type = "recurring_upcoming"
	TypeRecurringOverdue      Type = "recurring_overdue"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Escalation thresholds in whole days.
const (
	warningDays = 3
	dangerDays  = 7
)

// Labels is the user-facing text for each reminder type.
var Labels = map[Type]string{
	TypePaymentOverdue:        "到账未确认",
	TypeInvoiceOverdue:        "发票未开具",
	TypeCompanyAccountOverdue: "公户未到账",
	TypeRecurringUpcoming:     "固定开销即将到期",
	TypeRecurringOverdue:      "固定开销已到扣款日",
}

// Item ties a transaction to one overdue condition.
type Item struct {
	TransactionID uuid.UUID
	Type          Type
	Label         string
	DaysPassed    int
	Level         Level
	Transaction   models.Transaction
}

func daysSince(date, now time.Time) int {
	return int(now.Sub(date) / (24 * time.Hour))
}

func levelFor(days int) (Level, bool) {
	switch {
	case days >= dangerDays:
		return LevelDanger, true
	case days >= warningDays:
		return LevelWarning, true
	}
	return "", false
}

// ComputeReminders scans the transaction snapshot and emits overdue
// items. The three conditions are independent; one transaction can
// trigger any combination of them.
func ComputeReminders(transactions []models.Transaction, now time.Time) []Item {
	var items []Item

	add := func(tx models.Transaction, typ Type, days int) {
		level, ok := levelFor(days)
		if !ok {
			return
		}
		items = append(items, Item{
			TransactionID: tx.ID,
			Type:          typ,
			Label:         Labels[typ],
			DaysPassed:    days,
			Level:         level,
			Transaction:   tx,
		})
	}

	for _, tx := range transactions {
		days := daysSince(tx.Date, now)

		// 到账未确认超时
		if !tx.PaymentConfirmed {
			add(tx, TypePaymentOverdue, days)
		}

		// 发票未开具超时（非转账、需要开票、未完成）
		if tx.Type != models.TransactionTransfer && tx.InvoiceNeeded && !tx.InvoiceCompleted {
			add(tx, TypeInvoiceOverdue, days)
		}

		// 公户未到账超时（收入类型、无公户到账日期）
		if tx.Type == models.TransactionIncome &&
			tx.CompanyAccountDate == nil &&
			(tx.PaymentAccountType == nil || *tx.PaymentAccountType == models.PaymentAccountPersonal) {
			add(tx, TypeCompanyAccountOverdue, days)
		}
	}

	// Most overdue first.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysPassed > items[j].DaysPassed
	})
	return items
}

// RecurringItem flags a recurring expense as upcoming or overdue for the
// current month.
type RecurringItem struct {
	RecurringExpenseID uuid.UUID
	Type               Type
	Label              string
	DaysUntil          int // negative once the charge day has passed
	Level              Level
	RecurringExpense   models.RecurringExpense
}

// ComputeRecurringReminders classifies each enabled recurring expense
// against the current month: upcoming within 3 days before the charge
// day, overdue up to 7 days after. This compares day-of-month numbers
// only; a charge day beyond the month's length never matches.
func ComputeRecurringReminders(items []models.RecurringExpense, now time.Time) []RecurringItem {
	var reminders []RecurringItem
	today := now.Day()

	for _, item := range items {
		if !item.Enabled {
			continue
		}
		if item.EndDate != nil && item.EndDate.Before(now) {
			continue
		}
		if item.DurationMonths != nil {
			if item.StartDate.AddDate(0, *item.DurationMonths, 0).Before(now) {
				continue
			}
		}
		if item.StartDate.After(now) {
			continue
		}

		diff := item.DayOfMonth - today
		label := fmt.Sprintf("%s - %s-%02d", item.Name, now.Format("2006-01"), item.DayOfMonth)

		switch {
		case diff > 0 && diff <= 3:
			level := LevelInfo
			if diff <= 1 {
				level = LevelWarning
			}
			reminders = append(reminders, RecurringItem{
				RecurringExpenseID: item.ID,
				Type:               TypeRecurringUpcoming,
				Label:              label,
				DaysUntil:          diff,
				Level:              level,
				RecurringExpense:   item,
			})
		case diff <= 0 && diff >= -7:
			level := LevelWarning
			if diff <= -3 {
				level = LevelDanger
			}
			reminders = append(reminders, RecurringItem{
				RecurringExpenseID: item.ID,
				Type:               TypeRecurringOverdue,
				Label:              label,
				DaysUntil:          diff,
				Level:              level,
				RecurringExpense:   item,
			})
		}
	}

	// Most overdue first, then soonest upcoming.
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DaysUntil < reminders[j].DaysUntil
	})
	return reminders
}
