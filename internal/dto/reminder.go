package dto

import (
	"jizhang/internal/reminder"
)

type ReminderItemResponse struct {
	TransactionID string              `json:"transactionId"`
	Type          string              `json:"type"`
	Label         string              `json:"label"`
	DaysPassed    int                 `json:"daysPassed"`
	Level         string              `json:"level"`
	Transaction   TransactionResponse `json:"transaction"`
}

type RecurringReminderResponse struct {
	RecurringExpenseID string                   `json:"recurringExpenseId"`
	Type               string                   `json:"type"`
	Label              string                   `json:"label"`
	DaysUntil          int                      `json:"daysUntil"`
	Level              string                   `json:"level"`
	RecurringExpense   RecurringExpenseResponse `json:"recurringExpense"`
}

type RemindersResponse struct {
	Transactions []ReminderItemResponse      `json:"transactions"`
	Recurring    []RecurringReminderResponse `json:"recurring"`
}

func FromReminders(items []reminder.Item, recurring []reminder.RecurringItem) RemindersResponse {
	resp := RemindersResponse{
		Transactions: make([]ReminderItemResponse, 0, len(items)),
		Recurring:    make([]RecurringReminderResponse, 0, len(recurring)),
	}
	for i := range items {
		item := &items[i]
		resp.Transactions = append(resp.Transactions, ReminderItemResponse{
			TransactionID: item.TransactionID.String(),
			Type:          string(item.Type),
			Label:         item.Label,
			DaysPassed:    item.DaysPassed,
			Level:         string(item.Level),
			Transaction:   FromTransaction(&item.Transaction),
		})
	}
	for i := range recurring {
		item := &recurring[i]
		resp.Recurring = append(resp.Recurring, RecurringReminderResponse{
			RecurringExpenseID: item.RecurringExpenseID.String(),
			Type:               string(item.Type),
			Label:              item.Label,
			DaysUntil:          item.DaysUntil,
			Level:              string(item.Level),
			RecurringExpense:   FromRecurringExpense(&item.RecurringExpense),
		})
	}
	return resp
}
