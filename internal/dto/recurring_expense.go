package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"jizhang/internal/models"
)

type RecurringExpenseRequest struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	DayOfMonth     int     `json:"dayOfMonth"`
	CategoryID     *string `json:"categoryId"`
	AccountID      *string `json:"accountId"`
	Note           string  `json:"note"`
	StartDate      string  `json:"startDate"`
	EndDate        *string `json:"endDate"`
	DurationMonths *int    `json:"durationMonths"`
	Enabled        bool    `json:"enabled"`
}

func (r *RecurringExpenseRequest) ToModel() (*models.RecurringExpense, error) {
	categoryID, err := parseOptionalUUID(r.CategoryID, "categoryId")
	if err != nil {
		return nil, err
	}
	accountID, err := parseOptionalUUID(r.AccountID, "accountId")
	if err != nil {
		return nil, err
	}
	startDate, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	endDate, err := parseOptionalDate(r.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	return &models.RecurringExpense{
		Name:           r.Name,
		Amount:         decimal.NewFromFloat(r.Amount),
		DayOfMonth:     r.DayOfMonth,
		CategoryID:     categoryID,
		AccountID:      accountID,
		Note:           r.Note,
		StartDate:      startDate,
		EndDate:        endDate,
		DurationMonths: r.DurationMonths,
		Enabled:        r.Enabled,
	}, nil
}

type RecurringExpenseResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	DayOfMonth     int     `json:"dayOfMonth"`
	CategoryID     *string `json:"categoryId"`
	AccountID      *string `json:"accountId"`
	Note           string  `json:"note"`
	StartDate      string  `json:"startDate"`
	EndDate        *string `json:"endDate"`
	DurationMonths *int    `json:"durationMonths"`
	Enabled        bool    `json:"enabled"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func FromRecurringExpense(item *models.RecurringExpense) RecurringExpenseResponse {
	return RecurringExpenseResponse{
		ID:             item.ID.String(),
		Name:           item.Name,
		Amount:         item.Amount.InexactFloat64(),
		DayOfMonth:     item.DayOfMonth,
		CategoryID:     uuidString(item.CategoryID),
		AccountID:      uuidString(item.AccountID),
		Note:           item.Note,
		StartDate:      item.StartDate.Format(dateLayout),
		EndDate:        formatDate(item.EndDate),
		DurationMonths: item.DurationMonths,
		Enabled:        item.Enabled,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

func FromRecurringExpenses(items []models.RecurringExpense) []RecurringExpenseResponse {
	out := make([]RecurringExpenseResponse, 0, len(items))
	for i := range items {
		out = append(out, FromRecurringExpense(&items[i]))
	}
	return out
}
