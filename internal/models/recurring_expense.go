package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringExpense is a template for a fixed-amount expense charged on a
// fixed day each month. At most one of EndDate/DurationMonths is set;
// with neither the expense is open-ended ("长期").
type RecurringExpense struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Amount         decimal.Decimal `db:"amount"`
	DayOfMonth     int             `db:"day_of_month"` // 1-31
	CategoryID     *uuid.UUID      `db:"category_id"`
	AccountID      *uuid.UUID      `db:"account_id"`
	Note           string          `db:"note"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        *time.Time      `db:"end_date"`
	DurationMonths *int            `db:"duration_months"`
	Enabled        bool            `db:"enabled"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
