package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Account struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Type           string          `db:"type"` // bank | alipay | wechat | cash | credit
	Balance        decimal.Decimal `db:"balance"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	Icon           string          `db:"icon"`
	Color          string          `db:"color"`
	Description    string          `db:"description"`
	IsDefault      bool            `db:"is_default"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
