package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"jizhang/internal/models"
)

type AccountRequest struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	InitialBalance float64 `json:"initialBalance"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	Description    string  `json:"description"`
	IsDefault      bool    `json:"isDefault"`
}

func (r *AccountRequest) ToModel() *models.Account {
	return &models.Account{
		Name:           r.Name,
		Type:           r.Type,
		InitialBalance: decimal.NewFromFloat(r.InitialBalance),
		Icon:           r.Icon,
		Color:          r.Color,
		Description:    r.Description,
		IsDefault:      r.IsDefault,
	}
}

type AccountResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Balance        float64 `json:"balance"`
	InitialBalance float64 `json:"initialBalance"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	Description    string  `json:"description"`
	IsDefault      bool    `json:"isDefault"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func FromAccount(acc *models.Account) AccountResponse {
	return AccountResponse{
		ID:             acc.ID.String(),
		Name:           acc.Name,
		Type:           acc.Type,
		Balance:        acc.Balance.InexactFloat64(),
		InitialBalance: acc.InitialBalance.InexactFloat64(),
		Icon:           acc.Icon,
		Color:          acc.Color,
		Description:    acc.Description,
		IsDefault:      acc.IsDefault,
		CreatedAt:      acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      acc.UpdatedAt.Format(time.RFC3339),
	}
}

func FromAccounts(accounts []models.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, FromAccount(&accounts[i]))
	}
	return out
}
