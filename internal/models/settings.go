package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxSettings is a singleton record; defaults match a small-scale
// taxpayer (3% VAT, 300k quarterly exemption, 12% surtax).
type TaxSettings struct {
	ID                    uuid.UUID       `db:"id"`
	VATRate               decimal.Decimal `db:"vat_rate"`
	VATThresholdQuarterly decimal.Decimal `db:"vat_threshold_quarterly"`
	AdditionalTaxRate     decimal.Decimal `db:"additional_tax_rate"`
	IncomeTaxEnabled      bool            `db:"income_tax_enabled"`
	Province              string          `db:"province"`
	City                  string          `db:"city"`
	TaxpayerType          string          `db:"taxpayer_type"` // small | general
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

// DefaultTaxSettings are the values used before anything was saved:
// small-scale taxpayer, 3% VAT with a 300k quarterly exemption, 12%
// surtax, corporate income tax enabled.
func DefaultTaxSettings() *TaxSettings {
	return &TaxSettings{
		VATRate:               decimal.NewFromFloat(0.03),
		VATThresholdQuarterly: decimal.NewFromInt(300000),
		AdditionalTaxRate:     decimal.NewFromFloat(0.12),
		IncomeTaxEnabled:      true,
		Province:              "河南",
		TaxpayerType:          "small",
	}
}

type CompanyInfo struct {
	ID          uuid.UUID `db:"id"`
	CompanyName string    `db:"company_name"`
	TaxNumber   string    `db:"tax_number"`
	Address     string    `db:"address"`
	Phone       string    `db:"phone"`
	BankName    string    `db:"bank_name"`
	BankAccount string    `db:"bank_account"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
