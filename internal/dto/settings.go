package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"jizhang/internal/models"
)

type TaxSettingsRequest struct {
	VATRate               float64 `json:"vatRate"`
	VATThresholdQuarterly float64 `json:"vatThresholdQuarterly"`
	AdditionalTaxRate     float64 `json:"additionalTaxRate"`
	IncomeTaxEnabled      bool    `json:"incomeTaxEnabled"`
	Province              string  `json:"province"`
	City                  string  `json:"city"`
	TaxpayerType          string  `json:"taxpayerType"`
}

func (r *TaxSettingsRequest) ToModel() *models.TaxSettings {
	return &models.TaxSettings{
		VATRate:               decimal.NewFromFloat(r.VATRate),
		VATThresholdQuarterly: decimal.NewFromFloat(r.VATThresholdQuarterly),
		AdditionalTaxRate:     decimal.NewFromFloat(r.AdditionalTaxRate),
		IncomeTaxEnabled:      r.IncomeTaxEnabled,
		Province:              r.Province,
		City:                  r.City,
		TaxpayerType:          r.TaxpayerType,
	}
}

type TaxSettingsResponse struct {
	ID                    string  `json:"id"`
	VATRate               float64 `json:"vatRate"`
	VATThresholdQuarterly float64 `json:"vatThresholdQuarterly"`
	AdditionalTaxRate     float64 `json:"additionalTaxRate"`
	IncomeTaxEnabled      bool    `json:"incomeTaxEnabled"`
	Province              string  `json:"province"`
	City                  string  `json:"city"`
	TaxpayerType          string  `json:"taxpayerType"`
}

func FromTaxSettings(s *models.TaxSettings) TaxSettingsResponse {
	return TaxSettingsResponse{
		ID:                    s.ID.String(),
		VATRate:               s.VATRate.InexactFloat64(),
		VATThresholdQuarterly: s.VATThresholdQuarterly.InexactFloat64(),
		AdditionalTaxRate:     s.AdditionalTaxRate.InexactFloat64(),
		IncomeTaxEnabled:      s.IncomeTaxEnabled,
		Province:              s.Province,
		City:                  s.City,
		TaxpayerType:          s.TaxpayerType,
	}
}

type CompanyInfoRequest struct {
	CompanyName string `json:"companyName"`
	TaxNumber   string `json:"taxNumber"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
}

func (r *CompanyInfoRequest) ToModel() *models.CompanyInfo {
	return &models.CompanyInfo{
		CompanyName: r.CompanyName,
		TaxNumber:   r.TaxNumber,
		Address:     r.Address,
		Phone:       r.Phone,
		BankName:    r.BankName,
		BankAccount: r.BankAccount,
	}
}

type CompanyInfoResponse struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	TaxNumber   string `json:"taxNumber"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
	UpdatedAt   string `json:"updatedAt"`
}

func FromCompanyInfo(c *models.CompanyInfo) CompanyInfoResponse {
	return CompanyInfoResponse{
		ID:          c.ID.String(),
		CompanyName: c.CompanyName,
		TaxNumber:   c.TaxNumber,
		Address:     c.Address,
		Phone:       c.Phone,
		BankName:    c.BankName,
		BankAccount: c.BankAccount,
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}
