package dto

import (
	"jizhang/internal/service"
)

type QuarterlyTaxResponse struct {
	Quarter     int      `json:"quarter"`
	QuarterName string   `json:"quarterName"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Deadline    string   `json:"deadline"`
	FilingItems []string `json:"filingItems"`

	Income            float64 `json:"income"`
	Expense           float64 `json:"expense"`
	Profit            float64 `json:"profit"`
	InvoicedIncome    float64 `json:"invoicedIncome"`
	UninvoicedIncome  float64 `json:"uninvoicedIncome"`
	VAT               float64 `json:"vat"`
	VATFromInvoiced   float64 `json:"vatFromInvoiced"`
	VATFromUninvoiced float64 `json:"vatFromUninvoiced"`
	AdditionalTax     float64 `json:"additionalTax"`
	CorporateTax      float64 `json:"corporateTax"`
	TotalTax          float64 `json:"totalTax"`
	VATExempted       bool    `json:"vatExempted"`
}

func FromQuarterlyReport(report *service.QuarterlyReport) QuarterlyTaxResponse {
	return QuarterlyTaxResponse{
		Quarter:           report.Quarter.Number,
		QuarterName:       report.Quarter.Name,
		StartDate:         report.Quarter.Start.Format(dateLayout),
		EndDate:           report.Quarter.End.Format(dateLayout),
		Deadline:          report.Deadline.Format(dateLayout),
		FilingItems:       report.FilingItems,
		Income:            report.Result.Income.InexactFloat64(),
		Expense:           report.Result.Expense.InexactFloat64(),
		Profit:            report.Result.Profit.InexactFloat64(),
		InvoicedIncome:    report.Result.InvoicedIncome.InexactFloat64(),
		UninvoicedIncome:  report.Result.UninvoicedIncome.InexactFloat64(),
		VAT:               report.Result.VAT.InexactFloat64(),
		VATFromInvoiced:   report.Result.VATFromInvoiced.InexactFloat64(),
		VATFromUninvoiced: report.Result.VATFromUninvoiced.InexactFloat64(),
		AdditionalTax:     report.Result.AdditionalTax.InexactFloat64(),
		CorporateTax:      report.Result.CorporateTax.InexactFloat64(),
		TotalTax:          report.Result.TotalTax.InexactFloat64(),
		VATExempted:       report.Result.VATExempted,
	}
}
