package tax

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"jizhang/internal/models"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

type TaxpayerType string

const (
	TaxpayerSmall   TaxpayerType = "small"
	TaxpayerGeneral TaxpayerType = "general"
)

// Settings are the rate knobs used by the quarterly computation.
type Settings struct {
	VATRate               decimal.Decimal
	VATThresholdQuarterly decimal.Decimal
	AdditionalTaxRate     decimal.Decimal
	IncomeTaxEnabled      bool
	TaxpayerType          TaxpayerType
}

// Corporate income tax bands. The preferential banding only covers
// annual profit up to 3,000,000; above that the standard rate applies
// even for a claimed small enterprise.
var (
	corporateStandardRate = decimal.NewFromFloat(0.25)
	smallBandOneCap       = decimal.NewFromInt(1_000_000)
	smallBandTwoCap       = decimal.NewFromInt(3_000_000)
	smallBandOneRate      = decimal.NewFromFloat(0.05)
	smallBandTwoRate      = decimal.NewFromFloat(0.10)
)

// CorporateTax computes annual corporate income tax on profit.
func CorporateTax(profit decimal.Decimal, isSmallEnterprise bool) decimal.Decimal {
	if profit.Sign() <= 0 {
		return decimal.Zero
	}

	if isSmallEnterprise {
		if profit.LessThanOrEqual(smallBandOneCap) {
			return profit.Mul(smallBandOneRate).Round(2)
		}
		if profit.LessThanOrEqual(smallBandTwoCap) {
			bandOne := smallBandOneCap.Mul(smallBandOneRate)
			bandTwo := profit.Sub(smallBandOneCap).Mul(smallBandTwoRate)
			return bandOne.Add(bandTwo).Round(2)
		}
	}

	return profit.Mul(corporateStandardRate).Round(2)
}

// QuarterlyTaxResult is the full breakdown for one quarter. Every
// intermediate is kept because the dashboard itemizes them.
type QuarterlyTaxResult struct {
	Income            decimal.Decimal
	Expense           decimal.Decimal
	Profit            decimal.Decimal
	InvoicedIncome    decimal.Decimal
	UninvoicedIncome  decimal.Decimal
	VAT               decimal.Decimal
	VATFromInvoiced   decimal.Decimal
	VATFromUninvoiced decimal.Decimal
	AdditionalTax     decimal.Decimal
	CorporateTax      decimal.Decimal
	TotalTax          decimal.Decimal
	VATExempted       bool
}

// QuarterlyTax computes VAT, surtax and corporate income tax for one
// quarter. Income amounts are tax-inclusive; VAT is backed out as
// X / (1 + rate) * rate for the invoiced and uninvoiced splits.
func QuarterlyTax(income, invoicedIncome, expense decimal.Decimal, settings Settings) (QuarterlyTaxResult, error) {
	if income.Sign() < 0 || invoicedIncome.Sign() < 0 || expense.Sign() < 0 {
		return QuarterlyTaxResult{}, ErrNegativeAmount
	}

	profit := income.Sub(expense)
	uninvoiced := income.Sub(invoicedIncome)

	result := QuarterlyTaxResult{
		Income:           income,
		Expense:          expense,
		Profit:           profit,
		InvoicedIncome:   invoicedIncome,
		UninvoicedIncome: uninvoiced,
		VAT:              decimal.Zero,
		AdditionalTax:    decimal.Zero,
		CorporateTax:     decimal.Zero,
	}

	// 小规模纳税人季度收入低于免征额，免征增值税
	if settings.TaxpayerType == TaxpayerSmall && income.LessThanOrEqual(settings.VATThresholdQuarterly) {
		result.VATExempted = true
	} else {
		divisor := decimal.NewFromInt(1).Add(settings.VATRate)
		result.VATFromInvoiced = invoicedIncome.Div(divisor).Mul(settings.VATRate).Round(2)
		result.VATFromUninvoiced = uninvoiced.Div(divisor).Mul(settings.VATRate).Round(2)
		result.VAT = result.VATFromInvoiced.Add(result.VATFromUninvoiced)
	}

	result.AdditionalTax = result.VAT.Mul(settings.AdditionalTaxRate).Round(2)

	if settings.IncomeTaxEnabled && profit.Sign() > 0 {
		// 按年度利润口径计算，再折回季度
		annualProfit := profit.Mul(decimal.NewFromInt(4))
		isSmall := annualProfit.LessThanOrEqual(smallBandTwoCap)
		annualTax := CorporateTax(annualProfit, isSmall)
		result.CorporateTax = annualTax.Div(decimal.NewFromInt(4)).Round(2)
	}

	result.TotalTax = result.VAT.Add(result.AdditionalTax).Add(result.CorporateTax)
	return result, nil
}

// QuarterTotals are the aggregated figures feeding QuarterlyTax.
type QuarterTotals struct {
	Income         decimal.Decimal
	InvoicedIncome decimal.Decimal
	Expense        decimal.Decimal
}

// AggregateQuarter sums transactions dated within [start, end]. Income
// counts as invoiced once an invoice was issued at creation or confirmed
// later. Transfers move money between own accounts and are excluded.
func AggregateQuarter(transactions []models.Transaction, start, end time.Time) QuarterTotals {
	totals := QuarterTotals{
		Income:         decimal.Zero,
		InvoicedIncome: decimal.Zero,
		Expense:        decimal.Zero,
	}
	for _, tx := range transactions {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		switch tx.Type {
		case models.TransactionIncome:
			totals.Income = totals.Income.Add(tx.Amount)
			if tx.InvoiceIssued || tx.InvoiceCompleted {
				totals.InvoicedIncome = totals.InvoicedIncome.Add(tx.Amount)
			}
		case models.TransactionExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		}
	}
	return totals
}
