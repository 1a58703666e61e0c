package tax

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"jizhang/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "got %s, want %s", got.String(), want)
}

func smallSettings() Settings {
	return Settings{
		VATRate:               dec("0.03"),
		VATThresholdQuarterly: dec("300000"),
		AdditionalTaxRate:     dec("0.12"),
		IncomeTaxEnabled:      true,
		TaxpayerType:          TaxpayerSmall,
	}
}

func TestCorporateTax_SmallEnterpriseBands(t *testing.T) {
	tests := []struct {
		name   string
		profit string
		small  bool
		want   string
	}{
		{"first band", "900000", true, "45000"},
		{"first band cap", "1000000", true, "50000"},
		{"second band", "2000000", true, "150000"},
		{"second band cap", "3000000", true, "250000"},
		{"over banding cap", "5000000", true, "1250000"},
		{"standard rate", "2000000", false, "500000"},
		{"zero profit", "0", true, "0"},
		{"loss", "-100000", true, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CorporateTax(dec(tt.profit), tt.small)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestQuarterlyTax_VATExemption(t *testing.T) {
	// 小规模纳税人季度收入不超过免征额
	result, err := QuarterlyTax(dec("250000"), dec("250000"), dec("100000"), smallSettings())
	assert.NoError(t, err)

	assert.True(t, result.VATExempted)
	assertDecimal(t, "0", result.VAT)
	assertDecimal(t, "0", result.AdditionalTax)
	// 利润 150000，年化 600000，5% 档，折回季度
	assertDecimal(t, "7500", result.CorporateTax)
	assertDecimal(t, "7500", result.TotalTax)
}

func TestQuarterlyTax_ExemptionBoundary(t *testing.T) {
	atThreshold, err := QuarterlyTax(dec("300000"), dec("0"), dec("0"), smallSettings())
	assert.NoError(t, err)
	assert.True(t, atThreshold.VATExempted)

	overThreshold, err := QuarterlyTax(dec("300000.01"), dec("0"), dec("0"), smallSettings())
	assert.NoError(t, err)
	assert.False(t, overThreshold.VATExempted)
}

func TestQuarterlyTax_VATBackedOutOfInclusiveIncome(t *testing.T) {
	result, err := QuarterlyTax(dec("400000"), dec("400000"), dec("200000"), smallSettings())
	assert.NoError(t, err)

	assert.False(t, result.VATExempted)
	// 400000 / 1.03 * 0.03
	assertDecimal(t, "11650.49", result.VAT)
	assertDecimal(t, "11650.49", result.VATFromInvoiced)
	assertDecimal(t, "0", result.VATFromUninvoiced)
	assertDecimal(t, "1398.06", result.AdditionalTax)
	// 利润 200000，年化 800000，5% 档
	assertDecimal(t, "10000", result.CorporateTax)
	assertDecimal(t, "23048.55", result.TotalTax)
}

func TestQuarterlyTax_SplitsInvoicedAndUninvoiced(t *testing.T) {
	result, err := QuarterlyTax(dec("400000"), dec("150000"), dec("0"), smallSettings())
	assert.NoError(t, err)

	assertDecimal(t, "150000", result.InvoicedIncome)
	assertDecimal(t, "250000", result.UninvoicedIncome)
	assertDecimal(t, "4368.93", result.VATFromInvoiced)
	assertDecimal(t, "7281.55", result.VATFromUninvoiced)
	assertDecimal(t, "11650.48", result.VAT)
}

func TestQuarterlyTax_GeneralTaxpayerNeverExempt(t *testing.T) {
	settings := smallSettings()
	settings.TaxpayerType = TaxpayerGeneral

	result, err := QuarterlyTax(dec("100000"), dec("100000"), dec("0"), settings)
	assert.NoError(t, err)
	assert.False(t, result.VATExempted)
	assertDecimal(t, "2912.62", result.VAT)
}

func TestQuarterlyTax_IncomeTaxDisabled(t *testing.T) {
	settings := smallSettings()
	settings.IncomeTaxEnabled = false

	result, err := QuarterlyTax(dec("250000"), dec("0"), dec("100000"), settings)
	assert.NoError(t, err)
	assertDecimal(t, "0", result.CorporateTax)
	assertDecimal(t, "0", result.TotalTax)
}

func TestQuarterlyTax_NoCorporateTaxOnLoss(t *testing.T) {
	result, err := QuarterlyTax(dec("100000"), dec("0"), dec("150000"), smallSettings())
	assert.NoError(t, err)
	assertDecimal(t, "-50000", result.Profit)
	assertDecimal(t, "0", result.CorporateTax)
}

func TestQuarterlyTax_RejectsNegativeAmounts(t *testing.T) {
	_, err := QuarterlyTax(dec("-1"), dec("0"), dec("0"), smallSettings())
	assert.True(t, errors.Is(err, ErrNegativeAmount), "got %v", err)

	_, err = QuarterlyTax(dec("100"), dec("-1"), dec("0"), smallSettings())
	assert.True(t, errors.Is(err, ErrNegativeAmount), "got %v", err)

	_, err = QuarterlyTax(dec("100"), dec("0"), dec("-1"), smallSettings())
	assert.True(t, errors.Is(err, ErrNegativeAmount), "got %v", err)
}

func TestAggregateQuarter(t *testing.T) {
	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

	transactions := []models.Transaction{
		{Type: models.TransactionIncome, Amount: dec("100000"), Date: start, InvoiceIssued: true},
		{Type: models.TransactionIncome, Amount: dec("50000"), Date: start.AddDate(0, 1, 0), InvoiceCompleted: true},
		{Type: models.TransactionIncome, Amount: dec("30000"), Date: end},
		{Type: models.TransactionExpense, Amount: dec("40000"), Date: start.AddDate(0, 0, 10)},
		// 转账不计入
		{Type: models.TransactionTransfer, Amount: dec("99999"), Date: start},
		// 季度范围之外
		{Type: models.TransactionIncome, Amount: dec("77777"), Date: start.AddDate(0, 0, -1)},
		{Type: models.TransactionExpense, Amount: dec("88888"), Date: end.AddDate(0, 0, 1)},
	}

	totals := AggregateQuarter(transactions, start, end)
	assertDecimal(t, "180000", totals.Income)
	assertDecimal(t, "150000", totals.InvoicedIncome)
	assertDecimal(t, "40000", totals.Expense)
}
