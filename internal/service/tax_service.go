package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"jizhang/internal/models"
	"jizhang/internal/tax"
)

// TaxService renders the quarterly tax picture: aggregated figures for
// the quarter a date falls in, the full tax breakdown, and the filing
// deadline countdown for the current period.
type TaxService struct {
	transactions TransactionStore
	settings     SettingsStore
	calendar     *tax.Calendar
	logger       *zap.Logger
}

func NewTaxService(transactions TransactionStore, settings SettingsStore, calendar *tax.Calendar, logger *zap.Logger) *TaxService {
	return &TaxService{
		transactions: transactions,
		settings:     settings,
		calendar:     calendar,
		logger:       logger,
	}
}

// QuarterlyReport is the full quarterly tax view for the dashboard.
type QuarterlyReport struct {
	Quarter     tax.Quarter
	Totals      tax.QuarterTotals
	Result      tax.QuarterlyTaxResult
	Deadline    time.Time
	FilingItems []string
	Settings    models.TaxSettings
}

func taxSettingsInput(s *models.TaxSettings) tax.Settings {
	return tax.Settings{
		VATRate:               s.VATRate,
		VATThresholdQuarterly: s.VATThresholdQuarterly,
		AdditionalTaxRate:     s.AdditionalTaxRate,
		IncomeTaxEnabled:      s.IncomeTaxEnabled,
		TaxpayerType:          tax.TaxpayerType(s.TaxpayerType),
	}
}

// Quarterly computes the report for the quarter containing date.
func (s *TaxService) Quarterly(ctx context.Context, date time.Time) (*QuarterlyReport, error) {
	settings, err := s.TaxSettings(ctx)
	if err != nil {
		return nil, err
	}

	quarter := tax.QuarterInfo(date)
	transactions, err := s.transactions.ListByDateRange(ctx, quarter.Start, quarter.End)
	if err != nil {
		return nil, fmt.Errorf("list quarter transactions: %w", err)
	}

	totals := tax.AggregateQuarter(transactions, quarter.Start, quarter.End)
	result, err := tax.QuarterlyTax(totals.Income, totals.InvoicedIncome, totals.Expense, taxSettingsInput(settings))
	if err != nil {
		return nil, fmt.Errorf("compute quarterly tax: %w", err)
	}

	deadline, err := s.calendar.TaxDeadline(date.Year(), date.Month())
	if err != nil {
		// A failed deadline lookup means the holiday table is broken.
		s.logger.Error("Tax deadline computation failed", zap.Error(err))
		return nil, err
	}

	return &QuarterlyReport{
		Quarter:     quarter,
		Totals:      totals,
		Result:      result,
		Deadline:    deadline,
		FilingItems: tax.CurrentFilingItems(date),
		Settings:    *settings,
	}, nil
}

// TaxSettings returns the stored settings, falling back to the
// small-scale taxpayer defaults before anything was saved.
func (s *TaxService) TaxSettings(ctx context.Context) (*models.TaxSettings, error) {
	settings, err := s.settings.GetTaxSettings(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultTaxSettings(), nil
		}
		return nil, fmt.Errorf("get tax settings: %w", err)
	}
	return settings, nil
}
