package repository

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"jizhang/internal/models"
)

// SettingsRepository stores the two singleton records: tax settings and
// company info. Get returns pgx.ErrNoRows until the first Save.
type SettingsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSettingsRepository(db *pgxpool.Pool, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

var taxSettingsColumns = []string{
	"id", "vat_rate", "vat_threshold_quarterly", "additional_tax_rate",
	"income_tax_enabled", "province", "city", "taxpayer_type", "created_at", "updated_at",
}

func (r *SettingsRepository) GetTaxSettings(ctx context.Context) (*models.TaxSettings, error) {
	query := squirrel.Select(taxSettingsColumns...).
		From("tax_settings").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var s models.TaxSettings
	err = queryFrom(ctx, r.db).QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.VATRate, &s.VATThresholdQuarterly, &s.AdditionalTaxRate,
		&s.IncomeTaxEnabled, &s.Province, &s.City, &s.TaxpayerType, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) SaveTaxSettings(ctx context.Context, s *models.TaxSettings) error {
	existing, err := r.GetTaxSettings(ctx)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if existing == nil {
		query := squirrel.Insert("tax_settings").
			Columns(taxSettingsColumns...).
			Values(
				s.ID, s.VATRate, s.VATThresholdQuarterly, s.AdditionalTaxRate,
				s.IncomeTaxEnabled, s.Province, s.City, s.TaxpayerType, s.CreatedAt, s.UpdatedAt,
			).
			PlaceholderFormat(squirrel.Dollar)
		sql, args, err := query.ToSql()
		if err != nil {
			return err
		}
		_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
		return err
	}

	s.ID = existing.ID
	query := squirrel.Update("tax_settings").
		Set("vat_rate", s.VATRate).
		Set("vat_threshold_quarterly", s.VATThresholdQuarterly).
		Set("additional_tax_rate", s.AdditionalTaxRate).
		Set("income_tax_enabled", s.IncomeTaxEnabled).
		Set("province", s.Province).
		Set("city", s.City).
		Set("taxpayer_type", s.TaxpayerType).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": existing.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	return err
}

var companyInfoColumns = []string{
	"id", "company_name", "tax_number", "address", "phone",
	"bank_name", "bank_account", "created_at", "updated_at",
}

func (r *SettingsRepository) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	query := squirrel.Select(companyInfoColumns...).
		From("company_info").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c models.CompanyInfo
	err = queryFrom(ctx, r.db).QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.CompanyName, &c.TaxNumber, &c.Address, &c.Phone,
		&c.BankName, &c.BankAccount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SettingsRepository) SaveCompanyInfo(ctx context.Context, c *models.CompanyInfo) error {
	existing, err := r.GetCompanyInfo(ctx)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if existing == nil {
		query := squirrel.Insert("company_info").
			Columns(companyInfoColumns...).
			Values(
				c.ID, c.CompanyName, c.TaxNumber, c.Address, c.Phone,
				c.BankName, c.BankAccount, c.CreatedAt, c.UpdatedAt,
			).
			PlaceholderFormat(squirrel.Dollar)
		sql, args, err := query.ToSql()
		if err != nil {
			return err
		}
		_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
		return err
	}

	c.ID = existing.ID
	query := squirrel.Update("company_info").
		Set("company_name", c.CompanyName).
		Set("tax_number", c.TaxNumber).
		Set("address", c.Address).
		Set("phone", c.Phone).
		Set("bank_name", c.BankName).
		Set("bank_account", c.BankAccount).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": existing.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	return err
}
