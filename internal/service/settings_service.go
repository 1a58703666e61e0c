package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"jizhang/internal/models"
)

type SettingsService struct {
	settings SettingsStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewSettingsService(settings SettingsStore, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *SettingsService) GetTaxSettings(ctx context.Context) (*models.TaxSettings, error) {
	settings, err := s.settings.GetTaxSettings(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultTaxSettings(), nil
		}
		return nil, fmt.Errorf("get tax settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) SaveTaxSettings(ctx context.Context, settings *models.TaxSettings) (*models.TaxSettings, error) {
	if settings.VATRate.Sign() < 0 || settings.AdditionalTaxRate.Sign() < 0 || settings.VATThresholdQuarterly.Sign() < 0 {
		return nil, fmt.Errorf("%w: tax rates must not be negative", ErrValidation)
	}
	if settings.TaxpayerType != "small" && settings.TaxpayerType != "general" {
		return nil, fmt.Errorf("%w: unknown taxpayer type %q", ErrValidation, settings.TaxpayerType)
	}

	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
		settings.CreatedAt = s.now()
	}
	settings.UpdatedAt = s.now()

	if err := s.settings.SaveTaxSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("save tax settings: %w", err)
	}
	s.logger.Info("Tax settings saved", zap.String("taxpayer_type", settings.TaxpayerType))
	return settings, nil
}

func (s *SettingsService) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	info, err := s.settings.GetCompanyInfo(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.CompanyInfo{}, nil
		}
		return nil, fmt.Errorf("get company info: %w", err)
	}
	return info, nil
}

func (s *SettingsService) SaveCompanyInfo(ctx context.Context, info *models.CompanyInfo) (*models.CompanyInfo, error) {
	if info.CompanyName == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrValidation)
	}

	if info.ID == uuid.Nil {
		info.ID = uuid.New()
		info.CreatedAt = s.now()
	}
	info.UpdatedAt = s.now()

	if err := s.settings.SaveCompanyInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("save company info: %w", err)
	}
	return info, nil
}
