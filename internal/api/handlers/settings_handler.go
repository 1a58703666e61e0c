package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jizhang/internal/dto"
	"jizhang/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetTaxSettings godoc
// @Summary Get tax settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.TaxSettingsResponse
// @Router /settings/tax [get]
func (h *SettingsHandler) GetTaxSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.GetTaxSettings(c.Context())
	if err != nil {
		h.logger.Error("Get tax settings failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromTaxSettings(settings))
}

// SaveTaxSettings godoc
// @Summary Save tax settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body dto.TaxSettingsRequest true "Tax settings"
// @Success 200 {object} dto.TaxSettingsResponse
// @Failure 400 {object} map[string]string
// @Router /settings/tax [put]
func (h *SettingsHandler) SaveTaxSettings(c *fiber.Ctx) error {
	var req dto.TaxSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	saved, err := h.settingsService.SaveTaxSettings(c.Context(), req.ToModel())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromTaxSettings(saved))
}

// GetCompanyInfo godoc
// @Summary Get company info
// @Tags settings
// @Produce json
// @Success 200 {object} dto.CompanyInfoResponse
// @Router /settings/company [get]
func (h *SettingsHandler) GetCompanyInfo(c *fiber.Ctx) error {
	info, err := h.settingsService.GetCompanyInfo(c.Context())
	if err != nil {
		h.logger.Error("Get company info failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromCompanyInfo(info))
}

// SaveCompanyInfo godoc
// @Summary Save company info
// @Tags settings
// @Accept json
// @Produce json
// @Param request body dto.CompanyInfoRequest true "Company info"
// @Success 200 {object} dto.CompanyInfoResponse
// @Failure 400 {object} map[string]string
// @Router /settings/company [put]
func (h *SettingsHandler) SaveCompanyInfo(c *fiber.Ctx) error {
	var req dto.CompanyInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	saved, err := h.settingsService.SaveCompanyInfo(c.Context(), req.ToModel())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromCompanyInfo(saved))
}
