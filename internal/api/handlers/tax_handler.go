package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jizhang/internal/dto"
	"jizhang/internal/service"
)

type TaxHandler struct {
	taxService *service.TaxService
	logger     *zap.Logger
	now        func() time.Time
}

func NewTaxHandler(taxService *service.TaxService, logger *zap.Logger) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
		logger:     logger,
		now:        time.Now,
	}
}

// Quarterly godoc
// @Summary Quarterly tax report
// @Description Aggregated quarter figures, tax breakdown, filing deadline and filing items for the quarter containing the given date (defaults to today).
// @Tags tax
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} dto.QuarterlyTaxResponse
// @Failure 400 {object} map[string]string
// @Router /tax/quarterly [get]
func (h *TaxHandler) Quarterly(c *fiber.Ctx) error {
	date := h.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	report, err := h.taxService.Quarterly(c.Context(), date)
	if err != nil {
		h.logger.Error("Quarterly tax report failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromQuarterlyReport(report))
}
