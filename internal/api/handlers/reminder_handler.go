package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jizhang/internal/dto"
	"jizhang/internal/service"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
	logger          *zap.Logger
}

func NewReminderHandler(reminderService *service.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// List godoc
// @Summary List current reminders
// @Description Overdue confirmation reminders for transactions plus upcoming and overdue recurring-expense reminders.
// @Tags reminders
// @Produce json
// @Success 200 {object} dto.RemindersResponse
// @Router /reminders [get]
func (h *ReminderHandler) List(c *fiber.Ctx) error {
	reminders, err := h.reminderService.Compute(c.Context())
	if err != nil {
		h.logger.Error("Compute reminders failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromReminders(reminders.Transactions, reminders.Recurring))
}
