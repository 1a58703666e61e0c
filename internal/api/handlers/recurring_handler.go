package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jizhang/internal/dto"
	"jizhang/internal/service"
)

type RecurringExpenseHandler struct {
	recurringService *service.RecurringExpenseService
	logger           *zap.Logger
}

func NewRecurringExpenseHandler(recurringService *service.RecurringExpenseService, logger *zap.Logger) *RecurringExpenseHandler {
	return &RecurringExpenseHandler{
		recurringService: recurringService,
		logger:           logger,
	}
}

// List godoc
// @Summary List recurring expenses
// @Tags recurring-expenses
// @Produce json
// @Success 200 {array} dto.RecurringExpenseResponse
// @Router /recurring-expenses [get]
func (h *RecurringExpenseHandler) List(c *fiber.Ctx) error {
	items, err := h.recurringService.List(c.Context())
	if err != nil {
		h.logger.Error("List recurring expenses failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromRecurringExpenses(items))
}

// Create godoc
// @Summary Create a recurring expense
// @Tags recurring-expenses
// @Accept json
// @Produce json
// @Param request body dto.RecurringExpenseRequest true "Recurring expense"
// @Success 201 {object} dto.RecurringExpenseResponse
// @Failure 400 {object} map[string]string
// @Router /recurring-expenses [post]
func (h *RecurringExpenseHandler) Create(c *fiber.Ctx) error {
	var req dto.RecurringExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := req.ToModel()
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.recurringService.Create(c.Context(), item)
	if err != nil {
		h.logger.Error("Create recurring expense failed", zap.Error(err))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRecurringExpense(created))
}

// Update godoc
// @Summary Update a recurring expense
// @Tags recurring-expenses
// @Accept json
// @Produce json
// @Param id path string true "Recurring expense ID"
// @Param request body dto.RecurringExpenseRequest true "Recurring expense"
// @Success 200 {object} dto.RecurringExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /recurring-expenses/{id} [put]
func (h *RecurringExpenseHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid recurring expense id")
	}

	var req dto.RecurringExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := req.ToModel()
	if err != nil {
		return badRequest(c, err.Error())
	}
	item.ID = id

	updated, err := h.recurringService.Update(c.Context(), item)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromRecurringExpense(updated))
}

// Delete godoc
// @Summary Delete a recurring expense
// @Tags recurring-expenses
// @Param id path string true "Recurring expense ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /recurring-expenses/{id} [delete]
func (h *RecurringExpenseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid recurring expense id")
	}

	if err := h.recurringService.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Toggle godoc
// @Summary Toggle a recurring expense on or off
// @Tags recurring-expenses
// @Produce json
// @Param id path string true "Recurring expense ID"
// @Success 200 {object} dto.RecurringExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /recurring-expenses/{id}/toggle [post]
func (h *RecurringExpenseHandler) Toggle(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid recurring expense id")
	}

	item, err := h.recurringService.Toggle(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromRecurringExpense(item))
}
