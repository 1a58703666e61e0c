package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jizhang/internal/dto"
	"jizhang/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
	logger         *zap.Logger
}

func NewAccountHandler(accountService *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// List godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accountService.List(c.Context())
	if err != nil {
		h.logger.Error("List accounts failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromAccounts(accounts))
}

// Get godoc
// @Summary Get a single account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid account id")
	}

	acc, err := h.accountService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromAccount(acc))
}

// Create godoc
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body dto.AccountRequest true "Account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string
// @Router /accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var req dto.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := h.accountService.Create(c.Context(), req.ToModel())
	if err != nil {
		h.logger.Error("Create account failed", zap.Error(err))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromAccount(created))
}

// Update godoc
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.AccountRequest true "Account"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid account id")
	}

	var req dto.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	acc := req.ToModel()
	acc.ID = id

	updated, err := h.accountService.Update(c.Context(), acc)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromAccount(updated))
}

// Delete godoc
// @Summary Delete an account
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid account id")
	}

	if err := h.accountService.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
