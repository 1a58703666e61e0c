package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jizhang/internal/dto"
	"jizhang/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.Context())
	if err != nil {
		h.logger.Error("List categories failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromCategories(categories))
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cat, err := req.ToModel()
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.categoryService.Create(c.Context(), cat)
	if err != nil {
		h.logger.Error("Create category failed", zap.Error(err))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCategory(created))
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cat, err := req.ToModel()
	if err != nil {
		return badRequest(c, err.Error())
	}
	cat.ID = id

	updated, err := h.categoryService.Update(c.Context(), cat)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromCategory(updated))
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
