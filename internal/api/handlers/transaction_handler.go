package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jizhang/internal/dto"
	"jizhang/internal/models"
	"jizhang/internal/repository"
	"jizhang/internal/service"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func parseFilter(c *fiber.Ctx) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
		Keyword:  c.Query("keyword"),
	}
	if t := c.Query("type"); t != "" {
		txType := models.TransactionType(t)
		filter.Type = &txType
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("accountId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.AccountID = &id
	}
	if raw := c.Query("dateStart"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		filter.DateStart = &d
	}
	if raw := c.Query("dateEnd"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		filter.DateEnd = &d
	}
	if raw := c.Query("amountMin"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.AmountMin = &v
	}
	if raw := c.Query("amountMax"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.AmountMax = &v
	}
	return filter, nil
}

// List godoc
// @Summary List transactions
// @Description List transactions with optional filters and paging
// @Tags transactions
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param type query string false "Transaction type"
// @Param keyword query string false "Description keyword"
// @Success 200 {object} dto.TransactionListResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return badRequest(c, "Invalid filter parameters")
	}

	transactions, total, err := h.txService.List(c.Context(), filter)
	if err != nil {
		h.logger.Error("List transactions failed", zap.Error(err))
		return fail(c, err)
	}

	return c.JSON(dto.TransactionListResponse{
		Data:     dto.FromTransactions(transactions),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	tx, err := h.txService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// Create godoc
// @Summary Record a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req dto.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := req.ToModel()
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.txService.Create(c.Context(), tx)
	if err != nil {
		h.logger.Error("Create transaction failed", zap.Error(err))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransaction(created))
}

// Update godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.TransactionRequest true "Transaction"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	var req dto.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := req.ToModel()
	if err != nil {
		return badRequest(c, err.Error())
	}
	tx.ID = id

	updated, err := h.txService.Update(c.Context(), tx)
	if err != nil {
		h.logger.Error("Update transaction failed", zap.Error(err), zap.String("id", id.String()))
		return fail(c, err)
	}
	return c.JSON(dto.FromTransaction(updated))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	if err := h.txService.Delete(c.Context(), id); err != nil {
		h.logger.Error("Delete transaction failed", zap.Error(err), zap.String("id", id.String()))
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmPayment godoc
// @Summary Confirm that a payment landed
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.ConfirmPaymentRequest true "Account type the money landed on"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/confirm-payment [post]
func (h *TransactionHandler) ConfirmPayment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	var req dto.ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := h.txService.ConfirmPayment(c.Context(), id, models.PaymentAccountType(req.AccountType))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// ConfirmInvoice godoc
// @Summary Confirm that an invoice was issued
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.ConfirmInvoiceRequest false "Optional invoice reference"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/confirm-invoice [post]
func (h *TransactionHandler) ConfirmInvoice(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	var req dto.ConfirmInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	tx, err := h.txService.ConfirmInvoice(c.Context(), id, req.InvoiceID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// SkipInvoice godoc
// @Summary Mark a transaction as not needing an invoice
// @Tags workflow
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/skip-invoice [post]
func (h *TransactionHandler) SkipInvoice(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	tx, err := h.txService.SkipInvoice(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// ConfirmTax godoc
// @Summary Record a tax declaration
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.ConfirmTaxRequest false "Filing period (defaults to the transaction month)"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/confirm-tax [post]
func (h *TransactionHandler) ConfirmTax(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	var req dto.ConfirmTaxRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	tx, err := h.txService.ConfirmTaxDeclare(c.Context(), id, req.TaxPeriod)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// PendingPayments godoc
// @Summary List transactions awaiting payment confirmation
// @Tags workflow
// @Produce json
// @Param type query string false "income or expense (default both)"
// @Success 200 {array} dto.TransactionResponse
// @Router /transactions/pending/payments [get]
func (h *TransactionHandler) PendingPayments(c *fiber.Ctx) error {
	var (
		transactions []models.Transaction
		err          error
	)
	switch c.Query("type") {
	case "income":
		transactions, err = h.txService.PendingIncomePayments(c.Context())
	case "expense":
		transactions, err = h.txService.PendingExpensePayments(c.Context())
	default:
		var income, expense []models.Transaction
		income, err = h.txService.PendingIncomePayments(c.Context())
		if err == nil {
			expense, err = h.txService.PendingExpensePayments(c.Context())
			transactions = append(income, expense...)
		}
	}
	if err != nil {
		h.logger.Error("List pending payments failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromTransactions(transactions))
}

// PendingInvoices godoc
// @Summary List transactions awaiting invoicing
// @Tags workflow
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Router /transactions/pending/invoices [get]
func (h *TransactionHandler) PendingInvoices(c *fiber.Ctx) error {
	transactions, err := h.txService.PendingInvoices(c.Context())
	if err != nil {
		h.logger.Error("List pending invoices failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromTransactions(transactions))
}

// PendingTaxes godoc
// @Summary List transactions awaiting tax declaration
// @Tags workflow
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Router /transactions/pending/taxes [get]
func (h *TransactionHandler) PendingTaxes(c *fiber.Ctx) error {
	transactions, err := h.txService.PendingTaxes(c.Context())
	if err != nil {
		h.logger.Error("List pending taxes failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(dto.FromTransactions(transactions))
}
