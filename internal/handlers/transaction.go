package handlers

import (
	"finances/internal/middleware"
	"finances/internal/models"
	"finances/internal/services/ledger"
	"finances/internal/utils"
	"finances/internal/utils/response"
	"finances/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LedgerHandler exposes transactions and budgets of the calling user.
type LedgerHandler struct {
	service ledger.Service
}

func NewLedgerHandler(s ledger.Service) *LedgerHandler { return &LedgerHandler{service: s} }

// AddTransaction handles POST /api/transactions.
func (h *LedgerHandler) AddTransaction(c *fiber.Ctx) error {
	var input models.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	if err := validation.Transaction(&input); err != nil {
		return handleError(c, err)
	}

	tx, err := h.service.AddTransaction(c.UserContext(), middleware.CurrentUser(c), input.Type, input.Category, *input.Amount)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "transaction added", tx)
}

// ListTransactions handles GET /api/transactions?page=&limit=.
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 20)

	transactions, total, err := h.service.History(c.UserContext(), middleware.CurrentUser(c), p.Limit, p.Offset)
	if err != nil {
		return handleError(c, err)
	}
	p.SetTotal(total)

	return c.JSON(utils.NewPaginatedResponse(transactions, p))
}

// SetBudget handles POST /api/budget.
func (h *LedgerHandler) SetBudget(c *fiber.Ctx) error {
	var input models.SetBudgetInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	if err := validation.Budget(&input); err != nil {
		return handleError(c, err)
	}

	budget, err := h.service.SetBudget(c.UserContext(), middleware.CurrentUser(c), input.Category, *input.Amount)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "budget set", budget)
}

// ListBudgets handles GET /api/budgets.
func (h *LedgerHandler) ListBudgets(c *fiber.Ctx) error {
	budgets, err := h.service.Budgets(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "budgets", budgets)
}
